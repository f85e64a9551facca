package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"investeasy/internal/config"
	"investeasy/internal/data"
	"investeasy/pkg/logger"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

var configPath = flag.String("config", "", "Path to YAML config (optional)")
var verbose = flag.Bool("v", false, "debug logging on stderr")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&indicatorsCmd{}, "market data")
	commander.Register(&simulateCmd{}, "simulation")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// setup loads config and builds a Fetcher. With dataPath set, rates come from a
// saved SGS response instead of the BCB API.
func setup(dataPath string) (*data.Fetcher, zerolog.Logger, error) {
	cfg, err := config.LoadUnchecked(*configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(logger.Config{Level: level, Pretty: true}, os.Stderr)

	var source data.RatesSource
	if dataPath != "" {
		source = data.FileSource{Path: dataPath}
	} else {
		source = data.NewBCBClient(cfg.Rates.BaseURL, cfg.Rates.Timeout, log)
	}

	fetcher := data.NewFetcher(source, data.NewRateCache(nil), data.FetcherConfig{
		MaxAge:  cfg.Rates.CacheTTL,
		Timeout: cfg.Rates.Timeout,
	}, log)
	return fetcher, log, nil
}

func fail(format string, args ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
