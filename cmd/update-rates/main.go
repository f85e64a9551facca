package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"investeasy/internal/config"
	"investeasy/internal/data"
	"investeasy/pkg/logger"
)

// Saves the latest SGS observations for the catalogued series so the CLI can run
// offline with -data.
func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (optional)")
		outputPath = flag.String("output", "./data/sgs.json", "Output file path")
		last       = flag.Int("last", 2, "Number of most recent observations per series")
	)
	flag.Parse()

	log := logger.NewWithWriter(logger.Config{Level: "info", Pretty: true}, os.Stderr)

	cfg, err := config.LoadUnchecked(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	q := data.IndicatorQuery()
	q.Last = *last

	client := data.NewBCBClient(cfg.Rates.BaseURL, cfg.Rates.Timeout, log)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	obs, err := client.FetchLatest(ctx, q)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch observations")
	}

	// Refuse to save a response the simulator could not use.
	snap, err := data.ParseIndicators(obs)
	if err != nil {
		log.Fatal().Err(err).Msg("Response is not usable")
	}

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output dir")
	}
	if err := data.SaveObservationsJSON(*outputPath, obs); err != nil {
		log.Fatal().Err(err).Msg("Failed to save observations")
	}

	log.Info().
		Int("observations", len(obs)).
		Str("reference_date", snap.ReferenceDate.Format("2006-01-02")).
		Str("selic", snap.SelicDisplay).
		Str("cdi", snap.CDIDisplay).
		Str("path", *outputPath).
		Msg("Saved rates")
}
