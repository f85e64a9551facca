package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type indicatorsCmd struct {
	dataPath string
}

func (*indicatorsCmd) Name() string     { return "indicators" }
func (*indicatorsCmd) Synopsis() string { return "print the current Selic and CDI annual rates" }
func (*indicatorsCmd) Usage() string {
	return `cli indicators [-data <sgs.json>]

  Fetches the latest Selic and CDI daily rates and prints them annualized
  over 252 business days.
`
}

func (c *indicatorsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataPath, "data", "", "saved SGS JSON response to read instead of the BCB API")
}

func (c *indicatorsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fetcher, _, err := setup(c.dataPath)
	if err != nil {
		return fail("Error loading config: %v", err)
	}

	snap, err := fetcher.GetIndicators(ctx)
	if err != nil {
		return fail("Error fetching indicators: %v", err)
	}

	fmt.Printf("Reference date: %s\n", snap.ReferenceDate.Format("2006-01-02"))
	fmt.Printf("Selic:          %s\n", snap.SelicDisplay)
	fmt.Printf("CDI:            %s\n", snap.CDIDisplay)
	return subcommands.ExitSuccess
}
