package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"investeasy/internal/analysis"
	"investeasy/internal/format"
	"investeasy/internal/model"
	"investeasy/internal/simulation"

	"github.com/google/subcommands"
)

type simulateCmd struct {
	principal float64
	days      string
	cdi       float64
	dataPath  string
	outPath   string
	asJSON    bool
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulate a CDB paying a percentage of CDI" }
func (*simulateCmd) Usage() string {
	return `cli simulate -principal <amount> -days <d>[,<d>...] [-cdi <pct>] [-data <sgs.json>] [-out <file.csv>] [-json]

  Projects gross yield, income tax and net value for each term, using the
  current CDI rate. Several terms are ranked by net value.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.principal, "principal", 0, "amount invested, in BRL")
	f.StringVar(&c.days, "days", "", "term in calendar days; a comma-separated list compares terms")
	f.Float64Var(&c.cdi, "cdi", 100, "percentage of CDI paid by the CDB")
	f.StringVar(&c.dataPath, "data", "", "saved SGS JSON response to read instead of the BCB API")
	f.StringVar(&c.outPath, "out", "", "optional CSV output path")
	f.BoolVar(&c.asJSON, "json", false, "print results as JSON")
}

func (c *simulateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.principal <= 0 {
		fmt.Fprintln(os.Stderr, "-principal must be > 0")
		return subcommands.ExitUsageError
	}
	if c.cdi <= 0 {
		fmt.Fprintln(os.Stderr, "-cdi must be > 0")
		return subcommands.ExitUsageError
	}
	terms, err := parseDays(c.days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "-days: %v\n", err)
		return subcommands.ExitUsageError
	}

	fetcher, log, err := setup(c.dataPath)
	if err != nil {
		return fail("Error loading config: %v", err)
	}
	engine := simulation.New(fetcher, log)

	reqs := make([]model.SimulationRequest, len(terms))
	for i, d := range terms {
		reqs[i] = model.SimulationRequest{Principal: c.principal, TermDays: d, CDIPercentage: c.cdi}
	}
	results, err := engine.SimulateMany(ctx, reqs)
	if err != nil {
		return fail("Error running simulation: %v", err)
	}

	if c.outPath != "" {
		if err := os.MkdirAll(filepath.Dir(c.outPath), 0o755); err != nil {
			return fail("Error creating output dir: %v", err)
		}
		if err := simulation.WriteResultsCSV(c.outPath, results); err != nil {
			return fail("Error writing CSV: %v", err)
		}
		log.Info().Str("path", c.outPath).Int("rows", len(results)).Msg("Wrote CSV")
	}

	if c.asJSON {
		rendered := make([]format.Simulation, len(results))
		for i := range results {
			rendered[i] = format.RenderSimulation(&results[i])
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rendered); err != nil {
			return fail("Error encoding JSON: %v", err)
		}
		return subcommands.ExitSuccess
	}

	if results[0].Stale {
		fmt.Println("warning: market data is stale")
	}
	ranked := analysis.RankByNetValue(results)
	for _, r := range ranked {
		printSimulation(r.Rank, format.RenderSimulation(&r.SimulationResult), len(ranked) > 1)
	}
	return subcommands.ExitSuccess
}

func printSimulation(rank int, s format.Simulation, ranked bool) {
	if ranked {
		fmt.Printf("#%d ", rank)
	}
	fmt.Printf("%s, %d days\n", s.Instrument, s.Input.TermDays)
	fmt.Printf("  principal:   %s\n", s.Input.Principal)
	fmt.Printf("  rate used:   %s\n", s.Input.RateUsed)
	fmt.Printf("  gross yield: %s\n", s.Results.GrossYield)
	fmt.Printf("  income tax:  %s (%s)\n", s.Results.TaxAmount, s.Results.TaxRate)
	fmt.Printf("  net value:   %s\n", s.Results.NetValue)
}

// parseDays parses "360" or "90,180,720" into positive terms.
func parseDays(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("at least one term is required")
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid term %q", p)
		}
		if d <= 0 {
			return nil, fmt.Errorf("term must be > 0, got %d", d)
		}
		out = append(out, d)
	}
	return out, nil
}
