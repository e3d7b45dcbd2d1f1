package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

var CLI struct {
	Version kong.VersionFlag
	Seed    int64 `help:"Simulator seed; 0 picks a random one." default:"0"`
	Verbose bool  `help:"Log service internals to stderr." short:"v"`

	Plan   PlanCmd   `cmd:"" help:"Plan an evening from a free-text prompt."`
	Search SearchCmd `cmd:"" help:"Search the demo catalogue."`
	Group  struct {
		Solve GroupSolveCmd `cmd:"" help:"Solve a group dinner from participant constraints."`
	} `cmd:"" help:"Group dinner tools."`
	Vibe VibeCmd `cmd:"" help:"Show the vibe profile for a set of photo picks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("slatectl"),
		kong.Description("Offline evening planner and group solver over the demo catalogue"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	logger := zap.NewNop()
	if CLI.Verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}
	defer logger.Sync()

	err := ctx.Run(newContext(CLI.Seed, logger, os.Stdout))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
