package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/klocking/date"
	"github.com/etnz/klocking/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date   string
	period string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a time summary for a period" }
func (*summaryCmd) Usage() string {
	return `klk summary [-d <date>] [-p <period>]

  Displays the time tracked in a period: per-activity durations, shares, and
  the untracked remainder. Weeks start on Sunday.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "A day inside the period (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.period, "p", "day", "Period to summarise: day, week, month or year")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}

	anchor := date.Of(store.Now())
	if c.date != "" {
		if anchor, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	p, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var r date.Range
	if p == date.Life {
		r = lifeRange(store)
	} else {
		r = date.NewRange(anchor, p)
	}
	printMarkdown(renderer.SummaryMarkdown(store.State(), r, store.Now()))
	return subcommands.ExitSuccess
}
