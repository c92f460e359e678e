package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/klocking"
	"github.com/etnz/klocking/date"
	"github.com/etnz/klocking/renderer"
	"github.com/google/subcommands"
)

type watchCmd struct {
	date   string
	period string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "live view of a period, updating every second" }
func (*watchCmd) Usage() string {
	return `klk watch [-d <date>] [-p <period>]

  Renders the period summary and keeps it up to date while a session runs.
  The view halts if another klk process commits to the same data directory;
  restart it to reload. Exit with Ctrl+C.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "A day inside the period (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.period, "p", "day", "Period to watch: day, week, month or year")
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, storage, err := openStore()
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

	guard, err := klocking.NewGuard(store, storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting commit guard: %v\n", err)
		return subcommands.ExitFailure
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go guard.Run(ctx)

	go klocking.RunLive(ctx, store, r, func(now time.Time) {
		fmt.Println("\033[2J")
		printMarkdown(renderer.SummaryMarkdown(store.State(), r, now))
	})

	select {
	case <-ctx.Done():
		return subcommands.ExitSuccess
	case <-guard.Halted():
		fmt.Fprintln(os.Stderr, "Another klk process committed to this ledger; restart to reload.")
		return subcommands.ExitFailure
	}
}
