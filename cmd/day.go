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

type dayCmd struct {
	date string
}

func (*dayCmd) Name() string     { return "day" }
func (*dayCmd) Synopsis() string { return "detail the allocation of one day" }
func (*dayCmd) Usage() string {
	return `klk day [-d <date>]

  Shows the committed minutes per activity on one day and the unallocated
  remainder, with the running session folded in.
`
}

func (c *dayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day to detail (YYYY-MM-DD), defaults to today")
}

func (c *dayCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	d := date.Of(store.Now())
	if c.date != "" {
		if d, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	printMarkdown(renderer.DayMarkdown(store.State(), d, store.Now()))
	return subcommands.ExitSuccess
}

// lifeRange spans from the life-start marker to today.
func lifeRange(store *klocking.Store) date.Range {
	from := date.Of(time.UnixMilli(store.State().LifeStart))
	return date.Between(from, date.Of(store.Now()))
}
