package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/klocking"
	"github.com/etnz/klocking/date"
	"github.com/google/subcommands"
)

type addCmd struct {
	day string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add minutes to an activity" }
func (*addCmd) Usage() string {
	return `klk add <activity> <minutes> [-d <day>]

  Adds minutes directly to the ledger, filling the day's untracked remainder.
  The amount is capped to what the day has left.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Day to credit (YYYY-MM-DD), defaults to today")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	minutes, err := strconv.Atoi(f.Arg(1))
	if err != nil || minutes <= 0 {
		fmt.Fprintf(os.Stderr, "Error: minutes must be a positive number, got %q\n", f.Arg(1))
		return subcommands.ExitUsageError
	}

	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	a := findActivity(store.State(), f.Arg(0))
	if a == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown activity %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}

	res := store.AddManualTime(a.ID, minutes, c.day)
	if res.Added == 0 {
		fmt.Printf("Nothing added: the day has no untracked time left.\n")
		return subcommands.ExitSuccess
	}
	if res.Capped {
		fmt.Printf("Added %s to %s (capped from %s).\n",
			klocking.FormatMinutes(res.Added, false), a.Name, klocking.FormatMinutes(minutes, false))
	} else {
		fmt.Printf("Added %s to %s.\n", klocking.FormatMinutes(res.Added, false), a.Name)
	}
	return subcommands.ExitSuccess
}

type editCmd struct {
	day string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "set the committed minutes of an activity on a day" }
func (*editCmd) Usage() string {
	return `klk edit <activity> <minutes> [-d <day>]

  Rewrites the committed total of one activity on one day. Zero removes the
  entry. The total is clamped to the day's remaining capacity. Future days
  and the running session cannot be edited.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Day to edit (YYYY-MM-DD), defaults to today")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	minutes, err := strconv.Atoi(f.Arg(1))
	if err != nil || minutes < 0 {
		fmt.Fprintf(os.Stderr, "Error: minutes must be a non-negative number, got %q\n", f.Arg(1))
		return subcommands.ExitUsageError
	}

	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	a := findActivity(store.State(), f.Arg(0))
	if a == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown activity %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}

	d := date.Of(store.Now())
	if c.day != "" {
		if d, err = date.Parse(c.day); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing day: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	editor := klocking.NewDayEditor(store, date.Daily, d)
	res, ok := editor.EditActivityTotal(a.ID, minutes)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: this day cannot be edited (future day, or a session is running)")
		return subcommands.ExitFailure
	}
	if res.Capped {
		fmt.Printf("Set %s on %s to %s (clamped to the day's capacity).\n",
			a.Name, d, klocking.FormatMinutes(res.Applied, false))
	} else {
		fmt.Printf("Set %s on %s to %s.\n", a.Name, d, klocking.FormatMinutes(res.Applied, false))
	}
	return subcommands.ExitSuccess
}
