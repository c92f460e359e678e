package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/klocking/renderer"
	"github.com/google/subcommands"
)

type startCmd struct{}

func (*startCmd) Name() string     { return "start" }
func (*startCmd) Synopsis() string { return "start tracking an activity" }
func (*startCmd) Usage() string {
	return `klk start [<activity>]

  Starts a session on the given activity. A running session on another
  activity is committed first; there is never more than one. Without an
  argument, restarts the last used activity.
`
}

func (*startCmd) SetFlags(_ *flag.FlagSet) {}

func (c *startCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	st := store.State()

	id := st.LastActID
	if f.NArg() > 0 {
		a := findActivity(st, strings.Join(f.Args(), " "))
		if a == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown activity %q\n", strings.Join(f.Args(), " "))
			return subcommands.ExitUsageError
		}
		id = a.ID
	}
	a := st.Activity(id)
	if a == nil || a.Archived {
		fmt.Fprintln(os.Stderr, "Error: nothing to start, name an active activity")
		return subcommands.ExitUsageError
	}
	if st.Running != nil && st.Running.ActivityID == id {
		fmt.Printf("Already tracking %s.\n", a.Name)
		return subcommands.ExitSuccess
	}

	store.StartActivity(id)
	fmt.Printf("Started %s.\n", a.Name)
	return subcommands.ExitSuccess
}

type stopCmd struct{}

func (*stopCmd) Name() string     { return "stop" }
func (*stopCmd) Synopsis() string { return "stop the running session" }
func (*stopCmd) Usage() string {
	return `klk stop

  Stops the running session and commits its minutes to the ledger, split at
  midnight boundaries. Does nothing when no session is running.
`
}

func (*stopCmd) SetFlags(_ *flag.FlagSet) {}

func (c *stopCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	st := store.State()
	if st.Running == nil {
		fmt.Println("No session running.")
		return subcommands.ExitSuccess
	}
	name := st.Running.ActivityID
	if a := st.Activity(name); a != nil {
		name = a.Name
	}
	store.StopRunning()
	fmt.Printf("Stopped %s.\n", name)
	return subcommands.ExitSuccess
}

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show the running session" }
func (*statusCmd) Usage() string {
	return `klk status

  Shows the running activity and its elapsed time, or the last used
  activity when idle.
`
}

func (*statusCmd) SetFlags(_ *flag.FlagSet) {}

func (c *statusCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SessionMarkdown(store.State(), store.Now()))
	return subcommands.ExitSuccess
}
