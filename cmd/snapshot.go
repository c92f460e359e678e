package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/klocking"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the full ledger as JSON" }
func (*exportCmd) Usage() string {
	return `klk export [-o <file>]

  Writes a complete snapshot of the ledger. Without -o the snapshot goes to
  a dated file in the current directory.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, '-' for stdout")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	blob, err := store.Export()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output == "-" {
		fmt.Println(string(blob))
		return subcommands.ExitSuccess
	}
	name := c.output
	if name == "" {
		name = klocking.ExportFileName(store.Now())
	}
	if err := os.WriteFile(name, blob, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported to %s.\n", filepath.Clean(name))
	return subcommands.ExitSuccess
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with a snapshot" }
func (*importCmd) Usage() string {
	return `klk import <file>

  Replaces the whole ledger with the given snapshot. The file must contain
  an activity list and a daily totals mapping; a rejected import leaves the
  current data untouched. Export first if in doubt.
`
}

func (*importCmd) SetFlags(_ *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	blob, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.ImportSnapshot(blob); err != nil {
		if errors.Is(err, klocking.ErrInvalidSnapshot) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error importing snapshot: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	st := store.State()
	fmt.Printf("Imported %d activities over %d days.\n", len(st.Activities), len(st.DailyTotals))
	return subcommands.ExitSuccess
}

type resetCmd struct {
	force bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "wipe the ledger and start over" }
func (*resetCmd) Usage() string {
	return `klk reset -force

  Removes every activity, every committed minute and all preferences. There
  is no undo; -force is required.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Confirm the reset")
}

func (c *resetCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.force {
		fmt.Fprintln(os.Stderr, "Refusing to wipe the ledger without -force.")
		return subcommands.ExitUsageError
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	store.ResetAll()
	fmt.Println("Ledger wiped.")
	return subcommands.ExitSuccess
}
