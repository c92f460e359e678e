package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/klocking/renderer"
	"github.com/google/subcommands"
)

type activitiesCmd struct{}

func (*activitiesCmd) Name() string     { return "activities" }
func (*activitiesCmd) Synopsis() string { return "list the activities" }
func (*activitiesCmd) Usage() string {
	return `klk activities

  Lists every activity in display order, including archived ones.
`
}

func (*activitiesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *activitiesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ActivitiesMarkdown(store.State()))
	return subcommands.ExitSuccess
}

type newCmd struct {
	color string
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create an activity" }
func (*newCmd) Usage() string {
	return `klk new <name> [-color <hex>]

  Creates a new activity. Without -color the next palette color is picked.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.color, "color", "", "Display color, e.g. #ef4444")
}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	a := store.CreateActivity(f.Arg(0), c.color)
	if a == nil {
		fmt.Fprintln(os.Stderr, "Error: the activity name must not be blank")
		return subcommands.ExitUsageError
	}
	fmt.Printf("Created %s (%s).\n", a.Name, a.Color)
	return subcommands.ExitSuccess
}

type renameCmd struct {
	color string
}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename or recolor an activity" }
func (*renameCmd) Usage() string {
	return `klk rename <activity> <new-name> [-color <hex>]

  Renames an activity, optionally changing its color. History is untouched.
`
}

func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.color, "color", "", "New display color, keeps the current one when empty")
}

func (c *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
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
	color := c.color
	if color == "" {
		color = a.Color
	}
	if !store.UpdateActivity(a.ID, f.Arg(1), color) {
		fmt.Fprintln(os.Stderr, "Error: the new name must not be blank")
		return subcommands.ExitUsageError
	}
	fmt.Printf("Renamed to %s.\n", f.Arg(1))
	return subcommands.ExitSuccess
}

// archiveCmd serves both `archive` and `unarchive`.
type archiveCmd struct {
	archive bool
}

func (c *archiveCmd) Name() string {
	if c.archive {
		return "archive"
	}
	return "unarchive"
}

func (c *archiveCmd) Synopsis() string {
	if c.archive {
		return "archive an activity, keeping its history"
	}
	return "bring an archived activity back"
}

func (c *archiveCmd) Usage() string {
	return fmt.Sprintf(`klk %s <activity>

  Archiving hides an activity from tracking without touching its history.
  Archiving the running activity commits the session first.
`, c.Name())
}

func (*archiveCmd) SetFlags(_ *flag.FlagSet) {}

func (c *archiveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
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
	store.ArchiveActivity(a.ID, c.archive)
	if c.archive {
		fmt.Printf("Archived %s.\n", a.Name)
	} else {
		fmt.Printf("Unarchived %s.\n", a.Name)
	}
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	force bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete an activity and all its data" }
func (*deleteCmd) Usage() string {
	return `klk delete <activity> -force

  Deletes an activity and every minute ever committed to it. There is no
  undo; -force is required.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Confirm the deletion")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
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
	if !c.force {
		fmt.Fprintf(os.Stderr, "Refusing to delete %s and its history without -force.\n", a.Name)
		return subcommands.ExitUsageError
	}
	name := a.Name
	store.DeleteActivityAndData(a.ID)
	fmt.Printf("Deleted %s and all its data.\n", name)
	return subcommands.ExitSuccess
}

type reorderCmd struct{}

func (*reorderCmd) Name() string     { return "reorder" }
func (*reorderCmd) Synopsis() string { return "move an activity in the display order" }
func (*reorderCmd) Usage() string {
	return `klk reorder <activity> <before-activity>

  Moves the first activity immediately before the second in the display
  order used by lists and charts.
`
}

func (*reorderCmd) SetFlags(_ *flag.FlagSet) {}

func (c *reorderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	src := findActivity(store.State(), f.Arg(0))
	dst := findActivity(store.State(), f.Arg(1))
	if src == nil || dst == nil {
		fmt.Fprintln(os.Stderr, "Error: both activities must exist")
		return subcommands.ExitUsageError
	}
	store.ReorderActivities(src.ID, dst.ID)
	fmt.Printf("Moved %s before %s.\n", src.Name, dst.Name)
	return subcommands.ExitSuccess
}
