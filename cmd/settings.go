package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/klocking"
	"github.com/etnz/klocking/date"
	"github.com/google/subcommands"
)

type visCmd struct {
	hide bool
}

func (*visCmd) Name() string     { return "vis" }
func (*visCmd) Synopsis() string { return "show or hide a chart row" }
func (*visCmd) Usage() string {
	return `klk vis <activity|untracked|future> [-hide]

  Shows (default) or hides a row in summaries. Hiding never deletes data.
`
}

func (c *visCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.hide, "hide", false, "Hide the row instead of showing it")
}

func (c *visCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}

	var id string
	switch f.Arg(0) {
	case "untracked":
		id = klocking.UntrackedID
	case "future":
		id = klocking.FutureID
	default:
		a := findActivity(store.State(), f.Arg(0))
		if a == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown activity %q\n", f.Arg(0))
			return subcommands.ExitUsageError
		}
		id = a.ID
	}

	vis := klocking.VisibilityMap{}
	for k, v := range store.State().Visibility {
		vis[k] = v
	}
	vis[id] = !c.hide
	store.SetVisibility(vis)
	if c.hide {
		fmt.Printf("Hiding %s.\n", f.Arg(0))
	} else {
		fmt.Printf("Showing %s.\n", f.Arg(0))
	}
	return subcommands.ExitSuccess
}

type settingsCmd struct {
	minutes   string
	dateOrder string
	lang      string
	percent   string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change display preferences" }
func (*settingsCmd) Usage() string {
	return `klk settings [-minutes <bool>] [-date-order dmy|mdy] [-lang en|pt-BR] [-percent <bool>]

  Without flags, prints the current settings. Each flag changes one of them.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.minutes, "minutes", "", "Show durations as raw minutes (true/false)")
	f.StringVar(&c.dateOrder, "date-order", "", "Date order: dmy or mdy")
	f.StringVar(&c.lang, "lang", "", "Interface language: en or pt-BR")
	f.StringVar(&c.percent, "percent", "", "Show percentage tooltips (true/false)")
}

func parseBoolFlag(name, v string, into *bool) error {
	switch v {
	case "true":
		*into = true
	case "false":
		*into = false
	default:
		return fmt.Errorf("-%s must be true or false, got %q", name, v)
	}
	return nil
}

func (c *settingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	next := store.State().Settings

	changed := false
	if c.minutes != "" {
		if err := parseBoolFlag("minutes", c.minutes, &next.ShowMinutes); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		changed = true
	}
	if c.percent != "" {
		if err := parseBoolFlag("percent", c.percent, &next.ShowPercentTooltip); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		changed = true
	}
	if c.dateOrder != "" {
		switch c.dateOrder {
		case "dmy":
			next.UseMMDDYYYY = false
		case "mdy":
			next.UseMMDDYYYY = true
		default:
			fmt.Fprintf(os.Stderr, "Error: -date-order must be dmy or mdy, got %q\n", c.dateOrder)
			return subcommands.ExitUsageError
		}
		changed = true
	}
	if c.lang != "" {
		next.Language = klocking.LangCode(c.lang)
		changed = true
	}

	if changed {
		store.SetSettings(next)
	}
	s := store.State().Settings
	order := "dmy"
	if s.UseMMDDYYYY {
		order = "mdy"
	}
	fmt.Printf("minutes: %v\ndate-order: %s\nlang: %s\npercent: %v\n",
		s.ShowMinutes, order, s.Language, s.ShowPercentTooltip)
	return subcommands.ExitSuccess
}

type themeCmd struct{}

func (*themeCmd) Name() string     { return "theme" }
func (*themeCmd) Synopsis() string { return "toggle between the light and dark palette" }
func (*themeCmd) Usage() string {
	return `klk theme

  Toggles the theme used for the reserved chart rows.
`
}

func (*themeCmd) SetFlags(_ *flag.FlagSet) {}

func (c *themeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	store.ToggleTheme()
	fmt.Printf("Theme is now %s.\n", store.State().Theme)
	return subcommands.ExitSuccess
}

type lifeCmd struct{}

func (*lifeCmd) Name() string     { return "life" }
func (*lifeCmd) Synopsis() string { return "set the life-start date" }
func (*lifeCmd) Usage() string {
	return `klk life [<date>]

  Sets the day the life view starts from (YYYY-MM-DD, not in the future).
  Without an argument, prints the current one.
`
}

func (*lifeCmd) SetFlags(_ *flag.FlagSet) {}

func (c *lifeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	if f.NArg() == 0 {
		fmt.Printf("Life starts on %s.\n", lifeRange(store).From)
		return subcommands.ExitSuccess
	}
	d, err := date.Parse(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !store.SetLifeStart(d.StartOfDay()) {
		fmt.Fprintln(os.Stderr, "Error: the life-start date must not be in the future")
		return subcommands.ExitFailure
	}
	fmt.Printf("Life starts on %s.\n", d)
	return subcommands.ExitSuccess
}
