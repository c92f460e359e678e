// Package cmd implements the CLI application to track personal time.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/klocking"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&startCmd{}, "tracking")
	c.Register(&stopCmd{}, "tracking")
	c.Register(&statusCmd{}, "tracking")
	c.Register(&addCmd{}, "tracking")
	c.Register(&editCmd{}, "tracking")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&dayCmd{}, "reports")
	c.Register(&watchCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")

	c.Register(&activitiesCmd{}, "activities")
	c.Register(&newCmd{}, "activities")
	c.Register(&renameCmd{}, "activities")
	c.Register(&archiveCmd{archive: true}, "activities")
	c.Register(&archiveCmd{}, "activities")
	c.Register(&deleteCmd{}, "activities")
	c.Register(&reorderCmd{}, "activities")

	c.Register(&visCmd{}, "preferences")
	c.Register(&settingsCmd{}, "preferences")
	c.Register(&themeCmd{}, "preferences")
	c.Register(&lifeCmd{}, "preferences")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&resetCmd{}, "data")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var dataDir = flag.String("data-dir", defaultDataDir(), "Directory holding the time ledger (also "+EnvDataDir+")")

func defaultDataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klk"
	}
	return filepath.Join(home, ".klk")
}

// openStorage opens the file storage behind -data-dir.
func openStorage() (*klocking.FileStore, error) {
	return klocking.NewFileStore(*dataDir)
}

// openStore loads the ledger from the data directory.
func openStore() (*klocking.Store, *klocking.FileStore, error) {
	storage, err := openStorage()
	if err != nil {
		return nil, nil, err
	}
	return klocking.Open(storage), storage, nil
}

// findActivity resolves a user-typed name to an activity, matching the name
// case-insensitively and falling back to the raw id.
func findActivity(s *klocking.State, name string) *klocking.Activity {
	for i := range s.Activities {
		if strings.EqualFold(s.Activities[i].Name, name) {
			return &s.Activities[i]
		}
	}
	return s.Activity(name)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer is unavailable.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
