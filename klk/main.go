package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/klocking/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// subs mirrors the registered subcommands for shell completion and for
// extension dispatch.
var subs = map[string]*complete.Command{
	"start":      {Args: predict.Something},
	"stop":       {},
	"status":     {},
	"add":        {Flags: map[string]complete.Predictor{"d": predict.Something}, Args: predict.Something},
	"edit":       {Flags: map[string]complete.Predictor{"d": predict.Something}, Args: predict.Something},
	"summary":    {Flags: map[string]complete.Predictor{"d": predict.Something, "p": predict.Set{"day", "week", "month", "year", "life"}}},
	"day":        {Flags: map[string]complete.Predictor{"d": predict.Something}},
	"watch":      {Flags: map[string]complete.Predictor{"d": predict.Something, "p": predict.Set{"day", "week", "month", "year", "life"}}},
	"query":      {Args: predict.Something},
	"activities": {},
	"new":        {Flags: map[string]complete.Predictor{"color": predict.Something}, Args: predict.Something},
	"rename":     {Flags: map[string]complete.Predictor{"color": predict.Something}, Args: predict.Something},
	"archive":    {Args: predict.Something},
	"unarchive":  {Args: predict.Something},
	"delete":     {Flags: map[string]complete.Predictor{"force": predict.Nothing}, Args: predict.Something},
	"reorder":    {Args: predict.Something},
	"vis":        {Flags: map[string]complete.Predictor{"hide": predict.Nothing}, Args: predict.Set{"untracked", "future"}},
	"settings":   {Flags: map[string]complete.Predictor{"minutes": predict.Set{"true", "false"}, "date-order": predict.Set{"dmy", "mdy"}, "lang": predict.Set{"en", "pt-BR"}, "percent": predict.Set{"true", "false"}}},
	"theme":      {},
	"life":       {Args: predict.Something},
	"export":     {Flags: map[string]complete.Predictor{"o": predict.Files("*.json")}},
	"import":     {Args: predict.Files("*.json")},
	"reset":      {Flags: map[string]complete.Predictor{"force": predict.Nothing}},
	"topic":      {Args: predict.Set{"readme", "tracking", "editing", "snapshot", "sync", "settings"}},
	"assist":     {Args: predict.Something},
	"help":       {},
	"flags":      {},
	"commands":   {},
}

func main() {
	cmp := &complete.Command{
		Sub: subs,
		Flags: map[string]complete.Predictor{
			"data-dir": predict.Dirs("*"),
		},
	}
	cmp.Complete("klk")

	// An unknown subcommand may be an external klk-<name> extension.
	if len(os.Args) > 1 {
		name := os.Args[1]
		if _, known := subs[name]; !known && name != "" && name[0] != '-' {
			if ran, code := cmd.RunExtension(name, os.Args[2:]); ran {
				os.Exit(code)
			}
		}
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
