package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"mmc/internal/question"
	"mmc/internal/ui/editor"
)

// runEdit builds the handler for the edit command.
func runEdit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .mmc/config.yml)")
		bankPath := flags.String("bank", "", "Question bank file (overrides the configured path)")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ws, err := openWorkspace(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		store, err := question.OpenStore(ws.bankPathOr(*bankPath))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load question bank:\n%v\n", err)
			return ExitError
		}

		model := editor.NewModel(editor.Options{Store: store, NoColor: *noColor})
		if err := runProgram(model); err != nil {
			fmt.Fprintf(stderr, "Editor failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
