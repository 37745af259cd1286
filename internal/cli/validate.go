package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"mmc/internal/question"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .mmc/config.yml)")
		bankFlag := flags.String("bank", "", "Question bank file (overrides the configured path)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ws, err := openWorkspace(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		bankPath := ws.bankPathOr(*bankFlag)
		if _, err := os.Stat(bankPath); os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Validation failed:\nquestion bank %s does not exist\n", bankPath)
			return ExitError
		}
		bank, err := question.LoadBank(bankPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		fmt.Fprintf(stdout, "Config OK\n")
		fmt.Fprintf(stdout, "Question bank OK (%d questions)\n", len(bank.Questions))
		return ExitOK
	}
}
