package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mmc/internal/logger"
	"mmc/internal/progress"
	"mmc/internal/question"
	"mmc/internal/session"
	"mmc/internal/ui/trainer"
)

// runProgram is a test seam for launching the bubbletea program.
var runProgram = func(model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// runTrain builds the handler for the train command.
func runTrain(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .mmc/config.yml)")
		bankPath := flags.String("bank", "", "Question bank file (overrides the configured path)")
		theme := flags.String("theme", "", "Start directly in a thematic")
		exam := flags.Bool("exam", false, "Start directly in exam mode")
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
		if *exam && *theme != "" {
			fmt.Fprintln(stderr, "--theme and --exam are mutually exclusive")
			return ExitUsage
		}

		ws, err := openWorkspace(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		bank := ws.bankPathOr(*bankPath)
		store, err := question.OpenStore(bank)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load question bank:\n%v\n", err)
			return ExitError
		}
		if store.Len() == 0 {
			fmt.Fprintf(stderr, "Question bank %s is empty; add questions with \"mmc edit\" first.\n", bank)
			return ExitError
		}

		prog := progress.New(ws.progressPath())
		if err := prog.Load(); err != nil {
			fmt.Fprintf(stderr, "Failed to load progress: %v\n", err)
			return ExitError
		}

		log, err := logger.New(ws.logPath())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
			return ExitError
		}
		defer log.Sync()

		duration, err := ws.cfg.ExamDuration()
		if err != nil {
			fmt.Fprintf(stderr, "Invalid exam duration: %v\n", err)
			return ExitError
		}
		engine := session.NewEngine(session.Options{
			Questions: store,
			Progress:  prog,
			History:   progress.NewHistory(ws.historyPath()),
			Logger:    log,
			Exam: session.ExamConfig{
				TF:       ws.cfg.Exam.TF,
				QCM:      ws.cfg.Exam.QCM,
				Duration: duration,
			},
		})

		model := trainer.NewModel(trainer.Options{
			Engine:     engine,
			Questions:  store,
			Progress:   prog,
			NoColor:    *noColor,
			StartTheme: *theme,
			StartExam:  *exam,
		})
		if err := runProgram(model); err != nil {
			fmt.Fprintf(stderr, "Trainer failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
