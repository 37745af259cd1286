package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"mmc/internal/report"
	"mmc/internal/reportserver"
	"mmc/internal/stats"
	"mmc/internal/ui/statsview"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runStats builds the handler for the stats command.
func runStats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .mmc/config.yml)")
		uiMode := flags.String("ui", "auto", "Output mode: auto|table|plain")
		htmlPath := flags.String("html", "", "Write an HTML report to this path and exit")
		serve := flags.Bool("serve", false, "Serve the HTML report over HTTP")
		addr := flags.String("addr", "127.0.0.1:5000", "Address to listen on with --serve")
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
		if *serve && *htmlPath != "" {
			fmt.Fprintln(stderr, "--serve and --html are mutually exclusive")
			return ExitUsage
		}
		if *serve && *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		ws, err := openWorkspace(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		ctx := context.Background()
		dbPath := ws.statsDBPath()
		if err := ingestAttempts(ctx, dbPath, ws.historyPath()); err != nil {
			fmt.Fprintf(stderr, "Failed to update stats database: %v\n", err)
			return ExitError
		}

		if *serve {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			fmt.Fprintf(stdout, "Serving progress report at http://%s\n", *addr)
			if err := serveReport(ctx, reportserver.Config{Addr: *addr, DBPath: dbPath}); err != nil {
				fmt.Fprintf(stderr, "Server error: %v\n", err)
				return ExitError
			}
			return ExitOK
		}

		db, err := stats.Open(dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open stats database: %v\n", err)
			return ExitError
		}
		defer db.Close()

		data, err := report.Collect(ctx, db)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to query stats: %v\n", err)
			return ExitError
		}

		if *htmlPath != "" {
			html, err := report.RenderHTML(ctx, data)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
				return ExitError
			}
			if err := os.WriteFile(*htmlPath, []byte(html), 0o644); err != nil {
				fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Report written to %s\n", *htmlPath)
			return ExitOK
		}

		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}
		if decision.useTable {
			model := statsview.NewModel(statsview.Options{
				Themes:    data.Themes,
				Questions: data.Questions,
				Runs:      data.Runs,
				NoColor:   *noColor,
			})
			if err := runProgram(model); err != nil {
				fmt.Fprintf(stderr, "Stats view failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}

		printPlainStats(stdout, data)
		return ExitOK
	}
}

// ingestAttempts folds the attempt history into the stats database and
// closes the write handle before anything else opens it.
func ingestAttempts(ctx context.Context, dbPath, historyPath string) error {
	db, err := stats.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = stats.IngestHistory(ctx, db, historyPath)
	return err
}

// printPlainStats writes the per-thematic summary as aligned text.
func printPlainStats(stdout io.Writer, data report.Data) {
	if len(data.Themes) == 0 {
		fmt.Fprintln(stdout, "No attempts recorded yet.")
		return
	}
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "THEMATIC\tATTEMPTS\tCORRECT\tACCURACY")
	for _, theme := range data.Themes {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\n", theme.Thematic, theme.Attempts, theme.Correct, theme.Accuracy())
	}
	w.Flush()

	totalAttempts, totalCorrect := 0, 0
	for _, theme := range data.Themes {
		totalAttempts += theme.Attempts
		totalCorrect += theme.Correct
	}
	fmt.Fprintf(stdout, "\n%d attempts, %d correct over %d sessions\n",
		totalAttempts, totalCorrect, len(data.Runs))
}
