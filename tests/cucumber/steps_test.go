package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"mmc/internal/cli"
	"mmc/internal/config"
)

// featureState holds scenario state for CLI feature tests.
type featureState struct {
	workDir    string
	previousWD string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^an empty workspace$`, state.anEmptyWorkspace)
	ctx.Step(`^an initialized workspace$`, state.anInitializedWorkspace)
	ctx.Step(`^the question bank contains duplicate ids$`, state.theBankContainsDuplicateIDs)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the error message mentions "([^"]+)"$`, state.theErrorMentions)
	ctx.Step(`^the workspace contains a config file$`, state.theWorkspaceContainsConfig)
	ctx.Step(`^the workspace contains an empty question bank$`, state.theWorkspaceContainsBank)
}

// reset moves the scenario into a fresh working directory.
func (s *featureState) reset() error {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	s.previousWD = wd

	dir, err := os.MkdirTemp("", "mmc-cucumber-*")
	if err != nil {
		return err
	}
	s.workDir = dir
	return os.Chdir(dir)
}

// cleanup restores the working directory and removes scenario files.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}

func (s *featureState) anEmptyWorkspace() error {
	return nil
}

func (s *featureState) anInitializedWorkspace() error {
	_, err := config.Scaffold(s.workDir)
	return err
}

func (s *featureState) theBankContainsDuplicateIDs() error {
	bank := `{"questions": [
  {"id": 1, "category": "TF", "thematic": "Buckling", "question": "One", "answer": true},
  {"id": 1, "category": "TF", "thematic": "Buckling", "question": "Two", "answer": false}
]}`
	return os.WriteFile(filepath.Join(s.workDir, config.DefaultBankFile), []byte(bank), 0o644)
}

// iRunCommand executes a CLI command for the scenario.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "mmc" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d; stderr: %s", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output, got:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorMentions(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected %q in error output, got:\n%s", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theWorkspaceContainsConfig() error {
	if _, err := os.Stat(config.ConfigPath(s.workDir)); err != nil {
		return fmt.Errorf("config file missing: %w", err)
	}
	return nil
}

func (s *featureState) theWorkspaceContainsBank() error {
	data, err := os.ReadFile(filepath.Join(s.workDir, config.DefaultBankFile))
	if err != nil {
		return fmt.Errorf("bank file missing: %w", err)
	}
	if !strings.Contains(string(data), `"questions"`) {
		return fmt.Errorf("bank file malformed: %s", data)
	}
	return nil
}
