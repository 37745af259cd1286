package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mmc/internal/config"
)

// workspace is a loaded config together with the root its relative paths
// resolve against.
type workspace struct {
	cfg  config.Config
	root string
}

// openWorkspace loads a config file and derives the workspace root. With an
// empty path it searches upward from the working directory; when no config
// exists anywhere the defaults apply with the working directory as root, so
// the tool runs against a bare bank file without any scaffolding.
func openWorkspace(configPath string) (workspace, error) {
	if strings.TrimSpace(configPath) != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return workspace{}, fmt.Errorf("resolve config path: %w", err)
		}
		cfg, err := config.Load(abs)
		if err != nil {
			return workspace{}, err
		}
		return workspace{cfg: cfg, root: config.RootFromConfigPath(abs)}, nil
	}

	found, err := config.FindConfigPath("")
	if errors.Is(err, os.ErrNotExist) {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return workspace{}, wdErr
		}
		return workspace{cfg: config.Default(), root: wd}, nil
	}
	if err != nil {
		return workspace{}, err
	}
	cfg, err := config.Load(found)
	if err != nil {
		return workspace{}, err
	}
	return workspace{cfg: cfg, root: config.RootFromConfigPath(found)}, nil
}

func (ws workspace) bankPath() string { return config.Resolve(ws.root, ws.cfg.Bank) }

// bankPathOr prefers an explicit --bank flag over the configured path.
// The override is taken relative to the working directory, not the root.
func (ws workspace) bankPathOr(override string) string {
	trimmed := strings.TrimSpace(override)
	if trimmed == "" {
		return ws.bankPath()
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

func (ws workspace) progressPath() string { return config.Resolve(ws.root, ws.cfg.Progress) }
func (ws workspace) historyPath() string  { return config.Resolve(ws.root, ws.cfg.History) }
func (ws workspace) statsDBPath() string  { return config.Resolve(ws.root, ws.cfg.StatsDB) }
func (ws workspace) logPath() string      { return config.Resolve(ws.root, ws.cfg.Log) }
