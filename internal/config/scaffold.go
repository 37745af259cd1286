package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const scaffoldConfig = `version: 1

# Question bank and progress files, relative to this config's root.
bank: mmc_questions.json
progress: progress_data.json
history: .mmc/attempts.jsonl
stats_db: .mmc/stats.duckdb
log: .mmc/mmc.log

exam:
  tf: 3
  qcm: 3
  duration: 10m
`

const scaffoldBank = `{
  "questions": []
}
`

// Scaffold writes .mmc/config.yml and an empty question bank under root.
// Existing files are left untouched.
func Scaffold(root string) ([]string, error) {
	var created []string
	configPath := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	wrote, err := writeIfAbsent(configPath, scaffoldConfig)
	if err != nil {
		return nil, err
	}
	if wrote {
		created = append(created, configPath)
	}

	bankPath := filepath.Join(root, DefaultBankFile)
	wrote, err = writeIfAbsent(bankPath, scaffoldBank)
	if err != nil {
		return nil, err
	}
	if wrote {
		created = append(created, bankPath)
	}
	return created, nil
}

func writeIfAbsent(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
