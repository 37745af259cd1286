package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadDefaults verifies a minimal config fills every default.
func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Bank != DefaultBankFile || cfg.Progress != DefaultProgressFile {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Exam.TF != 3 || cfg.Exam.QCM != 3 {
		t.Fatalf("unexpected exam mix: %+v", cfg.Exam)
	}
	duration, err := cfg.ExamDuration()
	if err != nil || duration != 10*time.Minute {
		t.Fatalf("unexpected duration %v err=%v", duration, err)
	}
}

// TestLoadRejectsUnknownFields verifies typos fail loudly.
func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("version: 1\nbankk: x.json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected unknown field error")
	}
}

// TestNormalizeExamMix verifies a single explicit zero survives while an
// unset exam block falls back to 3+3.
func TestNormalizeExamMix(t *testing.T) {
	cfg := Config{Exam: Exam{TF: 0, QCM: 6}}
	Normalize(&cfg)
	if cfg.Exam.TF != 0 || cfg.Exam.QCM != 6 {
		t.Fatalf("explicit zero must survive, got %+v", cfg.Exam)
	}
	if err := Validate(&cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cfg = Config{}
	Normalize(&cfg)
	if cfg.Exam.TF != 3 || cfg.Exam.QCM != 3 {
		t.Fatalf("unset exam block must default, got %+v", cfg.Exam)
	}
}

// TestValidateDuration verifies bad durations are rejected.
func TestValidateDuration(t *testing.T) {
	for _, duration := range []string{"soon", "-5m", "0s"} {
		cfg := Default()
		cfg.Exam.Duration = duration
		if err := Validate(&cfg); err == nil {
			t.Fatalf("expected rejection of duration %q", duration)
		}
	}
}

// TestFindConfigPathWalksUp verifies the upward search.
func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	if _, err := Scaffold(root); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != ConfigPath(root) {
		t.Fatalf("expected %s, got %s", ConfigPath(root), found)
	}
	if RootFromConfigPath(found) != root {
		t.Fatalf("root mismatch: %s", RootFromConfigPath(found))
	}
}

// TestScaffoldIsIdempotent verifies existing files are preserved.
func TestScaffoldIsIdempotent(t *testing.T) {
	root := t.TempDir()
	created, err := Scaffold(root)
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created files, got %v", created)
	}
	cfg, err := Load(ConfigPath(root))
	if err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	if cfg.Version != 1 {
		t.Fatalf("unexpected scaffolded config: %+v", cfg)
	}

	created, err = Scaffold(root)
	if err != nil {
		t.Fatalf("rescaffold: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("rescaffold must not overwrite, created %v", created)
	}
}

// TestResolve verifies relative paths join the root.
func TestResolve(t *testing.T) {
	if got := Resolve("/repo", "mmc_questions.json"); got != filepath.Join("/repo", "mmc_questions.json") {
		t.Fatalf("unexpected resolve: %s", got)
	}
	if got := Resolve("/repo", "/abs/bank.json"); got != "/abs/bank.json" {
		t.Fatalf("absolute path must pass through, got %s", got)
	}
}
