package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration loaded from .mmc/config.yml.
// All paths are resolved relative to the config root.
type Config struct {
	Version  int    `yaml:"version"`
	Bank     string `yaml:"bank"`
	Progress string `yaml:"progress"`
	History  string `yaml:"history"`
	StatsDB  string `yaml:"stats_db"`
	Log      string `yaml:"log"`
	Exam     Exam   `yaml:"exam"`
}

// Exam configures the timed exam mix.
type Exam struct {
	TF       int    `yaml:"tf"`
	QCM      int    `yaml:"qcm"`
	Duration string `yaml:"duration"`
}

// ExamDuration parses the configured wall-clock limit.
func (c Config) ExamDuration() (time.Duration, error) {
	return time.ParseDuration(c.Exam.Duration)
}

// ParseConfig decodes a config document, rejecting unknown fields.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Normalize trims fields and fills defaults so a minimal or absent config
// behaves like the original file layout.
func Normalize(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	cfg.Bank = strings.TrimSpace(cfg.Bank)
	if cfg.Bank == "" {
		cfg.Bank = DefaultBankFile
	}
	cfg.Progress = strings.TrimSpace(cfg.Progress)
	if cfg.Progress == "" {
		cfg.Progress = DefaultProgressFile
	}
	cfg.History = strings.TrimSpace(cfg.History)
	if cfg.History == "" {
		cfg.History = DefaultHistoryFile
	}
	cfg.StatsDB = strings.TrimSpace(cfg.StatsDB)
	if cfg.StatsDB == "" {
		cfg.StatsDB = DefaultStatsDBFile
	}
	cfg.Log = strings.TrimSpace(cfg.Log)
	if cfg.Log == "" {
		cfg.Log = DefaultLogFile
	}
	// A zero pair means the exam block was not set. A single explicit
	// zero stays, so a mix like tf: 0, qcm: 6 remains configurable.
	if cfg.Exam.TF == 0 && cfg.Exam.QCM == 0 {
		cfg.Exam.TF = 3
		cfg.Exam.QCM = 3
	}
	cfg.Exam.Duration = strings.TrimSpace(cfg.Exam.Duration)
	if cfg.Exam.Duration == "" {
		cfg.Exam.Duration = "10m"
	}
}

// Validate checks field values, collecting every issue into one error.
func Validate(cfg *Config) error {
	var issues []string
	if cfg.Version != 1 {
		issues = append(issues, fmt.Sprintf("version: unsupported version %d", cfg.Version))
	}
	if cfg.Exam.TF < 0 {
		issues = append(issues, "exam.tf: must not be negative")
	}
	if cfg.Exam.QCM < 0 {
		issues = append(issues, "exam.qcm: must not be negative")
	}
	if duration, err := cfg.ExamDuration(); err != nil {
		issues = append(issues, fmt.Sprintf("exam.duration: %v", err))
	} else if duration <= 0 {
		issues = append(issues, "exam.duration: must be positive")
	}
	if len(issues) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(issues, "; "))
	}
	return nil
}
