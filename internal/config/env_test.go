package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	RankDir  string `env:"AUTOMATA_TEST_RANKDIR" envDefault:"LR"`
	Minimize bool   `env:"AUTOMATA_TEST_MINIMIZE"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.RankDir != "LR" || cfg.Minimize {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("AUTOMATA_TEST_RANKDIR", "TB")
	t.Setenv("AUTOMATA_TEST_MINIMIZE", "true")
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.RankDir != "TB" || !cfg.Minimize {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("AUTOMATA_TEST_MINIMIZE", "not-a-bool")
	var cfg envTestConfig
	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
