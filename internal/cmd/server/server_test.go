package server

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Errorf("expected stdio transport, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8700" {
		t.Errorf("unexpected HTTP addr %q", cfg.HTTPAddr)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("unexpected request timeout %v", cfg.RequestTimeout)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("PLANFIX_ACCOUNT", "testco")
	t.Setenv("PLANFIX_API_KEY", "env-key")
	t.Setenv("PLANFIX_MCP_TRANSPORT", "http")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Account != "testco" || cfg.APIKey != "env-key" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Transport != "http" {
		t.Errorf("expected http transport, got %q", cfg.Transport)
	}
}

func TestParseConfigFlagsBeatEnv(t *testing.T) {
	t.Setenv("PLANFIX_ACCOUNT", "envco")
	t.Setenv("PLANFIX_MCP_HTTP_ADDR", "localhost:9999")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"--account", "flagco", "--http-addr", "localhost:8701"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Account != "flagco" {
		t.Errorf("expected flag to win, got %q", cfg.Account)
	}
	if cfg.HTTPAddr != "localhost:8701" {
		t.Errorf("expected flag to win, got %q", cfg.HTTPAddr)
	}
}

func TestParseConfigBadFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"--no-such-flag"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
