package main

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfiguration_Defaults(t *testing.T) {
	configPath, envPath, sessionID = "", "", ""

	cfg, err := loadConfiguration()
	if err != nil {
		t.Fatalf("loadConfiguration: %v", err)
	}
	if cfg.SignAPIBase != "https://tiktok.eulerstream.com" {
		t.Errorf("SignAPIBase = %q, want default", cfg.SignAPIBase)
	}
	if cfg.HeartbeatEvery != 5*time.Second {
		t.Errorf("HeartbeatEvery = %v, want 5s default", cfg.HeartbeatEvery)
	}
}

func TestLoadConfiguration_SessionIDFlagOverridesFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "livefeed-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("session_id: from-file\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	configPath, envPath, sessionID = f.Name(), "", "from-flag"
	defer func() { configPath, sessionID = "", "" }()

	cfg, err := loadConfiguration()
	if err != nil {
		t.Fatalf("loadConfiguration: %v", err)
	}
	if cfg.SessionID != "from-flag" {
		t.Errorf("SessionID = %q, want flag value to win over file", cfg.SessionID)
	}
}

func TestLoadConfiguration_MissingFileErrors(t *testing.T) {
	configPath, envPath, sessionID = "/nonexistent/livefeed.yaml", "", ""
	defer func() { configPath = "" }()

	if _, err := loadConfiguration(); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestNewWatchCommand_RequiresExactlyOneArg(t *testing.T) {
	cmd := newWatchCommand()

	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("expected an error with zero args")
	}
	if err := cmd.Args(cmd, []string{"@someone"}); err != nil {
		t.Errorf("expected one arg to be accepted, got %v", err)
	}
	if err := cmd.Args(cmd, []string{"@someone", "extra"}); err == nil {
		t.Error("expected an error with two args")
	}
}
