package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig err=%v", err)
	}
	if cfg.AccountFilePath != "bank_accounts.dat" {
		t.Fatalf("account file path=%q", cfg.AccountFilePath)
	}
	if cfg.MaxLoginAttempts != 3 || cfg.MinPasswordLength != 6 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	data := []byte("account_file_path: /tmp/accounts.dat\nmax_login_attempts: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig err=%v", err)
	}
	if cfg.AccountFilePath != "/tmp/accounts.dat" {
		t.Fatalf("override lost: %q", cfg.AccountFilePath)
	}
	if cfg.MaxLoginAttempts != 5 {
		t.Fatalf("override lost: %d", cfg.MaxLoginAttempts)
	}
	// Untouched fields keep their defaults.
	if cfg.JournalPath != "transactions.log" {
		t.Fatalf("default lost: %q", cfg.JournalPath)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("want error for malformed yaml")
	}
}

func TestLoadConfigRejectsBadLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte("max_login_attempts: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("want error for zero max_login_attempts")
	}
}
