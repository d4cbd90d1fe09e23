package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDir_EnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("MAIZZLE_HOME", tmp)

	if got := Dir(); got != tmp {
		t.Errorf("Dir() = %q, want %q", got, tmp)
	}
	if got := FilePath(); got != filepath.Join(tmp, "config.yaml") {
		t.Errorf("FilePath() = %q", got)
	}
}

func TestSetAndGet(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("MAIZZLE_HOME", tmp)
	Reset()
	t.Cleanup(Reset)

	Load()
	if err := Set(KeyStarter, "acme/email-starter"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := os.ReadFile(FilePath())
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("config file is empty")
	}

	Reset()
	Load()
	if got := Get(KeyStarter); got != "acme/email-starter" {
		t.Errorf("Get(%q) = %q, want %q", KeyStarter, got, "acme/email-starter")
	}
}

func TestUpdateCheckDefault(t *testing.T) {
	t.Setenv("MAIZZLE_HOME", t.TempDir())
	Reset()
	t.Cleanup(Reset)

	Load()
	if !GetBool(KeyUpdateCheck) {
		t.Error("update_check should default to true")
	}

	t.Setenv("MAIZZLE_UPDATE_CHECK", "false")
	if GetBool(KeyUpdateCheck) {
		t.Error("MAIZZLE_UPDATE_CHECK=false should disable update_check")
	}
}
