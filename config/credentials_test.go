package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadAPIKey(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := SaveAPIKey("anthropic", "sk-ant-test"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := LoadAPIKey("anthropic"); got != "sk-ant-test" {
		t.Errorf("expected stored key back, got %q", got)
	}
}

func TestSaveAPIKeyTrimsAndRejectsBlank(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := SaveAPIKey("anthropic", "  sk-trimmed  "); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := LoadAPIKey("anthropic"); got != "sk-trimmed" {
		t.Errorf("expected trimmed key, got %q", got)
	}

	if err := SaveAPIKey("anthropic", "   "); err == nil {
		t.Error("expected error for blank key")
	}
}

func TestSaveAPIKeyPreservesOtherProviders(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := SaveAPIKey("anthropic", "key-a"); err != nil {
		t.Fatalf("save anthropic: %v", err)
	}
	if err := SaveAPIKey("openai", "key-b"); err != nil {
		t.Fatalf("save openai: %v", err)
	}

	if got := LoadAPIKey("anthropic"); got != "key-a" {
		t.Errorf("anthropic key clobbered: %q", got)
	}
	if got := LoadAPIKey("openai"); got != "key-b" {
		t.Errorf("openai key missing: %q", got)
	}
}

func TestCredentialFilePermissions(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	if err := SaveAPIKey("anthropic", "sk-ant-test"); err != nil {
		t.Fatalf("save: %v", err)
	}

	dir := filepath.Join(tmp, "shellsage")
	dirInfo, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if dirInfo.Mode().Perm() != 0o700 {
		t.Errorf("expected dir mode 0700, got %o", dirInfo.Mode().Perm())
	}

	fileInfo, err := os.Stat(filepath.Join(dir, credentialsFile))
	if err != nil {
		t.Fatalf("stat file: %v", err)
	}
	if fileInfo.Mode().Perm() != 0o600 {
		t.Errorf("expected file mode 0600, got %o", fileInfo.Mode().Perm())
	}
}

func TestLoadAPIKeyMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if got := LoadAPIKey("anthropic"); got != "" {
		t.Errorf("missing file should yield no key, got %q", got)
	}
}

func TestLoadAPIKeyMalformedFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, "shellsage")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, credentialsFile), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if got := LoadAPIKey("anthropic"); got != "" {
		t.Errorf("malformed file should yield no key, got %q", got)
	}
}

func TestSaveAPIKeyRecoversFromCorruptFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, "shellsage")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, credentialsFile), []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := SaveAPIKey("anthropic", "fresh-key"); err != nil {
		t.Fatalf("save over corrupt file: %v", err)
	}
	if got := LoadAPIKey("anthropic"); got != "fresh-key" {
		t.Errorf("expected fresh key, got %q", got)
	}
}
