package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetKeyFromSources_Priority(t *testing.T) {
	t.Setenv("TEST_BIOMAP_KEY", "from-env")

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	sources := []KeySource{
		EnvSource("TEST_BIOMAP_KEY"),
		FileSource(keyFile),
	}
	key, err := GetKeyFromSources(sources)
	if err != nil {
		t.Fatalf("GetKeyFromSources: %v", err)
	}
	if key != "from-env" {
		t.Errorf("key = %q, want from-env (environment wins)", key)
	}

	// with the variable unset the chain falls through to the file
	t.Setenv("TEST_BIOMAP_KEY", "")
	key, err = GetKeyFromSources(sources)
	if err != nil {
		t.Fatal(err)
	}
	if key != "from-file" {
		t.Errorf("key = %q, want from-file", key)
	}
}

func TestGetKeyFromSources_NoKey(t *testing.T) {
	sources := []KeySource{
		EnvSource("TEST_BIOMAP_KEY_UNSET"),
		FileSource(filepath.Join(t.TempDir(), "absent")),
	}
	key, err := GetKeyFromSources(sources)
	if err != nil {
		t.Fatalf("missing key must not error: %v", err)
	}
	if key != "" {
		t.Errorf("key = %q, want empty", key)
	}
}

func TestFileSource_TrimsWhitespace(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(keyFile, []byte("  secret \n\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	key, err := FileSource(keyFile).Key()
	if err != nil {
		t.Fatal(err)
	}
	if key != "secret" {
		t.Errorf("key = %q, want secret", key)
	}
}
