// Package auth resolves the optional API key some mapping-data mirrors
// require.
//
// The key is resolved through a source chain checked in priority order:
//  1. Environment variable (BIOMAP_API_KEY)
//  2. Key file (~/.biomap_key)
//
// A missing key is not an error: public endpoints work without one.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KeySource provides an API key from one location.
type KeySource interface {
	// Key returns the key from this source, or empty string if not
	// available.
	Key() (string, error)

	// Name returns a human-readable name for this source.
	Name() string
}

// envSource reads a key from an environment variable.
type envSource struct {
	varName string
}

// EnvSource creates a KeySource reading the given environment variable.
func EnvSource(varName string) KeySource {
	return &envSource{varName: varName}
}

func (s *envSource) Key() (string, error) {
	return strings.TrimSpace(os.Getenv(s.varName)), nil
}

func (s *envSource) Name() string {
	return fmt.Sprintf("environment variable %s", s.varName)
}

// fileSource reads a key from a file.
type fileSource struct {
	path string
}

// FileSource creates a KeySource reading the given file path.
func FileSource(path string) KeySource {
	return &fileSource{path: path}
}

func (s *fileSource) Key() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil // no key stored, not an error
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *fileSource) Name() string {
	return fmt.Sprintf("file %s", s.path)
}

// DefaultKeyPath returns the default path of the key file.
func DefaultKeyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".biomap_key")
}

// DefaultSources returns the default key source chain.
func DefaultSources() []KeySource {
	sources := []KeySource{
		EnvSource("BIOMAP_API_KEY"),
	}
	if path := DefaultKeyPath(); path != "" {
		sources = append(sources, FileSource(path))
	}
	return sources
}

// GetKey resolves an API key using the default source chain. Returns
// "" if no key is configured.
func GetKey() (string, error) {
	return GetKeyFromSources(DefaultSources())
}

// GetKeyFromSources resolves an API key using the provided chain.
func GetKeyFromSources(sources []KeySource) (string, error) {
	for _, source := range sources {
		key, err := source.Key()
		if err != nil {
			return "", fmt.Errorf("reading from %s: %w", source.Name(), err)
		}
		if key != "" {
			return key, nil
		}
	}
	return "", nil
}

// SaveKey writes the key to the default key file with mode 0600.
func SaveKey(key string) error {
	path := DefaultKeyPath()
	if path == "" {
		return fmt.Errorf("cannot determine home directory")
	}
	if err := os.WriteFile(path, []byte(key+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}
	return nil
}

// DeleteKey removes the key file if it exists.
func DeleteKey() error {
	path := DefaultKeyPath()
	if path == "" {
		return fmt.Errorf("cannot determine home directory")
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting key file: %w", err)
	}
	return nil
}
