package settings

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.DefaultOrganism != 9606 {
		t.Errorf("DefaultOrganism = %d, want 9606", s.DefaultOrganism)
	}
	if s.TableLifetime != 300*time.Second {
		t.Errorf("TableLifetime = %v, want 300s", s.TableLifetime)
	}
	if s.GenesymbolPrefixLen != 5 {
		t.Errorf("GenesymbolPrefixLen = %d, want 5", s.GenesymbolPrefixLen)
	}
	if !s.TranslateDeletedUniprot || !s.TremblSwissprotByGenesymbol || !s.GenesymbolDigitRetry {
		t.Error("cleanup heuristics should default to enabled")
	}
	if s.KeepInvalidUniprot {
		t.Error("KeepInvalidUniprot should default to disabled")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("BIOMAP_ORGANISM", "10090")
	t.Setenv("BIOMAP_TABLE_LIFETIME", "600")
	t.Setenv("BIOMAP_TREMBL_SWISSPROT", "false")
	t.Setenv("BIOMAP_CACHE_DIR", "/tmp/biomap-test")
	t.Setenv("BIOMAP_GENESYMBOL_PREFIX_LEN", "3")

	s := FromEnv()
	if s.DefaultOrganism != 10090 {
		t.Errorf("DefaultOrganism = %d, want 10090", s.DefaultOrganism)
	}
	if s.TableLifetime != 600*time.Second {
		t.Errorf("TableLifetime = %v, want 600s", s.TableLifetime)
	}
	if s.TremblSwissprotByGenesymbol {
		t.Error("BIOMAP_TREMBL_SWISSPROT=false not applied")
	}
	if s.CacheDir != "/tmp/biomap-test" {
		t.Errorf("CacheDir = %q", s.CacheDir)
	}
	if s.GenesymbolPrefixLen != 3 {
		t.Errorf("GenesymbolPrefixLen = %d, want 3", s.GenesymbolPrefixLen)
	}
}

func TestFromEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("BIOMAP_ORGANISM", "not-a-number")
	t.Setenv("BIOMAP_USE_CACHE", "maybe")

	s := FromEnv()
	if s.DefaultOrganism != 9606 {
		t.Errorf("invalid int should keep the default, got %d", s.DefaultOrganism)
	}
	if s.UseCache {
		t.Error("invalid bool should keep the default")
	}
}
