// Package settings holds the configuration surface of the mapping
// toolkit.
//
// Values are resolved from explicit code, then environment variables
// (BIOMAP_*), then built-in defaults, mirroring the resolution-chain
// approach used for credentials.
package settings

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultOrganism is human (NCBI Taxonomy 9606).
	DefaultOrganism = 9606
	// DefaultCleanupInterval is how often the idle-eviction sweep runs.
	DefaultCleanupInterval = 60 * time.Second
	// DefaultTableLifetime is how long an unused table stays cached.
	DefaultTableLifetime = 300 * time.Second
	// DefaultGenesymbolPrefixLen is the prefix length for the lenient
	// gene-symbol fallback.
	DefaultGenesymbolPrefixLen = 5
)

// Settings configures organism defaults, cache behavior, and the
// gene-symbol and UniProt cleanup heuristics.
type Settings struct {
	// DefaultOrganism is the NCBI Taxonomy ID assumed when a caller
	// does not specify one.
	DefaultOrganism int

	// CleanupInterval is the period of the cache eviction sweep.
	CleanupInterval time.Duration

	// TableLifetime is the idle time after which a table is evicted.
	TableLifetime time.Duration

	// TranslateDeletedUniprot enables translating secondary/deleted
	// UniProt accessions to current primary ones.
	TranslateDeletedUniprot bool

	// KeepInvalidUniprot keeps result accessions that fail the UniProt
	// format check instead of dropping them.
	KeepInvalidUniprot bool

	// TremblSwissprotByGenesymbol enables replacing Trembl accessions
	// with Swiss-Prot accessions sharing the same gene symbol.
	TremblSwissprotByGenesymbol bool

	// UseCache enables on-disk table snapshots.
	UseCache bool

	// CacheDir is where table snapshots are stored.
	CacheDir string

	// GenesymbolPrefixLen is the prefix length used by the lenient
	// gene-symbol fallback (0 disables it).
	GenesymbolPrefixLen int

	// GenesymbolDigitRetry enables retrying a failed gene symbol with
	// a trailing "1" appended.
	GenesymbolDigitRetry bool
}

// Default returns the built-in defaults.
func Default() *Settings {
	return &Settings{
		DefaultOrganism:             DefaultOrganism,
		CleanupInterval:             DefaultCleanupInterval,
		TableLifetime:               DefaultTableLifetime,
		TranslateDeletedUniprot:     true,
		KeepInvalidUniprot:          false,
		TremblSwissprotByGenesymbol: true,
		UseCache:                    false,
		CacheDir:                    defaultCacheDir(),
		GenesymbolPrefixLen:         DefaultGenesymbolPrefixLen,
		GenesymbolDigitRetry:        true,
	}
}

// FromEnv returns the defaults overridden by any BIOMAP_* environment
// variables that are set.
func FromEnv() *Settings {
	s := Default()

	if v, ok := envInt("BIOMAP_ORGANISM"); ok {
		s.DefaultOrganism = v
	}
	if v, ok := envSeconds("BIOMAP_CLEANUP_INTERVAL"); ok {
		s.CleanupInterval = v
	}
	if v, ok := envSeconds("BIOMAP_TABLE_LIFETIME"); ok {
		s.TableLifetime = v
	}
	if v, ok := envBool("BIOMAP_TRANSLATE_DELETED_UNIPROT"); ok {
		s.TranslateDeletedUniprot = v
	}
	if v, ok := envBool("BIOMAP_KEEP_INVALID_UNIPROT"); ok {
		s.KeepInvalidUniprot = v
	}
	if v, ok := envBool("BIOMAP_TREMBL_SWISSPROT"); ok {
		s.TremblSwissprotByGenesymbol = v
	}
	if v, ok := envBool("BIOMAP_USE_CACHE"); ok {
		s.UseCache = v
	}
	if dir := os.Getenv("BIOMAP_CACHE_DIR"); dir != "" {
		s.CacheDir = dir
	}
	if v, ok := envInt("BIOMAP_GENESYMBOL_PREFIX_LEN"); ok {
		s.GenesymbolPrefixLen = v
	}
	if v, ok := envBool("BIOMAP_GENESYMBOL_DIGIT_RETRY"); ok {
		s.GenesymbolDigitRetry = v
	}

	return s
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + string(os.PathSeparator) + "biomap"
	}
	return ".biomap-cache"
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envSeconds(name string) (time.Duration, bool) {
	v, ok := envInt(name)
	if !ok {
		return 0, false
	}
	return time.Duration(v) * time.Second, true
}

func envBool(name string) (bool, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
