package sources

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/biomap/biomap-go/mapping"
)

// tableSnapshot is the serialized form of a built table.
type tableSnapshot struct {
	IDTypeA       string
	IDTypeB       string
	Taxon         int
	Bidirectional bool
	Pairs         []mapping.Pair
}

// GobStore persists built tables as gob snapshots under one directory,
// named <idTypeA>_<idTypeB>_<taxon>.gob. Loading a snapshot bypasses
// the network backends entirely.
type GobStore struct {
	Dir string
}

// NewGobStore creates a store rooted at dir, creating it if needed.
func NewGobStore(dir string) (*GobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}
	return &GobStore{Dir: dir}, nil
}

// path builds the snapshot filename for a table key. The pair is
// normalized to lexical order so both orientations share one file.
func (s *GobStore) path(idTypeA, idTypeB string, taxon int) string {
	a := strings.ToLower(idTypeA)
	b := strings.ToLower(idTypeB)
	if a > b {
		a, b = b, a
	}
	return filepath.Join(s.Dir, fmt.Sprintf("%s_%s_%d.gob", a, b, taxon))
}

// Save writes a table snapshot.
func (s *GobStore) Save(t *mapping.Table) error {
	snap := tableSnapshot{
		IDTypeA:       t.IDTypeA,
		IDTypeB:       t.IDTypeB,
		Taxon:         t.Taxon,
		Bidirectional: t.Bidirectional,
		Pairs:         t.Rows(),
	}

	path := s.path(t.IDTypeA, t.IDTypeB, t.Taxon)
	tmp, err := os.CreateTemp(s.Dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(&snap); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a table snapshot. The second return is false when no
// snapshot exists for the key.
func (s *GobStore) Load(idTypeA, idTypeB string, taxon int) (*mapping.Table, bool, error) {
	f, err := os.Open(s.path(idTypeA, idTypeB, taxon))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	var snap tableSnapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, false, fmt.Errorf("decoding snapshot: %w", err)
	}

	pairs := snap.Pairs
	if snap.IDTypeA != strings.ToLower(idTypeA) {
		// snapshot saved in the opposite orientation
		swapped := make([]mapping.Pair, len(pairs))
		for i, p := range pairs {
			swapped[i] = mapping.Pair{A: p.B, B: p.A}
		}
		pairs = swapped
	}
	table := mapping.BuildTable(pairs, strings.ToLower(idTypeA), strings.ToLower(idTypeB), taxon, snap.Bidirectional)
	return table, true, nil
}
