package mapping

import (
	"sort"
	"strings"
)

// IDSet is a set of identifier strings. Translation results are always
// sets, reflecting the many-to-many nature of identifier spaces.
type IDSet map[string]struct{}

// NewIDSet builds a set from the given identifiers.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an identifier into the set.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether the identifier is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Union merges another set into this one and returns the receiver.
func (s IDSet) Union(other IDSet) IDSet {
	for id := range other {
		s[id] = struct{}{}
	}
	return s
}

// Slice returns the set's members sorted.
func (s IDSet) Slice() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// One returns an arbitrary member, or "" for an empty set.
func (s IDSet) One() string {
	for id := range s {
		return id
	}
	return ""
}

// Pair is one raw (source, target) identifier pair from a backend.
type Pair struct {
	A string
	B string
}

// Table is an immutable many-to-many translation dictionary between two
// identifier namespaces, scoped to one organism. Built exactly once per
// (IDTypeA, IDTypeB, Taxon) and never mutated afterwards, so instances
// are safe to share across goroutines without locking.
type Table struct {
	IDTypeA       string
	IDTypeB       string
	Taxon         int
	Bidirectional bool

	forward map[string]IDSet
	reverse map[string]IDSet
}

// BuildTable consumes the pair stream once, accumulating values per key
// with set-union semantics (an id is never overwritten). If
// bidirectional, the reverse dictionary is built in the same pass.
func BuildTable(pairs []Pair, idTypeA, idTypeB string, taxon int, bidirectional bool) *Table {
	t := &Table{
		IDTypeA:       idTypeA,
		IDTypeB:       idTypeB,
		Taxon:         taxon,
		Bidirectional: bidirectional,
		forward:       make(map[string]IDSet),
	}
	if bidirectional {
		t.reverse = make(map[string]IDSet)
	}
	for _, p := range pairs {
		a := strings.TrimSpace(p.A)
		b := strings.TrimSpace(p.B)
		if a == "" || b == "" {
			continue
		}
		if set, ok := t.forward[a]; ok {
			set.Add(b)
		} else {
			t.forward[a] = NewIDSet(b)
		}
		if bidirectional {
			if set, ok := t.reverse[b]; ok {
				set.Add(a)
			} else {
				t.reverse[b] = NewIDSet(a)
			}
		}
	}
	return t
}

// emptyTable is the "untranslatable" sentinel for a key with no working
// backend. It behaves like a table with no entries.
func emptyTable(idTypeA, idTypeB string, taxon int) *Table {
	return &Table{
		IDTypeA: idTypeA,
		IDTypeB: idTypeB,
		Taxon:   taxon,
		forward: map[string]IDSet{},
	}
}

// Lookup returns the target identifiers for a source identifier, or nil
// if the identifier is not in the table. The returned set must not be
// modified by the caller.
func (t *Table) Lookup(id string) IDSet {
	return t.forward[id]
}

// ReverseLookup returns the source identifiers for a target identifier.
// Returns nil if the table is not bidirectional.
func (t *Table) ReverseLookup(id string) IDSet {
	if t.reverse == nil {
		return nil
	}
	return t.reverse[id]
}

// PrefixLookup returns the union of values for every key sharing the
// given prefix. Used by the lenient gene-symbol fallback.
func (t *Table) PrefixLookup(prefix string) IDSet {
	result := make(IDSet)
	for key, set := range t.forward {
		if strings.HasPrefix(key, prefix) {
			result.Union(set)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// ReversePrefixLookup is PrefixLookup over the reverse index. Returns
// nil if the table is not bidirectional.
func (t *Table) ReversePrefixLookup(prefix string) IDSet {
	if t.reverse == nil {
		return nil
	}
	result := make(IDSet)
	for key, set := range t.reverse {
		if strings.HasPrefix(key, prefix) {
			result.Union(set)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// Len returns the number of distinct source identifiers.
func (t *Table) Len() int {
	return len(t.forward)
}

// Keys returns the source identifiers sorted.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.forward))
	for k := range t.forward {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dict returns a copy of the forward dictionary.
func (t *Table) Dict() map[string]IDSet {
	out := make(map[string]IDSet, len(t.forward))
	for k, set := range t.forward {
		copied := make(IDSet, len(set))
		copied.Union(set)
		out[k] = copied
	}
	return out
}

// Rows returns the table as one row per (source, target) pair, sorted.
func (t *Table) Rows() []Pair {
	rows := make([]Pair, 0, len(t.forward))
	for a, set := range t.forward {
		for b := range set {
			rows = append(rows, Pair{A: a, B: b})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].A != rows[j].A {
			return rows[i].A < rows[j].A
		}
		return rows[i].B < rows[j].B
	})
	return rows
}
