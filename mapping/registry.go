package mapping

import (
	"sort"
	"strings"
)

// pairKey identifies a translation table: an unordered ID-type pair plus
// the organism. The pair is stored in lexical order so lookups in either
// direction hit the same bucket.
type pairKey struct {
	lo    string
	hi    string
	taxon int
}

func newPairKey(a, b string, taxon int) pairKey {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b, taxon: taxon}
}

// Registry is the declarative catalogue of every resolvable ID-type
// pair and how to build it. Lookup misses are not errors at this layer:
// an empty candidate list signals the Mapper to try two-hop resolution.
type Registry struct {
	defs map[pairKey][]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[pairKey][]*Definition)}
}

// Register adds a definition. Registration order determines candidate
// priority: the first registered definition for a pair is preferred and
// later ones are fallbacks. Registering an identical key with a
// conflicting backend fails with ConfigurationError unless overwrite is
// set, in which case the conflicting entry is replaced.
func (r *Registry) Register(def Definition, overwrite bool) error {
	def.normalize()
	if def.IDTypeA == "" || def.IDTypeB == "" {
		return Configf("definition requires both ID types (got %q, %q)", def.IDTypeA, def.IDTypeB)
	}
	key := newPairKey(def.IDTypeA, def.IDTypeB, def.Taxon)
	for i, existing := range r.defs[key] {
		if existing.IDTypeA != def.IDTypeA || existing.IDTypeB != def.IDTypeB {
			continue
		}
		if existing.sameBackend(&def) {
			return nil // identical re-registration is a no-op
		}
		if existing.Kind != def.Kind {
			continue // a different backend kind is a legitimate fallback
		}
		if !overwrite {
			return Configf("conflicting %s definition for %s<->%s (taxon %d) already registered",
				def.Kind, def.IDTypeA, def.IDTypeB, def.Taxon)
		}
		r.defs[key][i] = &def
		return nil
	}
	r.defs[key] = append(r.defs[key], &def)
	return nil
}

// Lookup returns the candidate definitions for translating a to b,
// ordered by registration priority. Definitions registered in the
// opposite natural direction are included only if symmetric. An empty
// result means "no direct table" and is not an error.
func (r *Registry) Lookup(a, b string, taxon int) []*Definition {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	var out []*Definition
	for _, def := range r.defs[newPairKey(a, b, taxon)] {
		if def.IDTypeA == a && def.IDTypeB == b {
			out = append(out, def)
		} else if def.Symmetric() {
			out = append(out, def)
		}
	}
	return out
}

// Intermediates returns the ID types usable as the middle step of a
// two-hop translation a -> x -> b, sorted for deterministic order.
// Organism-independent tables (TaxonAny) qualify as hops for any
// organism.
func (r *Registry) Intermediates(a, b string, taxon int) []string {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	seen := make(map[string]struct{})
	for key := range r.defs {
		var other string
		switch {
		case key.taxon != taxon && key.taxon != TaxonAny:
			continue
		case key.lo == a:
			other = key.hi
		case key.hi == a:
			other = key.lo
		default:
			continue
		}
		if other == b {
			continue
		}
		if !r.hasAnyTaxon(a, other, taxon) {
			continue
		}
		if !r.hasAnyTaxon(other, b, taxon) {
			continue
		}
		seen[other] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for x := range seen {
		out = append(out, x)
	}
	sort.Strings(out)
	return out
}

// hasAnyTaxon reports whether a -> b resolves at the given taxon or
// organism-independently.
func (r *Registry) hasAnyTaxon(a, b string, taxon int) bool {
	if r.Has(a, b, taxon) {
		return true
	}
	return taxon != TaxonAny && r.Has(a, b, TaxonAny)
}

// IDTypes returns every ID type mentioned by any registered definition.
func (r *Registry) IDTypes() []string {
	seen := make(map[string]struct{})
	for key := range r.defs {
		seen[key.lo] = struct{}{}
		seen[key.hi] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Pairs returns every registered (idTypeA, idTypeB, taxon) combination
// in natural direction, sorted.
func (r *Registry) Pairs() []Definition {
	var out []Definition
	for _, defs := range r.defs {
		for _, def := range defs {
			out = append(out, *def)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IDTypeA != out[j].IDTypeA {
			return out[i].IDTypeA < out[j].IDTypeA
		}
		if out[i].IDTypeB != out[j].IDTypeB {
			return out[i].IDTypeB < out[j].IDTypeB
		}
		return out[i].Taxon < out[j].Taxon
	})
	return out
}

// Has reports whether any definition can serve a -> b directly.
func (r *Registry) Has(a, b string, taxon int) bool {
	return len(r.Lookup(a, b, taxon)) > 0
}

// Knows reports whether the ID type appears in any registered pair.
func (r *Registry) Knows(idType string) bool {
	idType = strings.ToLower(strings.TrimSpace(idType))
	for key := range r.defs {
		if key.lo == idType || key.hi == idType {
			return true
		}
	}
	return false
}
