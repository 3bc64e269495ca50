// Package mapping implements identifier translation between biological
// ID namespaces (UniProt, Gene Symbol, Entrez, RefSeq, miRBase, ...).
//
// Translation tables are many-to-many, built lazily from pluggable
// backends, cached per (id type pair, organism), and queried through the
// Mapper facade. A single unmappable identifier never aborts a batch:
// lookups that find nothing return an empty set.
package mapping

import (
	"sort"
	"strings"
)

// EntityType classifies what kind of biological entity an identifier
// refers to.
type EntityType int

const (
	// EntityProtein is the default entity type.
	EntityProtein EntityType = iota
	// EntityMirna is a mature miRNA (MIMAT accessions).
	EntityMirna
	// EntityComplex is a protein complex pseudo-entity.
	EntityComplex
)

// String returns the lowercase name of the entity type.
func (e EntityType) String() string {
	switch e {
	case EntityMirna:
		return "mirna"
	case EntityComplex:
		return "complex"
	default:
		return "protein"
	}
}

const (
	// ComplexPrefix marks identifiers in the complex namespace.
	ComplexPrefix = "COMPLEX:"
	// mirnaPrefix marks mature miRNA accessions.
	mirnaPrefix = "MIMAT"
	// complexSep joins component identifiers inside a complex identifier.
	complexSep = "_"
)

// Classify determines the entity type of a raw identifier from its
// lexical form. It is total: unknown forms default to protein.
func Classify(identifier string) EntityType {
	id := strings.TrimSpace(identifier)
	switch {
	case strings.HasPrefix(id, ComplexPrefix):
		return EntityComplex
	case strings.HasPrefix(id, mirnaPrefix):
		return EntityMirna
	default:
		return EntityProtein
	}
}

// ComplexComponents splits a complex identifier into its component
// identifiers. Returns nil if the identifier is not in the complex
// namespace.
func ComplexComponents(identifier string) []string {
	id := strings.TrimSpace(identifier)
	if !strings.HasPrefix(id, ComplexPrefix) {
		return nil
	}
	body := strings.TrimPrefix(id, ComplexPrefix)
	if body == "" {
		return nil
	}
	return strings.Split(body, complexSep)
}

// ComplexID builds the canonical complex identifier from component
// identifiers. Components are sorted so equal sets yield equal IDs.
func ComplexID(components []string) string {
	sorted := make([]string, len(components))
	copy(sorted, components)
	sort.Strings(sorted)
	return ComplexPrefix + strings.Join(sorted, complexSep)
}

// EntityKey is a normalized identifier triple. It is comparable and
// used as a map key and set member throughout.
type EntityKey struct {
	// ID is the identifier string.
	ID string

	// IDType is the namespace tag (e.g. "uniprot", "genesymbol").
	IDType string

	// Entity is the entity type, derivable from ID unless overridden.
	Entity EntityType

	// Taxon is the NCBI Taxonomy ID, or TaxonAny.
	Taxon int
}

// TaxonAny is the sentinel taxon for organism-independent identifiers.
const TaxonAny = 0

// NewEntityKey normalizes the inputs and classifies the entity type
// from the identifier's form.
func NewEntityKey(id, idType string, taxon int) EntityKey {
	id = strings.TrimSpace(id)
	return EntityKey{
		ID:     id,
		IDType: strings.ToLower(strings.TrimSpace(idType)),
		Entity: Classify(id),
		Taxon:  taxon,
	}
}

// Less orders keys lexicographically by identifier.
func (k EntityKey) Less(other EntityKey) bool {
	return k.ID < other.ID
}
