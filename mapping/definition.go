package mapping

import "strings"

// BackendKind selects the loader strategy for a definition.
type BackendKind int

const (
	// BackendFile reads pairs from a local delimited file.
	BackendFile BackendKind = iota
	// BackendUniprotRest streams a two-column table from the UniProtKB
	// REST endpoint. Intrinsically symmetric.
	BackendUniprotRest
	// BackendUniprotList runs a UniProt ID-mapping job
	// (submit, poll, fetch results).
	BackendUniprotList
	// BackendBiomart posts a BioMart XML query.
	BackendBiomart
	// BackendPro reads the Protein Ontology mapping file.
	BackendPro
	// BackendSnapshot deserializes a previously saved table snapshot.
	BackendSnapshot
)

// String returns the backend kind's name.
func (k BackendKind) String() string {
	switch k {
	case BackendFile:
		return "file"
	case BackendUniprotRest:
		return "uniprot_rest"
	case BackendUniprotList:
		return "uniprot_list"
	case BackendBiomart:
		return "biomart"
	case BackendPro:
		return "pro"
	case BackendSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// symmetric reports whether the backend yields pairs that can serve
// either direction without a separate registration.
func (k BackendKind) symmetric() bool {
	return k == BackendUniprotRest
}

// FileParams configures a local delimited-file backend.
type FileParams struct {
	// Path is the file location.
	Path string

	// ColA and ColB are the 0-based columns for the two ID spaces.
	ColA int
	ColB int

	// Separator defaults to tab.
	Separator string

	// Header indicates a header row to skip.
	Header bool

	// ValueSeparator splits multi-valued cells; empty means single-valued.
	ValueSeparator string
}

// UniprotParams configures the UniProtKB REST backend.
type UniprotParams struct {
	// FieldA and FieldB are UniProt REST return-field names
	// (e.g. "accession", "gene_primary").
	FieldA string
	FieldB string

	// ReviewedOnly restricts the query to Swiss-Prot records.
	ReviewedOnly bool
}

// UniprotListParams configures the UniProt ID-mapping job backend.
type UniprotListParams struct {
	// FromDB and ToDB are ID-mapping database names
	// (e.g. "UniProtKB_AC-ID", "GeneID").
	FromDB string
	ToDB   string
}

// BiomartParams configures the BioMart XML query backend.
type BiomartParams struct {
	// Dataset is the mart dataset (e.g. "hsapiens_gene_ensembl").
	Dataset string

	// AttrA and AttrB are the two requested attributes.
	AttrA string
	AttrB string
}

// ProParams configures the Protein Ontology mapping-file backend.
type ProParams struct {
	// URL of the promapping file.
	URL string

	// Namespace filters target rows (e.g. "UniProtKB").
	Namespace string
}

// SnapshotParams configures the saved-snapshot backend.
type SnapshotParams struct {
	// Dir is the snapshot directory; empty means the configured cache dir.
	Dir string
}

// Definition declares one resolvable translation: the ID-type pair, the
// organism scope, and which backend builds it. Exactly one params field
// matching Kind is set. Definitions are immutable once registered.
type Definition struct {
	IDTypeA string
	IDTypeB string

	// Taxon scopes the table; TaxonAny means organism-independent.
	Taxon int

	Kind BackendKind

	// Bi marks the resulting table bidirectional: Lookup(b, a) resolves
	// through the same definition without a separate registration.
	Bi bool

	File        *FileParams
	Uniprot     *UniprotParams
	UniprotList *UniprotListParams
	Biomart     *BiomartParams
	Pro         *ProParams
	Snapshot    *SnapshotParams
}

// Symmetric reports whether the definition serves both directions.
func (d *Definition) Symmetric() bool {
	return d.Bi || d.Kind.symmetric()
}

// normalize lowercases the ID-type tags.
func (d *Definition) normalize() {
	d.IDTypeA = strings.ToLower(strings.TrimSpace(d.IDTypeA))
	d.IDTypeB = strings.ToLower(strings.TrimSpace(d.IDTypeB))
}

// sameBackend reports whether two definitions describe the same backend
// configuration for conflict detection at registration.
func (d *Definition) sameBackend(other *Definition) bool {
	if d.Kind != other.Kind || d.Bi != other.Bi {
		return false
	}
	switch d.Kind {
	case BackendFile:
		return d.File != nil && other.File != nil && *d.File == *other.File
	case BackendUniprotRest:
		return d.Uniprot != nil && other.Uniprot != nil && *d.Uniprot == *other.Uniprot
	case BackendUniprotList:
		return d.UniprotList != nil && other.UniprotList != nil && *d.UniprotList == *other.UniprotList
	case BackendBiomart:
		return d.Biomart != nil && other.Biomart != nil && *d.Biomart == *other.Biomart
	case BackendPro:
		return d.Pro != nil && other.Pro != nil && *d.Pro == *other.Pro
	case BackendSnapshot:
		return d.Snapshot != nil && other.Snapshot != nil && *d.Snapshot == *other.Snapshot
	}
	return false
}
