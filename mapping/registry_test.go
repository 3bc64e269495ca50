package mapping

import (
	"errors"
	"testing"
)

func fileDef(a, b string, taxon int, bi bool, path string) Definition {
	return Definition{
		IDTypeA: a,
		IDTypeB: b,
		Taxon:   taxon,
		Kind:    BackendFile,
		Bi:      bi,
		File:    &FileParams{Path: path, ColA: 0, ColB: 1},
	}
}

func TestRegistry_RegisterConflict(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(fileDef("a", "b", 9606, false, "one.tsv"), false); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	// identical re-registration is a no-op
	if err := r.Register(fileDef("a", "b", 9606, false, "one.tsv"), false); err != nil {
		t.Errorf("identical re-registration should not fail: %v", err)
	}

	// same kind, different backend params: conflict
	err := r.Register(fileDef("a", "b", 9606, false, "two.tsv"), false)
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Errorf("conflicting Register error = %v, want ConfigurationError", err)
	}

	// with overwrite the conflicting entry is replaced
	if err := r.Register(fileDef("a", "b", 9606, false, "two.tsv"), true); err != nil {
		t.Errorf("Register with overwrite: %v", err)
	}
	defs := r.Lookup("a", "b", 9606)
	if len(defs) != 1 || defs[0].File.Path != "two.tsv" {
		t.Errorf("overwrite did not replace the definition: %+v", defs)
	}
}

func TestRegistry_LookupSymmetry(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(fileDef("genesymbol", "uniprot", 9606, true, "gs.tsv"), false); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(fileDef("uniprot-sec", "uniprot", 0, false, "sec.tsv"), false); err != nil {
		t.Fatal(err)
	}

	if len(r.Lookup("genesymbol", "uniprot", 9606)) != 1 {
		t.Error("natural direction should resolve")
	}
	if len(r.Lookup("uniprot", "genesymbol", 9606)) != 1 {
		t.Error("bi definition should resolve in the reverse direction")
	}
	if len(r.Lookup("uniprot-sec", "uniprot", 0)) != 1 {
		t.Error("natural direction of one-way definition should resolve")
	}
	if len(r.Lookup("uniprot", "uniprot-sec", 0)) != 0 {
		t.Error("one-way definition must not resolve in reverse")
	}
	if len(r.Lookup("genesymbol", "uniprot", 10090)) != 0 {
		t.Error("different taxon must not resolve")
	}
}

func TestRegistry_PriorityOrder(t *testing.T) {
	r := NewRegistry()
	first := Definition{
		IDTypeA: "uniprot", IDTypeB: "entrez", Taxon: 9606,
		Kind: BackendUniprotRest, Bi: true,
		Uniprot: &UniprotParams{FieldA: "accession", FieldB: "xref_geneid"},
	}
	second := fileDef("uniprot", "entrez", 9606, true, "fallback.tsv")
	if err := r.Register(first, false); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(second, false); err != nil {
		t.Fatal(err)
	}

	defs := r.Lookup("uniprot", "entrez", 9606)
	if len(defs) != 2 {
		t.Fatalf("len(defs) = %d, want 2", len(defs))
	}
	if defs[0].Kind != BackendUniprotRest || defs[1].Kind != BackendFile {
		t.Errorf("candidates out of registration order: %v, %v", defs[0].Kind, defs[1].Kind)
	}
}

func TestRegistry_Intermediates(t *testing.T) {
	r := NewRegistry()
	for _, def := range []Definition{
		fileDef("refseqp", "entrez", 9606, true, "a.tsv"),
		fileDef("entrez", "uniprot", 9606, true, "b.tsv"),
		fileDef("refseqp", "ensg", 9606, false, "c.tsv"), // ensg has no hop to uniprot
	} {
		if err := r.Register(def, false); err != nil {
			t.Fatal(err)
		}
	}

	got := r.Intermediates("refseqp", "uniprot", 9606)
	if len(got) != 1 || got[0] != "entrez" {
		t.Errorf("Intermediates = %v, want [entrez]", got)
	}
}

func TestRegistry_IntermediatesOrganismIndependent(t *testing.T) {
	r := NewRegistry()
	for _, def := range []Definition{
		fileDef("pro", "uniprot", TaxonAny, true, "pro.tsv"),
		fileDef("uniprot", "genesymbol", 9606, true, "gs.tsv"),
	} {
		if err := r.Register(def, false); err != nil {
			t.Fatal(err)
		}
	}

	// an organism-independent table serves as a hop for a scoped request
	got := r.Intermediates("pro", "genesymbol", 9606)
	if len(got) != 1 || got[0] != "uniprot" {
		t.Errorf("Intermediates = %v, want [uniprot]", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(9606)

	if !r.Has("uniprot", "genesymbol", 9606) {
		t.Error("uniprot<->genesymbol should be registered")
	}
	if !r.Has("genesymbol", "uniprot", 9606) {
		t.Error("symmetric lookup should resolve")
	}
	if !r.Has("pro", "uniprot", TaxonAny) {
		t.Error("pro<->uniprot should be organism-independent")
	}
	if !r.Knows("mir-mat") {
		t.Error("mir-mat should be known")
	}

	// REST preferred over the ID-mapping job for entrez
	defs := r.Lookup("uniprot", "entrez", 9606)
	if len(defs) < 2 {
		t.Fatalf("want at least 2 candidates for uniprot<->entrez, got %d", len(defs))
	}
	if defs[0].Kind != BackendUniprotRest {
		t.Errorf("preferred backend = %v, want uniprot_rest", defs[0].Kind)
	}
}

func TestCanonicalIDType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"symbol", "genesymbol"},
		{"geneid", "entrez"},
		{"refseq", "refseqp"},
		{"uniprot", "uniprot"},
		{"custom-namespace", "custom-namespace"}, // passes through
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CanonicalIDType(tt.in); got != tt.want {
				t.Errorf("CanonicalIDType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
