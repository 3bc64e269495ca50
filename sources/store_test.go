package sources

import (
	"testing"

	"github.com/biomap/biomap-go/mapping"
)

func TestGobStore_RoundTrip(t *testing.T) {
	store, err := NewGobStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	table := mapping.BuildTable([]mapping.Pair{
		{A: "TP53", B: "P04637"},
		{A: "EGFR", B: "P00533"},
	}, "genesymbol", "uniprot", 9606, true)

	if err := store.Save(table); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok, err := store.Load("genesymbol", "uniprot", 9606)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("snapshot not found after Save")
	}
	if !loaded.Lookup("TP53").Has("P04637") {
		t.Errorf("loaded table missing TP53 -> P04637")
	}
	if !loaded.Bidirectional {
		t.Error("Bidirectional flag not preserved")
	}
}

func TestGobStore_OppositeOrientation(t *testing.T) {
	store, err := NewGobStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	table := mapping.BuildTable([]mapping.Pair{
		{A: "TP53", B: "P04637"},
	}, "genesymbol", "uniprot", 9606, true)
	if err := store.Save(table); err != nil {
		t.Fatal(err)
	}

	// both orientations share one snapshot file; loading the opposite
	// one re-orients the pairs
	loaded, ok, err := store.Load("uniprot", "genesymbol", 9606)
	if err != nil || !ok {
		t.Fatalf("Load reversed: ok=%v err=%v", ok, err)
	}
	if loaded.IDTypeA != "uniprot" {
		t.Errorf("IDTypeA = %q, want uniprot", loaded.IDTypeA)
	}
	if !loaded.Lookup("P04637").Has("TP53") {
		t.Error("reversed table missing P04637 -> TP53")
	}
}

func TestGobStore_Missing(t *testing.T) {
	store, err := NewGobStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, ok, err := store.Load("genesymbol", "uniprot", 9606)
	if err != nil {
		t.Fatalf("Load of missing snapshot should not error: %v", err)
	}
	if ok {
		t.Error("Load of missing snapshot should report not found")
	}
}

func TestGobStore_TaxonScoping(t *testing.T) {
	store, err := NewGobStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	human := mapping.BuildTable([]mapping.Pair{{A: "TP53", B: "P04637"}},
		"genesymbol", "uniprot", 9606, true)
	mouse := mapping.BuildTable([]mapping.Pair{{A: "Trp53", B: "P02340"}},
		"genesymbol", "uniprot", 10090, true)
	if err := store.Save(human); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(mouse); err != nil {
		t.Fatal(err)
	}

	loaded, ok, err := store.Load("genesymbol", "uniprot", 10090)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if loaded.Lookup("TP53") != nil {
		t.Error("mouse snapshot contains human entries")
	}
	if !loaded.Lookup("Trp53").Has("P02340") {
		t.Error("mouse snapshot missing Trp53 -> P02340")
	}
}
