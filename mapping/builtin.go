package mapping

// IDTypeAliases maps user-friendly ID-type names to canonical tags.
var IDTypeAliases = map[string]string{
	"genesymbol":   "genesymbol",
	"gene_symbol":  "genesymbol",
	"symbol":       "genesymbol",
	"hgnc":         "genesymbol",
	"uniprot":      "uniprot",
	"swissprot":    "swissprot",
	"trembl":       "trembl",
	"uniprot-sec":  "uniprot-sec",
	"entrez":       "entrez",
	"geneid":       "entrez",
	"ncbigene":     "entrez",
	"refseq":       "refseqp",
	"refseqp":      "refseqp",
	"ensembl":      "ensg",
	"ensg":         "ensg",
	"ensp":         "ensp",
	"enst":         "enst",
	"protein-name": "protein-name",
	"mirbase":      "mir-mat",
	"mir-mat":      "mir-mat",
	"mir-name":     "mir-name",
	"mir-pre":      "mir-pre",
	"pro":          "pro",
	"complex":      "complex",
}

// CanonicalIDType resolves an ID-type alias. Unknown names pass through
// unchanged so custom registrations keep working.
func CanonicalIDType(name string) string {
	if mapped, ok := IDTypeAliases[name]; ok {
		return mapped
	}
	return name
}

// UniprotRestFields maps canonical ID types to UniProtKB REST return
// field names, for definitions served by the REST backend.
var UniprotRestFields = map[string]string{
	"uniprot":      "accession",
	"genesymbol":   "gene_primary",
	"protein-name": "protein_name",
	"entrez":       "xref_geneid",
	"refseqp":      "xref_refseq",
	"ensg":         "xref_ensembl",
	"pdb":          "xref_pdb",
}

// UniprotListDBs maps canonical ID types to UniProt ID-mapping service
// database names, for definitions served by the ID-mapping job backend.
var UniprotListDBs = map[string]string{
	"uniprot": "UniProtKB_AC-ID",
	"entrez":  "GeneID",
	"refseqp": "RefSeq_Protein",
	"ensg":    "Ensembl",
	"ensp":    "Ensembl_Protein",
	"chembl":  "ChEMBL",
}

// LabelIDType maps entity types to the namespace used for
// human-readable labels.
var LabelIDType = map[EntityType]string{
	EntityProtein: "genesymbol",
	EntityMirna:   "mir-name",
}

// uniprotRestDef builds a bidirectional REST-backed definition between
// uniprot and another ID type for one organism.
func uniprotRestDef(idType string, taxon int) Definition {
	return Definition{
		IDTypeA: "uniprot",
		IDTypeB: idType,
		Taxon:   taxon,
		Kind:    BackendUniprotRest,
		Bi:      true,
		Uniprot: &UniprotParams{
			FieldA: UniprotRestFields["uniprot"],
			FieldB: UniprotRestFields[idType],
		},
	}
}

// DefaultRegistry returns the built-in definition catalogue for one
// organism. Registration order sets backend priority: REST tables are
// preferred, the ID-mapping job and BioMart serve as fallbacks.
func DefaultRegistry(taxon int) *Registry {
	r := NewRegistry()

	// UniProt REST, symmetric.
	for _, idType := range []string{
		"genesymbol", "protein-name", "entrez", "refseqp", "ensg",
	} {
		mustRegister(r, uniprotRestDef(idType, taxon))
	}

	// Reviewed-only view of genesymbol, used by the Trembl cleanup.
	mustRegister(r, Definition{
		IDTypeA: "swissprot",
		IDTypeB: "genesymbol",
		Taxon:   taxon,
		Kind:    BackendUniprotRest,
		Bi:      true,
		Uniprot: &UniprotParams{
			FieldA:       UniprotRestFields["uniprot"],
			FieldB:       UniprotRestFields["genesymbol"],
			ReviewedOnly: true,
		},
	})

	// ID-mapping job fallbacks for the REST pairs plus ChEMBL.
	for _, idType := range []string{"entrez", "refseqp", "ensg", "chembl"} {
		mustRegister(r, Definition{
			IDTypeA: "uniprot",
			IDTypeB: idType,
			Taxon:   taxon,
			Kind:    BackendUniprotList,
			Bi:      true,
			UniprotList: &UniprotListParams{
				FromDB: UniprotListDBs["uniprot"],
				ToDB:   UniprotListDBs[idType],
			},
		})
	}

	// Ensembl gene <-> Entrez via BioMart.
	mustRegister(r, Definition{
		IDTypeA: "ensg",
		IDTypeB: "entrez",
		Taxon:   taxon,
		Kind:    BackendBiomart,
		Bi:      true,
		Biomart: &BiomartParams{
			Dataset: "hsapiens_gene_ensembl",
			AttrA:   "ensembl_gene_id",
			AttrB:   "entrezgene_id",
		},
	})

	// Protein Ontology <-> UniProt, organism-independent.
	mustRegister(r, Definition{
		IDTypeA: "pro",
		IDTypeB: "uniprot",
		Taxon:   TaxonAny,
		Kind:    BackendPro,
		Bi:      true,
		Pro: &ProParams{
			URL:       "https://proconsortium.org/download/current/promapping.txt",
			Namespace: "UniProtKB",
		},
	})

	// miRBase mature accession <-> name, organism-independent.
	mustRegister(r, Definition{
		IDTypeA: "mir-mat",
		IDTypeB: "mir-name",
		Taxon:   TaxonAny,
		Kind:    BackendFile,
		Bi:      true,
		File: &FileParams{
			Path: "mirbase_mature.tsv",
			ColA: 0,
			ColB: 1,
		},
	})

	// Secondary -> primary UniProt accessions, organism-independent.
	mustRegister(r, Definition{
		IDTypeA: "uniprot-sec",
		IDTypeB: "uniprot",
		Taxon:   TaxonAny,
		Kind:    BackendFile,
		File: &FileParams{
			Path:   "sec_ac.tsv",
			ColA:   0,
			ColB:   1,
			Header: true,
		},
	})

	return r
}

func mustRegister(r *Registry, def Definition) {
	if err := r.Register(def, false); err != nil {
		panic(err)
	}
}
