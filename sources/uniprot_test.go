package sources

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/biomap/biomap-go/mapping"
)

func TestParseTSVPairs(t *testing.T) {
	input := "Entry\tGene Names (primary)\n" +
		"P04637\tTP53\n" +
		"P00533\tEGFR\n" +
		"\n" +
		"P62993\tGRB2; ASH\n" + // multi-valued cell
		"Q00000\t\n" // blank target dropped

	pairs, err := parseTSVPairs(strings.NewReader(input), true)
	if err != nil {
		t.Fatalf("parseTSVPairs: %v", err)
	}

	want := []mapping.Pair{
		{A: "P04637", B: "TP53"},
		{A: "P00533", B: "EGFR"},
		{A: "P62993", B: "GRB2"},
		{A: "P62993", B: "ASH"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("len(pairs) = %d, want %d: %v", len(pairs), len(want), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pairs[%d] = %v, want %v", i, pairs[i], want[i])
		}
	}
}

func TestUniprotRestPairs(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uniprotkb/stream" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		io.WriteString(w, "Entry\tGene Names (primary)\nP04637\tTP53\n")
	}))
	defer server.Close()

	pairs, err := uniprotRestPairs(context.Background(), NewClient(), server.URL,
		&mapping.UniprotParams{FieldA: "accession", FieldB: "gene_primary", ReviewedOnly: true}, 9606)
	if err != nil {
		t.Fatalf("uniprotRestPairs: %v", err)
	}

	if len(pairs) != 1 || pairs[0] != (mapping.Pair{A: "P04637", B: "TP53"}) {
		t.Errorf("pairs = %v", pairs)
	}
	for _, want := range []string{"organism_id%3A9606", "reviewed%3Atrue", "format=tsv"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestUniprotListPairs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/uniprotkb/stream", func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "format=list") {
			t.Errorf("accession listing query = %q", r.URL.RawQuery)
		}
		io.WriteString(w, "P04637\nP00533\n")
	})
	mux.HandleFunc("/idmapping/run", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("from") != "UniProtKB_AC-ID" || r.PostForm.Get("to") != "GeneID" {
			t.Errorf("job form = %v", r.PostForm)
		}
		if r.PostForm.Get("ids") != "P04637,P00533" {
			t.Errorf("ids = %q", r.PostForm.Get("ids"))
		}
		io.WriteString(w, `{"jobId":"test-job"}`)
	})
	mux.HandleFunc("/idmapping/status/test-job", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"jobStatus":"FINISHED"}`)
	})
	mux.HandleFunc("/idmapping/results/stream/test-job", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "From\tTo\nP04637\t7157\nP00533\t1956\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	pairs, err := uniprotListPairs(context.Background(), NewClient(), server.URL,
		&mapping.UniprotListParams{FromDB: "UniProtKB_AC-ID", ToDB: "GeneID"}, 9606)
	if err != nil {
		t.Fatalf("uniprotListPairs: %v", err)
	}

	want := []mapping.Pair{{A: "P04637", B: "7157"}, {A: "P00533", B: "1956"}}
	if len(pairs) != len(want) {
		t.Fatalf("pairs = %v, want %v", pairs, want)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pairs[%d] = %v, want %v", i, pairs[i], want[i])
		}
	}
}

func TestUniprotListPairs_JobError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/uniprotkb/stream", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "P04637\n")
	})
	mux.HandleFunc("/idmapping/run", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"jobId":"bad-job"}`)
	})
	mux.HandleFunc("/idmapping/status/bad-job", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"jobStatus":"ERROR"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := uniprotListPairs(context.Background(), NewClient(), server.URL,
		&mapping.UniprotListParams{FromDB: "UniProtKB_AC-ID", ToDB: "GeneID"}, 9606)
	if err == nil {
		t.Fatal("expected error for failed ID-mapping job")
	}
}
