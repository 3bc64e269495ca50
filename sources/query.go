package sources

import (
	"fmt"
	"net/url"
	"strings"
)

// UniprotQuery builds query strings for the UniProtKB REST API.
type UniprotQuery struct {
	// Terms are field:value query terms, combined with AND.
	Terms []string

	// ReturnFields is the list of return fields to request.
	ReturnFields []string

	// FormatValue is the response format (tsv, list, json).
	FormatValue string
}

// NewUniprotQuery creates a new empty query.
func NewUniprotQuery() *UniprotQuery {
	return &UniprotQuery{}
}

// Eq adds a field:value query term.
func (q *UniprotQuery) Eq(field, value string) *UniprotQuery {
	q.Terms = append(q.Terms, fmt.Sprintf("%s:%s", field, value))
	return q
}

// Organism restricts the query to one NCBI Taxonomy ID.
func (q *UniprotQuery) Organism(taxon int) *UniprotQuery {
	if taxon > 0 {
		q.Eq("organism_id", fmt.Sprint(taxon))
	}
	return q
}

// Reviewed restricts the query to Swiss-Prot (reviewed) records.
func (q *UniprotQuery) Reviewed(reviewed bool) *UniprotQuery {
	q.Eq("reviewed", fmt.Sprint(reviewed))
	return q
}

// Fields sets the return fields.
func (q *UniprotQuery) Fields(fields ...string) *UniprotQuery {
	q.ReturnFields = append(q.ReturnFields, fields...)
	return q
}

// Format sets the response format.
func (q *UniprotQuery) Format(format string) *UniprotQuery {
	q.FormatValue = format
	return q
}

// Build generates the URL query string.
func (q *UniprotQuery) Build() string {
	params := url.Values{}
	if len(q.Terms) > 0 {
		params.Set("query", strings.Join(q.Terms, " AND "))
	} else {
		params.Set("query", "*")
	}
	if len(q.ReturnFields) > 0 {
		params.Set("fields", strings.Join(q.ReturnFields, ","))
	}
	if q.FormatValue != "" {
		params.Set("format", q.FormatValue)
	}
	return params.Encode()
}

// Clone creates a copy of the query.
func (q *UniprotQuery) Clone() *UniprotQuery {
	newQ := &UniprotQuery{
		Terms:        make([]string, len(q.Terms)),
		ReturnFields: make([]string, len(q.ReturnFields)),
		FormatValue:  q.FormatValue,
	}
	copy(newQ.Terms, q.Terms)
	copy(newQ.ReturnFields, q.ReturnFields)
	return newQ
}
