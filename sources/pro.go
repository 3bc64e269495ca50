package sources

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/biomap/biomap-go/mapping"
)

// proPairs fetches the Protein Ontology mapping file and extracts
// (PRO id, target id) pairs for one target namespace. File rows look
// like:
//
//	PR:000000035	UniProtKB:P04637	is_a
//
// Rows whose target is outside the requested namespace are skipped, as
// are non-exact relations to isoform-level records.
func proPairs(ctx context.Context, c *Client, p *mapping.ProParams) ([]mapping.Pair, error) {
	body, err := c.Get(ctx, p.URL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	prefix := p.Namespace + ":"
	var pairs []mapping.Pair
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		cols := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
		if len(cols) < 2 {
			continue
		}
		target := cols[1]
		if !strings.HasPrefix(target, prefix) {
			continue
		}
		id := strings.TrimPrefix(target, prefix)
		// isoform-level records carry a dash suffix
		if i := strings.IndexByte(id, '-'); i >= 0 {
			id = id[:i]
		}
		if cols[0] == "" || id == "" {
			continue
		}
		pairs = append(pairs, mapping.Pair{A: cols[0], B: id})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PRO mapping file: %w", err)
	}
	return pairs, nil
}
