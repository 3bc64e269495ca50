package sources

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/biomap/biomap-go/mapping"
)

// DefaultUniprotBase is the UniProt REST API endpoint.
const DefaultUniprotBase = "https://rest.uniprot.org"

// idMappingPollInterval is the delay between ID-mapping job status
// polls.
const idMappingPollInterval = 3 * time.Second

// uniprotRestPairs streams a two-column table from the UniProtKB REST
// endpoint. Multi-valued cells (cross-reference fields end in ";") are
// split into one pair per value.
func uniprotRestPairs(ctx context.Context, c *Client, base string, p *mapping.UniprotParams, taxon int) ([]mapping.Pair, error) {
	q := NewUniprotQuery().
		Organism(taxon).
		Fields(p.FieldA, p.FieldB).
		Format("tsv")
	if p.ReviewedOnly {
		q.Reviewed(true)
	}

	body, err := c.Get(ctx, fmt.Sprintf("%s/uniprotkb/stream?%s", base, q.Build()))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return parseTSVPairs(body, true)
}

// parseTSVPairs reads two-column tab-separated rows into pairs,
// splitting ";"-separated multi-valued second columns.
func parseTSVPairs(r io.Reader, header bool) ([]mapping.Pair, error) {
	var pairs []mapping.Pair
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if first && header {
			first = false
			continue
		}
		first = false
		cols := strings.SplitN(line, "\t", 3)
		if len(cols) < 2 {
			continue
		}
		a := strings.TrimSpace(cols[0])
		for _, b := range strings.Split(cols[1], ";") {
			b = strings.TrimSpace(b)
			if a == "" || b == "" {
				continue
			}
			pairs = append(pairs, mapping.Pair{A: a, B: b})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return pairs, nil
}

// uniprotAccessions fetches every accession for an organism as a plain
// list, used to seed ID-mapping jobs.
func uniprotAccessions(ctx context.Context, c *Client, base string, taxon int) ([]string, error) {
	q := NewUniprotQuery().Organism(taxon).Format("list")
	body, err := c.Get(ctx, fmt.Sprintf("%s/uniprotkb/stream?%s", base, q.Build()))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var ids []string
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if id := strings.TrimSpace(scanner.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading accession list: %w", err)
	}
	return ids, nil
}

// uniprotListPairs runs a UniProt ID-mapping job: submit the accession
// list, poll until finished, stream the result pairs.
func uniprotListPairs(ctx context.Context, c *Client, base string, p *mapping.UniprotListParams, taxon int) ([]mapping.Pair, error) {
	var ids []string
	var err error
	if p.FromDB == "UniProtKB_AC-ID" {
		ids, err = uniprotAccessions(ctx, c, base, taxon)
		if err != nil {
			return nil, fmt.Errorf("listing accessions: %w", err)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no source identifiers for ID-mapping job %s -> %s", p.FromDB, p.ToDB)
	}

	jobID, err := submitIDMapping(ctx, c, base, p.FromDB, p.ToDB, ids)
	if err != nil {
		return nil, err
	}
	if err := awaitIDMapping(ctx, c, base, jobID); err != nil {
		return nil, err
	}

	body, err := c.Get(ctx, fmt.Sprintf("%s/idmapping/results/stream/%s?format=tsv", base, jobID))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return parseTSVPairs(body, true)
}

// submitIDMapping posts a new ID-mapping job and returns its job ID.
func submitIDMapping(ctx context.Context, c *Client, base, fromDB, toDB string, ids []string) (string, error) {
	form := url.Values{}
	form.Set("from", fromDB)
	form.Set("to", toDB)
	form.Set("ids", strings.Join(ids, ","))

	body, err := c.PostForm(ctx, base+"/idmapping/run", form.Encode())
	if err != nil {
		return "", fmt.Errorf("submitting ID-mapping job: %w", err)
	}
	defer body.Close()

	var resp struct {
		JobID string `json:"jobId"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return "", fmt.Errorf("decoding job submission: %w", err)
	}
	if resp.JobID == "" {
		return "", fmt.Errorf("ID-mapping job submission returned no job ID")
	}
	return resp.JobID, nil
}

// awaitIDMapping polls the job status until it reports FINISHED.
func awaitIDMapping(ctx context.Context, c *Client, base, jobID string) error {
	for {
		body, err := c.Get(ctx, fmt.Sprintf("%s/idmapping/status/%s", base, jobID))
		if err != nil {
			return fmt.Errorf("polling ID-mapping job %s: %w", jobID, err)
		}
		var status struct {
			JobStatus string          `json:"jobStatus"`
			Results   json.RawMessage `json:"results"`
		}
		err = json.NewDecoder(body).Decode(&status)
		body.Close()
		if err != nil {
			return fmt.Errorf("decoding job status: %w", err)
		}

		switch {
		case status.JobStatus == "FINISHED" || len(status.Results) > 0:
			return nil
		case status.JobStatus == "ERROR":
			return fmt.Errorf("ID-mapping job %s failed", jobID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(idMappingPollInterval):
		}
	}
}
