package sources

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/biomap/biomap-go/mapping"
)

// filePairs reads identifier pairs from a local delimited file at the
// configured column pair. Relative paths are resolved against dataDir.
func filePairs(dataDir string, p *mapping.FileParams) ([]mapping.Pair, error) {
	path := p.Path
	if !filepath.IsAbs(path) && dataDir != "" {
		path = filepath.Join(dataDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mapping file: %w", err)
	}
	defer f.Close()

	sep := p.Separator
	if sep == "" {
		sep = "\t"
	}

	var pairs []mapping.Pair
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if first && p.Header {
			first = false
			continue
		}
		first = false
		row := strings.Split(line, sep)
		if p.ColA >= len(row) || p.ColB >= len(row) {
			continue
		}
		a := strings.TrimSpace(row[p.ColA])
		bs := []string{row[p.ColB]}
		if p.ValueSeparator != "" {
			bs = strings.Split(row[p.ColB], p.ValueSeparator)
		}
		for _, b := range bs {
			b = strings.TrimSpace(b)
			if a == "" || b == "" {
				continue
			}
			pairs = append(pairs, mapping.Pair{A: a, B: b})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}
	return pairs, nil
}
