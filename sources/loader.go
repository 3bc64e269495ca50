package sources

import (
	"context"
	"fmt"

	"github.com/biomap/biomap-go/mapping"
)

// SourceLoader dispatches definitions to their backend and yields raw
// identifier pairs. It implements mapping.Loader. Failures are wrapped
// in DataSourceError carrying the definition's identity; the cache
// reacts by falling through to the next candidate definition.
type SourceLoader struct {
	client      *Client
	uniprotBase string
	biomartURL  string
	dataDir     string
}

// LoaderOption configures a SourceLoader.
type LoaderOption func(*SourceLoader)

// WithUniprotBase overrides the UniProt REST endpoint.
func WithUniprotBase(base string) LoaderOption {
	return func(l *SourceLoader) {
		l.uniprotBase = base
	}
}

// WithBiomartURL overrides the BioMart service endpoint.
func WithBiomartURL(serviceURL string) LoaderOption {
	return func(l *SourceLoader) {
		l.biomartURL = serviceURL
	}
}

// WithDataDir sets the directory against which relative file-backend
// paths are resolved.
func WithDataDir(dir string) LoaderOption {
	return func(l *SourceLoader) {
		l.dataDir = dir
	}
}

// NewSourceLoader creates a loader over the given fetch client.
func NewSourceLoader(client *Client, opts ...LoaderOption) *SourceLoader {
	l := &SourceLoader{
		client:      client,
		uniprotBase: DefaultUniprotBase,
		biomartURL:  DefaultBiomartURL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the raw pair data for one definition.
func (l *SourceLoader) Load(ctx context.Context, def *mapping.Definition) ([]mapping.Pair, error) {
	pairs, err := l.load(ctx, def)
	if err != nil {
		return nil, &mapping.DataSourceError{Def: def, Err: err}
	}
	return pairs, nil
}

func (l *SourceLoader) load(ctx context.Context, def *mapping.Definition) ([]mapping.Pair, error) {
	switch def.Kind {
	case mapping.BackendFile:
		if def.File == nil {
			return nil, fmt.Errorf("file backend without parameters")
		}
		return filePairs(l.dataDir, def.File)

	case mapping.BackendUniprotRest:
		if def.Uniprot == nil {
			return nil, fmt.Errorf("uniprot_rest backend without parameters")
		}
		return uniprotRestPairs(ctx, l.client, l.uniprotBase, def.Uniprot, def.Taxon)

	case mapping.BackendUniprotList:
		if def.UniprotList == nil {
			return nil, fmt.Errorf("uniprot_list backend without parameters")
		}
		return uniprotListPairs(ctx, l.client, l.uniprotBase, def.UniprotList, def.Taxon)

	case mapping.BackendBiomart:
		if def.Biomart == nil {
			return nil, fmt.Errorf("biomart backend without parameters")
		}
		return biomartPairs(ctx, l.client, l.biomartURL, def.Biomart)

	case mapping.BackendPro:
		if def.Pro == nil {
			return nil, fmt.Errorf("pro backend without parameters")
		}
		return proPairs(ctx, l.client, def.Pro)

	case mapping.BackendSnapshot:
		if def.Snapshot == nil {
			return nil, fmt.Errorf("snapshot backend without parameters")
		}
		store := &GobStore{Dir: def.Snapshot.Dir}
		table, ok, err := store.Load(def.IDTypeA, def.IDTypeB, def.Taxon)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no snapshot for %s_%s_%d", def.IDTypeA, def.IDTypeB, def.Taxon)
		}
		return table.Rows(), nil

	default:
		return nil, fmt.Errorf("unsupported backend kind %v", def.Kind)
	}
}
