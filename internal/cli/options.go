// Package cli provides utilities for building the bm-* command-line
// tools.
//
// This package provides standardized option handling, tab-delimited
// I/O, and mapper construction shared by every tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/biomap/biomap-go/auth"
	"github.com/biomap/biomap-go/mapping"
	"github.com/biomap/biomap-go/settings"
	"github.com/biomap/biomap-go/sources"
)

// MapOptions contains the standard translation options.
type MapOptions struct {
	// From is the source ID type (empty = guess per identifier)
	From string

	// To is the target ID type
	To string

	// Organism is the NCBI Taxonomy ID (0 = configured default)
	Organism int

	// Strict disables the lenient gene-symbol heuristics and surfaces
	// backend failures
	Strict bool

	// NoExpand disables complex expansion
	NoExpand bool

	// NoCleanup disables the UniProt result cleanup
	NoCleanup bool

	// UseCache enables on-disk table snapshots
	UseCache bool

	// Debug enables debug output
	Debug bool
}

// AddMapFlags adds the standard translation flags to a cobra command.
func AddMapFlags(cmd *cobra.Command, opts *MapOptions) {
	flags := cmd.Flags()

	flags.StringVarP(&opts.From, "from", "f", "",
		"source ID type (default: guessed per identifier)")
	flags.StringVarP(&opts.To, "to", "t", "uniprot",
		"target ID type")
	flags.IntVar(&opts.Organism, "organism", 0,
		"NCBI Taxonomy ID (default: 9606)")
	flags.BoolVar(&opts.Strict, "strict", false,
		"disable lenient gene-symbol heuristics and surface backend failures")
	flags.BoolVar(&opts.NoExpand, "no-expand-complexes", false,
		"translate complexes through complex-level tables only")
	flags.BoolVar(&opts.NoCleanup, "no-uniprot-cleanup", false,
		"skip Swiss-Prot substitution and accession validation on UniProt results")
	flags.BoolVar(&opts.UseCache, "use-cache", false,
		"reuse on-disk table snapshots")
	flags.BoolVar(&opts.Debug, "debug", false,
		"enable debug output")
}

// NewMapper constructs a Mapper wired to the remote backends according
// to the options, resolving the optional API key.
func (o *MapOptions) NewMapper() (*mapping.Mapper, error) {
	conf := settings.FromEnv()
	if o.Organism > 0 {
		conf.DefaultOrganism = o.Organism
	}
	if o.UseCache {
		conf.UseCache = true
	}

	key, err := auth.GetKey()
	if err != nil {
		return nil, err
	}

	clientOpts := []sources.ClientOption{}
	if key != "" {
		clientOpts = append(clientOpts, sources.WithAPIKey(key))
	}
	if o.Debug {
		clientOpts = append(clientOpts, sources.WithDebug(true))
	}
	loader := sources.NewSourceLoader(sources.NewClient(clientOpts...))

	mapperOpts := []mapping.Option{
		mapping.WithSettings(conf),
		mapping.WithSweeper(),
	}
	if o.Debug {
		mapperOpts = append(mapperOpts, mapping.WithDebug(true))
	}
	if conf.UseCache {
		store, err := sources.NewGobStore(conf.CacheDir)
		if err != nil {
			return nil, err
		}
		mapperOpts = append(mapperOpts, mapping.WithSnapshotStore(store))
	}

	return mapping.NewMapper(loader, mapperOpts...), nil
}

// MapCallOptions converts the flag values into per-call map options.
func (o *MapOptions) MapCallOptions() []mapping.MapOption {
	var opts []mapping.MapOption
	if o.Organism > 0 {
		opts = append(opts, mapping.Organism(o.Organism))
	}
	if o.Strict {
		opts = append(opts, mapping.Strict())
	}
	if o.NoExpand {
		opts = append(opts, mapping.NoComplexExpansion())
	}
	if o.NoCleanup {
		opts = append(opts, mapping.NoUniprotCleanup())
	}
	return opts
}

// ColOptions contains column selection options for input processing.
type ColOptions struct {
	// Col is the key column (1-based index or header name, 0 = last column)
	Col string

	// NoHead indicates the input has no header row
	NoHead bool
}

// AddColFlags adds the column selection flags to a cobra command.
func AddColFlags(cmd *cobra.Command, opts *ColOptions) {
	flags := cmd.Flags()

	flags.StringVarP(&opts.Col, "col", "c", "0",
		"key column (1-based index or header name, 0 = last)")
	flags.BoolVar(&opts.NoHead, "nohead", false,
		"input file has no header row")
}

// IOOptions contains input/output options.
type IOOptions struct {
	// Input is the input file path (empty = stdin)
	Input string

	// Output is the output file path (empty = stdout)
	Output string

	// Delim is the delimiter for multi-valued result cells
	Delim string
}

// AddIOFlags adds the I/O flags to a cobra command.
func AddIOFlags(cmd *cobra.Command, opts *IOOptions) {
	flags := cmd.Flags()

	flags.StringVarP(&opts.Input, "input", "i", "",
		"input file (default: stdin)")
	flags.StringVarP(&opts.Output, "output", "o", "",
		"output file (default: stdout)")
	flags.StringVar(&opts.Delim, "delim", ";",
		"delimiter for multi-valued result cells (;, tab, space, comma)")
}

// GetDelimiter returns the actual delimiter string.
func (o *IOOptions) GetDelimiter() string {
	switch o.Delim {
	case "tab":
		return "\t"
	case "space":
		return " "
	case "comma":
		return ","
	default:
		return o.Delim
	}
}
