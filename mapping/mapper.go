package mapping

import (
	"context"
	"regexp"
	"strings"

	"github.com/biomap/biomap-go/settings"
)

// uniprotAC matches primary UniProtKB accession formats.
var uniprotAC = regexp.MustCompile(
	`^(?:[A-NR-Z][0-9](?:[A-Z][A-Z0-9]{2}[0-9]){1,2}|[OPQ][0-9][A-Z0-9]{3}[0-9])$`)

// ValidUniprot reports whether the string has the form of a UniProtKB
// accession.
func ValidUniprot(id string) bool {
	return uniprotAC.MatchString(id)
}

// Mapper is the public entry point for identifier translation. It is an
// explicit context object: construct one per process (or per isolated
// cache) and pass it by reference — there is no package-level singleton.
type Mapper struct {
	registry *Registry
	cache    *TableCache
	conf     *settings.Settings
	stop     context.CancelFunc
}

// Option configures a Mapper at construction.
type Option func(*mapperConfig)

type mapperConfig struct {
	registry *Registry
	conf     *settings.Settings
	store    SnapshotStore
	sweep    bool
	debug    bool
}

// WithRegistry replaces the built-in definition catalogue.
func WithRegistry(r *Registry) Option {
	return func(c *mapperConfig) { c.registry = r }
}

// WithSettings replaces the default settings.
func WithSettings(s *settings.Settings) Option {
	return func(c *mapperConfig) { c.conf = s }
}

// WithSnapshotStore enables on-disk reuse of built tables.
func WithSnapshotStore(store SnapshotStore) Option {
	return func(c *mapperConfig) { c.store = store }
}

// WithSweeper starts the periodic idle-eviction sweep.
func WithSweeper() Option {
	return func(c *mapperConfig) { c.sweep = true }
}

// WithDebug enables build diagnostics.
func WithDebug(debug bool) Option {
	return func(c *mapperConfig) { c.debug = debug }
}

// NewMapper creates a Mapper over the given loader. The loader performs
// all backend I/O and is injected so hosts (and tests) control it.
func NewMapper(loader Loader, opts ...Option) *Mapper {
	cfg := &mapperConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.conf == nil {
		cfg.conf = settings.Default()
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry(cfg.conf.DefaultOrganism)
	}

	cache := NewTableCache(cfg.registry, loader, cfg.conf.TableLifetime)
	cache.SetDebug(cfg.debug)
	if cfg.store != nil {
		cache.SetSnapshotStore(cfg.store)
	}

	m := &Mapper{
		registry: cfg.registry,
		cache:    cache,
		conf:     cfg.conf,
	}
	if cfg.sweep {
		ctx, cancel := context.WithCancel(context.Background())
		m.stop = cancel
		cache.StartSweeper(ctx, cfg.conf.CleanupInterval)
	}
	return m
}

// Close stops the eviction sweeper and drops all cached tables.
func (m *Mapper) Close() {
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}
	m.cache.Clear()
}

// Registry returns the mapper's definition registry for custom
// registrations.
func (m *Mapper) Registry() *Registry {
	return m.registry
}

// MapOption configures a single translation request.
type MapOption func(*mapOptions)

type mapOptions struct {
	taxon           int
	taxonSet        bool
	strict          bool
	expandComplexes bool
	uniprotCleanup  bool
}

// Organism scopes the translation to an NCBI Taxonomy ID instead of the
// configured default organism.
func Organism(taxon int) MapOption {
	return func(o *mapOptions) {
		o.taxon = taxon
		o.taxonSet = true
	}
}

// Strict disables the lenient gene-symbol heuristics and surfaces a
// DataSourceError when a table could not be built because every
// candidate backend failed (instead of the silent empty set).
func Strict() MapOption {
	return func(o *mapOptions) { o.strict = true }
}

// NoComplexExpansion translates a complex identifier only through a
// complex-level table instead of expanding it into its components.
func NoComplexExpansion() MapOption {
	return func(o *mapOptions) { o.expandComplexes = false }
}

// NoUniprotCleanup skips accession validation, secondary-accession
// translation and the Trembl to Swiss-Prot substitution on UniProt
// results.
func NoUniprotCleanup() MapOption {
	return func(o *mapOptions) { o.uniprotCleanup = false }
}

func (m *Mapper) mapOptions(opts []MapOption) mapOptions {
	o := mapOptions{
		expandComplexes: true,
		uniprotCleanup:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.taxonSet {
		o.taxon = m.conf.DefaultOrganism
	}
	return o
}

// GuessType classifies a raw identifier into protein, mirna or complex.
func (m *Mapper) GuessType(name string) EntityType {
	return Classify(name)
}

// guessIDType infers the namespace of an identifier from its form when
// the caller did not provide one.
func guessIDType(name string) string {
	switch Classify(name) {
	case EntityComplex:
		return "complex"
	case EntityMirna:
		return "mir-mat"
	}
	if ValidUniprot(name) {
		return "uniprot"
	}
	return "genesymbol"
}

// MapName translates one identifier into the set of corresponding
// identifiers in the target namespace. An unmappable name yields an
// empty set, never an error: translation runs inside bulk pipelines
// where one bad identifier must not abort the batch. The only errors
// are ConfigurationError for an unknown ID type, and, under Strict,
// DataSourceError when every backend for a needed table failed.
func (m *Mapper) MapName(ctx context.Context, name, idType, targetIDType string, opts ...MapOption) (IDSet, error) {
	o := m.mapOptions(opts)
	return m.mapName(ctx, name, idType, targetIDType, o)
}

func (m *Mapper) mapName(ctx context.Context, name, idType, targetIDType string, o mapOptions) (IDSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return IDSet{}, nil
	}
	if idType == "" {
		idType = guessIDType(name)
	}
	idType = CanonicalIDType(strings.ToLower(strings.TrimSpace(idType)))
	targetIDType = CanonicalIDType(strings.ToLower(strings.TrimSpace(targetIDType)))
	if targetIDType == "" {
		return nil, Configf("target ID type is required")
	}

	if idType == targetIDType {
		return NewIDSet(name), nil
	}

	if Classify(name) == EntityComplex {
		return m.mapComplex(ctx, name, idType, targetIDType, o)
	}

	if !m.registry.Knows(idType) {
		return nil, Configf("unknown ID type %q", idType)
	}
	if !m.registry.Knows(targetIDType) {
		return nil, Configf("unknown target ID type %q", targetIDType)
	}

	result, err := m.translate(ctx, name, idType, targetIDType, o.taxon)
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		result, err = m.translateTwoHop(ctx, name, idType, targetIDType, o.taxon)
		if err != nil {
			return nil, err
		}
	}

	if len(result) == 0 && idType == "genesymbol" && !o.strict {
		result, err = m.genesymbolFallback(ctx, name, targetIDType, o.taxon)
		if err != nil {
			return nil, err
		}
	}

	if targetIDType == "uniprot" && o.uniprotCleanup {
		result, err = m.uniprotCleanup(ctx, result, o.taxon)
		if err != nil {
			return nil, err
		}
	}

	if len(result) == 0 && o.strict {
		if loadErr := m.cache.LoadError(idType, targetIDType, o.taxon); loadErr != nil {
			return nil, loadErr
		}
	}
	if result == nil {
		result = IDSet{}
	}
	return result, nil
}

// mapComplex handles identifiers in the complex namespace. With
// expansion, each component is translated and the results unioned;
// without, only a complex-level table is consulted.
func (m *Mapper) mapComplex(ctx context.Context, name, idType, targetIDType string, o mapOptions) (IDSet, error) {
	if !o.expandComplexes {
		if !m.registry.Has("complex", targetIDType, o.taxon) &&
			!m.registry.Has("complex", targetIDType, TaxonAny) {
			return IDSet{}, nil
		}
		return m.translate(ctx, name, "complex", targetIDType, o.taxon)
	}

	componentType := idType
	if componentType == "" || componentType == "complex" {
		componentType = "uniprot"
	}
	result := make(IDSet)
	for _, component := range ComplexComponents(name) {
		translated, err := m.mapName(ctx, component, componentType, targetIDType, o)
		if err != nil {
			return nil, err
		}
		result.Union(translated)
	}
	return result, nil
}

// translate performs one direct table lookup, honoring the cached
// table's orientation.
func (m *Mapper) translate(ctx context.Context, name, idType, targetIDType string, taxon int) (IDSet, error) {
	table, err := m.cache.GetOrBuild(ctx, idType, targetIDType, taxon)
	if err != nil {
		return nil, err
	}
	return m.lookupDirectional(table, idType, name), nil
}

// lookupDirectional resolves name through the table in the requested
// direction: cached tables are shared between both orientations of a
// pair, so the reverse index serves requests against the natural
// direction's value side.
func (m *Mapper) lookupDirectional(table *Table, fromIDType, name string) IDSet {
	if table == nil {
		return nil
	}
	if table.IDTypeA == fromIDType {
		return table.Lookup(name)
	}
	return table.ReverseLookup(name)
}

// translateTwoHop composes two direct tables through an intermediate ID
// type. Depth is fixed at two steps; deeper chains are deliberately not
// attempted. Intermediates are tried in sorted order and the first one
// producing any result wins. Each leg resolves at the requested taxon
// or, when only an organism-independent table exists, at TaxonAny.
func (m *Mapper) translateTwoHop(ctx context.Context, name, idType, targetIDType string, taxon int) (IDSet, error) {
	for _, via := range m.registry.Intermediates(idType, targetIDType, taxon) {
		middle, err := m.translate(ctx, name, idType, via, m.hopTaxon(idType, via, taxon))
		if err != nil {
			return nil, err
		}
		if len(middle) == 0 {
			continue
		}
		legTaxon := m.hopTaxon(via, targetIDType, taxon)
		result := make(IDSet)
		for id := range middle {
			final, err := m.translate(ctx, id, via, targetIDType, legTaxon)
			if err != nil {
				return nil, err
			}
			result.Union(final)
		}
		if len(result) > 0 {
			return result, nil
		}
	}
	return nil, nil
}

// hopTaxon picks the taxon under which one leg of a two-hop translation
// is registered.
func (m *Mapper) hopTaxon(a, b string, taxon int) int {
	if taxon != TaxonAny && !m.registry.Has(a, b, taxon) && m.registry.Has(a, b, TaxonAny) {
		return TaxonAny
	}
	return taxon
}

// genesymbolFallback applies the lenient heuristics for legacy gene
// names: a prefix match on the first GenesymbolPrefixLen characters,
// then a retry with a trailing "1" appended.
func (m *Mapper) genesymbolFallback(ctx context.Context, name, targetIDType string, taxon int) (IDSet, error) {
	table, err := m.cache.GetOrBuild(ctx, "genesymbol", targetIDType, taxon)
	if err != nil {
		return nil, err
	}
	prefixLen := m.conf.GenesymbolPrefixLen
	if prefixLen > 0 && len(name) > prefixLen {
		var result IDSet
		if table.IDTypeA == "genesymbol" {
			result = table.PrefixLookup(name[:prefixLen])
		} else {
			result = table.ReversePrefixLookup(name[:prefixLen])
		}
		if len(result) > 0 {
			return result, nil
		}
	}
	if m.conf.GenesymbolDigitRetry && !strings.HasSuffix(name, "1") {
		result := m.lookupDirectional(table, "genesymbol", name+"1")
		if len(result) > 0 {
			return result, nil
		}
	}
	return nil, nil
}

// uniprotCleanup post-processes a UniProt result set: drops accessions
// failing the format check (unless configured to keep them), translates
// secondary accessions to current primary ones, and substitutes
// Swiss-Prot accessions for Trembl ones sharing a gene symbol.
func (m *Mapper) uniprotCleanup(ctx context.Context, result IDSet, taxon int) (IDSet, error) {
	if len(result) == 0 {
		return result, nil
	}

	cleaned := make(IDSet, len(result))
	for id := range result {
		if !ValidUniprot(id) && !m.conf.KeepInvalidUniprot {
			continue
		}
		cleaned.Add(id)
	}

	if m.conf.TranslateDeletedUniprot && m.registry.Has("uniprot-sec", "uniprot", TaxonAny) {
		secondary, err := m.cache.GetOrBuild(ctx, "uniprot-sec", "uniprot", TaxonAny)
		if err != nil {
			return nil, err
		}
		translated := make(IDSet, len(cleaned))
		for id := range cleaned {
			if primary := m.lookupDirectional(secondary, "uniprot-sec", id); len(primary) > 0 {
				translated.Union(primary)
			} else {
				translated.Add(id)
			}
		}
		cleaned = translated
	}

	if m.conf.TremblSwissprotByGenesymbol && m.registry.Has("swissprot", "genesymbol", taxon) {
		reviewed, err := m.cache.GetOrBuild(ctx, "swissprot", "genesymbol", taxon)
		if err != nil {
			return nil, err
		}
		substituted := make(IDSet, len(cleaned))
		for id := range cleaned {
			if m.lookupDirectional(reviewed, "swissprot", id) != nil {
				substituted.Add(id) // already reviewed
				continue
			}
			symbols, err := m.translate(ctx, id, "uniprot", "genesymbol", taxon)
			if err != nil {
				return nil, err
			}
			swissprots := make(IDSet)
			for symbol := range symbols {
				swissprots.Union(m.lookupDirectional(reviewed, "genesymbol", symbol))
			}
			if len(swissprots) > 0 {
				substituted.Union(swissprots)
			} else {
				substituted.Add(id)
			}
		}
		cleaned = substituted
	}

	return cleaned, nil
}

// MapName0 returns one arbitrary element of the translation result, or
// "" if the name is unmappable. Lossy: only appropriate when the caller
// accepts losing ambiguity.
func (m *Mapper) MapName0(ctx context.Context, name, idType, targetIDType string, opts ...MapOption) (string, error) {
	result, err := m.MapName(ctx, name, idType, targetIDType, opts...)
	if err != nil {
		return "", err
	}
	return result.One(), nil
}

// MapNames translates many identifiers and returns the union of all
// results. The input-to-output correspondence is not preserved.
func (m *Mapper) MapNames(ctx context.Context, names []string, idType, targetIDType string, opts ...MapOption) (IDSet, error) {
	result := make(IDSet)
	for _, name := range names {
		translated, err := m.MapName(ctx, name, idType, targetIDType, opts...)
		if err != nil {
			return nil, err
		}
		result.Union(translated)
	}
	return result, nil
}

// Label returns the canonical human-readable label for an identifier:
// the gene symbol for proteins, the miRNA name for mature miRNAs, and a
// constructed multi-symbol identifier for complexes. Falls back to the
// identifier itself when no label is found.
func (m *Mapper) Label(ctx context.Context, id, idType string, opts ...MapOption) (string, error) {
	id = strings.TrimSpace(id)
	switch Classify(id) {
	case EntityComplex:
		var labels []string
		for _, component := range ComplexComponents(id) {
			label, err := m.Label(ctx, component, idType, opts...)
			if err != nil {
				return "", err
			}
			labels = append(labels, label)
		}
		return ComplexID(labels), nil
	case EntityMirna:
		label, err := m.MapName0(ctx, id, "mir-mat", "mir-name", opts...)
		if err != nil || label == "" {
			return id, err
		}
		return label, nil
	default:
		if idType == "" {
			idType = guessIDType(id)
		}
		label, err := m.MapName0(ctx, id, idType, LabelIDType[EntityProtein], opts...)
		if err != nil || label == "" {
			return id, err
		}
		return label, nil
	}
}

// IDFromLabel translates a human-readable label back into identifiers
// of the given namespace.
func (m *Mapper) IDFromLabel(ctx context.Context, label, idType string, opts ...MapOption) (IDSet, error) {
	labelType := LabelIDType[EntityProtein]
	if Classify(label) == EntityMirna || strings.HasPrefix(strings.ToLower(label), "hsa-mir") ||
		strings.HasPrefix(strings.ToLower(label), "hsa-let") {
		labelType = "mir-name"
	}
	return m.MapName(ctx, label, labelType, idType, opts...)
}

// IDFromLabel0 is the lossy single-result form of IDFromLabel.
func (m *Mapper) IDFromLabel0(ctx context.Context, label, idType string, opts ...MapOption) (string, error) {
	result, err := m.IDFromLabel(ctx, label, idType, opts...)
	if err != nil {
		return "", err
	}
	return result.One(), nil
}

// TranslationDict returns the full translation table for a pair as a
// dictionary of sets, building the table if necessary.
func (m *Mapper) TranslationDict(ctx context.Context, idType, targetIDType string, opts ...MapOption) (map[string]IDSet, error) {
	table, err := m.table(ctx, idType, targetIDType, opts)
	if err != nil {
		return nil, err
	}
	if table.IDTypeA != CanonicalIDType(strings.ToLower(idType)) {
		// present the requested orientation
		reversed := make(map[string]IDSet)
		for _, row := range table.Rows() {
			if set, ok := reversed[row.B]; ok {
				set.Add(row.A)
			} else {
				reversed[row.B] = NewIDSet(row.A)
			}
		}
		return reversed, nil
	}
	return table.Dict(), nil
}

// TranslationRows returns the full translation table as one row per
// (source, target) pair.
func (m *Mapper) TranslationRows(ctx context.Context, idType, targetIDType string, opts ...MapOption) ([]Pair, error) {
	table, err := m.table(ctx, idType, targetIDType, opts)
	if err != nil {
		return nil, err
	}
	rows := table.Rows()
	if table.IDTypeA != CanonicalIDType(strings.ToLower(idType)) {
		rows = swapPairs(rows)
	}
	return rows, nil
}

func (m *Mapper) table(ctx context.Context, idType, targetIDType string, opts []MapOption) (*Table, error) {
	o := m.mapOptions(opts)
	a := CanonicalIDType(strings.ToLower(strings.TrimSpace(idType)))
	b := CanonicalIDType(strings.ToLower(strings.TrimSpace(targetIDType)))
	if !m.registry.Knows(a) || !m.registry.Knows(b) {
		return nil, Configf("no registered translation between %q and %q", idType, targetIDType)
	}
	return m.cache.GetOrBuild(ctx, a, b, o.taxon)
}

// MappingTables returns the (idTypeA, idTypeB, taxon) combinations
// currently held in the cache.
func (m *Mapper) MappingTables() []Definition {
	return m.cache.Keys()
}

// IDTypes returns every ID type known to the registry.
func (m *Mapper) IDTypes() []string {
	return m.registry.IDTypes()
}
