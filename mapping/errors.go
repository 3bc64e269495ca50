package mapping

import "fmt"

// ConfigurationError indicates a structural misconfiguration: an
// unrecognized ID type or organism with no registry entry and no
// heuristic fallback. It is surfaced immediately and never retried.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "mapping configuration: " + e.Msg
}

// Configf builds a ConfigurationError with a formatted message.
func Configf(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// DataSourceError indicates that a backend failed to deliver pair data
// for a definition. The cache recovers by falling through to the next
// candidate definition; it only reaches callers that opted into strict
// mode after every candidate has failed.
type DataSourceError struct {
	Def *Definition
	Err error
}

func (e *DataSourceError) Error() string {
	if e.Def != nil {
		return fmt.Sprintf("loading %s<->%s (taxon %d) from %s: %v",
			e.Def.IDTypeA, e.Def.IDTypeB, e.Def.Taxon, e.Def.Kind, e.Err)
	}
	return fmt.Sprintf("loading mapping table: %v", e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}
