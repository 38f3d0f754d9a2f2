package engine

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Pipeline errors, comparable with errors.Is().
var (
	// ErrTooFewPathways indicates a comparison with fewer than two entries.
	// Best/worst designations are meaningless for a single pathway.
	ErrTooFewPathways = constError("comparison requires at least 2 pathways")

	// ErrMissingField indicates a required top-level field was absent at a
	// boundary layer that opted into strict validation.
	ErrMissingField = constError("required field missing")

	// ErrNoTables indicates an engine constructed without factor tables.
	ErrNoTables = constError("factor tables not configured")
)
