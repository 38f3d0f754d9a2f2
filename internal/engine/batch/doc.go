// Package batch runs assessment workloads over many inputs with bounded
// concurrency.
//
// A Processor maps each input item to a result independently, either
// sequentially or with a capped worker pool, and always returns results in
// input order. Key features:
//   - Configurable worker count (defaults to the host CPU count)
//   - Progress tracking with callbacks for UI updates
//   - Context-aware cancellation support
//
// The comparison pipeline and bulk assessment commands use this package so
// that a slow pathway never serializes the rest of the set.
package batch
