// Package fileio implements the load/save orchestrator sitting between
// callers and the open-ended set of registered format filters.
//
// # Load pipeline
//
// A load resolves its filter (explicitly, by format identifier, or by file
// extension), increments the session counter, and invokes the filter
// inside a fault-isolation boundary: any panic raised by a codec is caught,
// its partial output discarded, and the failure normalized into the closed
// error taxonomy. Third-party format libraries are not trusted, and one
// malformed file must never crash the host.
//
// Results are post-processed: the root container is renamed to
// "<filename> (<directory>)", children named with the "unnamed"
// placeholder take the file's base name, and an empty result is collapsed
// to nil even on success.
//
//	reg := filter.NewRegistry(nil)
//	filters.RegisterDefaults(reg, nil)
//	mgr := fileio.NewManager(reg, nil, fileio.WithMetrics(metric.New()))
//
//	result, err := mgr.LoadFromPath("scan.asc", params, "")
//	if result == nil {
//	    // nothing came back; err carries the classification
//	}
//
// # Error surface
//
// Every operation returns an error carrying an errors.Code (nil means
// CodeNoError). Diagnostics for non-success codes are emitted through the
// logging collaborator with the fixed phrase table; user cancellations log
// at warning severity since they are expected behavior, not faults.
package fileio
