package filter

import (
	"github.com/c360/geoio/entity"
	"github.com/c360/geoio/geom"
)

// Filter is the capability contract every file format handler implements.
// A filter is uniquely recognized by its file-filter identifier strings
// (e.g. "ASCII cloud (*.asc)"); the registry enforces that no two filters
// claim the same import identifier.
//
// Implementations must be comparable (pointer receivers are the norm) so
// the registry can detect double registration by identity, and must signal
// failures through coded errors (see the errors package) rather than
// panicking; the orchestrator contains panics but treats them as faults.
type Filter interface {
	// FileFilters returns the format-identifier strings claimed for import
	// (onImport true) or export (onImport false), most specific first.
	FileFilters(onImport bool) []string

	// DefaultExtension returns the canonical extension (without dot) used
	// when a save path carries none.
	DefaultExtension() string

	// CanLoadExtension reports whether the filter handles the given
	// upper-cased file extension on import.
	CanLoadExtension(upperExt string) bool

	// Load reads the file at path into the provided container. Partial
	// content added to the container before a failure is discarded by the
	// orchestrator. Coordinate-bearing filters must negotiate the global
	// shift (HandleGlobalShift) once per dataset before storing points.
	Load(path string, container *entity.Container, params *LoadParameters) error

	// Save writes the entity (or entity tree) to path. The path always
	// carries an extension by the time a filter sees it.
	Save(entities entity.Entity, path string, params *SaveParameters) error

	// Unregister releases any internal resources held by the filter. It is
	// invoked exactly once, when the registry unregisters the filter.
	Unregister()
}

// ShiftMode selects the coordinate shift handling policy for a load.
type ShiftMode int

const (
	// ShiftModeNone disables shift handling entirely.
	ShiftModeNone ShiftMode = iota
	// ShiftModeAsk defers the decision to an interactive handler.
	ShiftModeAsk
	// ShiftModeAuto applies a shift automatically whenever the candidate
	// point is too large for the runtime coordinate type.
	ShiftModeAuto
)

// String returns the configuration name of the mode.
func (m ShiftMode) String() string {
	switch m {
	case ShiftModeNone:
		return "none"
	case ShiftModeAsk:
		return "ask"
	case ShiftModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseShiftMode converts a configuration string to a ShiftMode.
func ParseShiftMode(s string) (ShiftMode, bool) {
	switch s {
	case "none":
		return ShiftModeNone, true
	case "ask":
		return ShiftModeAsk, true
	case "auto":
		return ShiftModeAuto, true
	default:
		return ShiftModeNone, false
	}
}

// LoadParameters is the mutable configuration bag threaded through a load
// call chain. A shift decision made for one dataset is persisted back into
// these fields so subsequent datasets in the same session see it as
// already active.
type LoadParameters struct {
	// SessionStart is set by the orchestrator: true only for the first
	// load after a session reset.
	SessionStart bool

	// CoordinatesShiftEnabled and CoordinatesShift, when non-nil, are the
	// session-wide slots the negotiator reads and persists through. Both
	// must be non-nil for a decision to stick across loads.
	CoordinatesShiftEnabled *bool
	CoordinatesShift        *geom.Vector3d

	// PreserveShiftOnSave records whether the negotiated shift should be
	// restored when the loaded data is re-saved.
	PreserveShiftOnSave bool

	// ShiftHandlingMode selects the negotiation policy.
	ShiftHandlingMode ShiftMode

	// ShiftHandler is the decision collaborator consulted when no shift is
	// active yet. Nil disables negotiation.
	ShiftHandler ShiftHandler

	// Session, when set by the orchestrator, serializes the negotiator's
	// read-decide-persist sequence across concurrent loads.
	Session *Session
}

// SaveParameters is the save-time configuration bag. Format-specific
// options are opaque to the orchestrator and travel in Options.
type SaveParameters struct {
	// Options carries filter-specific settings keyed by name.
	Options map[string]any
}
