package filter

import (
	"math"

	"github.com/c360/geoio/geom"
)

// DefaultMaxCoordinateAbs is the magnitude above which runtime float32
// coordinates start losing useful relative precision. Typical geodetic
// easting/northing values (hundreds of kilometers, millimeter precision)
// sit far beyond it.
const DefaultMaxCoordinateAbs = 1.0e4

// shiftStep keeps negotiated shifts coarse so they stay human-readable
// and reusable across datasets with nearby origins.
const shiftStep = 100.0

// ShiftDecision is the outcome of a shift decision procedure.
type ShiftDecision struct {
	// Shift is the offset to add to every source coordinate before
	// narrowing to the runtime type.
	Shift geom.Vector3d
	// PreserveOnSave records whether the shift should be restored when the
	// data is re-saved.
	PreserveOnSave bool
	// ApplyAll asks the negotiator to persist the decision session-wide so
	// later datasets reuse it without re-deciding.
	ApplyAll bool
}

// ShiftHandler is the decision collaborator consulted when a load
// encounters large coordinates and no shift is active yet. Interactive
// implementations may prompt the user; that is outside this package.
type ShiftHandler interface {
	// Handle decides whether the candidate point p needs a shift.
	// preferReuse signals that suggested (e.g. a shift recorded in the
	// file itself, or one already active) should be kept if it still fits.
	// The boolean result reports whether a shift decision was made at all.
	Handle(p geom.Vector3d, mode ShiftMode, preferReuse bool, suggested geom.Vector3d) (ShiftDecision, bool)
}

// HandleGlobalShift negotiates the coordinate shift for one dataset.
// suggested is a shift preferred by the caller (typically one recorded in
// the file itself); it is only consulted when preferReuse is set.
//
// If a shift is already active in params it is reused unconditionally,
// along with its preserve-on-save flag: consistency across the session
// takes priority over re-evaluating optimality for the new point. A fresh
// decision only runs when the runtime coordinate type is strictly narrower
// than full precision; with a full-width runtime type no shift is ever
// needed. Decisions marked ApplyAll are persisted back into params so the
// rest of the session sees them as already active.
//
// The returned applied flag reports whether a shift is in effect; callers
// add the returned offset to every coordinate of the dataset being loaded.
func HandleGlobalShift(p, suggested geom.Vector3d, params *LoadParameters, preferReuse bool) (shift geom.Vector3d, preserve bool, applied bool) {
	if params == nil {
		return geom.Vector3d{}, false, false
	}

	if params.Session != nil {
		params.Session.mu.Lock()
		defer params.Session.mu.Unlock()
	}

	if params.CoordinatesShiftEnabled != nil && *params.CoordinatesShiftEnabled && params.CoordinatesShift != nil {
		return *params.CoordinatesShift, params.PreserveShiftOnSave, true
	}

	// With a full-precision runtime type there is nothing to negotiate.
	if geom.CoordinateSize >= geom.FullPrecisionSize {
		return geom.Vector3d{}, false, false
	}

	if params.ShiftHandlingMode == ShiftModeNone || params.ShiftHandler == nil {
		return geom.Vector3d{}, false, false
	}

	decision, ok := params.ShiftHandler.Handle(p, params.ShiftHandlingMode, preferReuse, suggested)
	if !ok {
		return geom.Vector3d{}, false, false
	}

	if decision.ApplyAll && params.CoordinatesShiftEnabled != nil && params.CoordinatesShift != nil {
		*params.CoordinatesShiftEnabled = true
		*params.CoordinatesShift = decision.Shift
		params.PreserveShiftOnSave = decision.PreserveOnSave
	}

	return decision.Shift, decision.PreserveOnSave, true
}

// AutoHandler is the non-interactive shift decision procedure. It shifts
// whenever the candidate point's largest component magnitude reaches
// MaxCoordinateAbs, rounding the offset to a coarse step. In ask mode it
// decides the same way an interactive handler would default to, without
// prompting.
type AutoHandler struct {
	// MaxCoordinateAbs is the trigger threshold; zero means
	// DefaultMaxCoordinateAbs.
	MaxCoordinateAbs float64
	// PreserveOnSave is stamped onto every decision made by this handler.
	PreserveOnSave bool
}

// Handle implements ShiftHandler.
func (h AutoHandler) Handle(p geom.Vector3d, mode ShiftMode, preferReuse bool, suggested geom.Vector3d) (ShiftDecision, bool) {
	if mode == ShiftModeNone {
		return ShiftDecision{}, false
	}

	limit := h.MaxCoordinateAbs
	if limit <= 0 {
		limit = DefaultMaxCoordinateAbs
	}

	// A suggested shift that still keeps the point small wins over a
	// freshly computed one, so datasets sharing an origin stay aligned.
	if preferReuse && !suggested.IsZero() && p.Add(suggested).MaxAbs() < limit {
		return ShiftDecision{Shift: suggested, PreserveOnSave: h.PreserveOnSave, ApplyAll: true}, true
	}

	if p.MaxAbs() < limit {
		return ShiftDecision{}, false
	}

	return ShiftDecision{
		Shift:          BestShift(p, limit),
		PreserveOnSave: h.PreserveOnSave,
		ApplyAll:       true,
	}, true
}

// BestShift computes the offset that recenters p near the origin,
// component-wise, leaving components already below the limit untouched.
// Offsets are rounded to a coarse step.
func BestShift(p geom.Vector3d, limit float64) geom.Vector3d {
	return geom.Vector3d{
		X: bestComponentShift(p.X, limit),
		Y: bestComponentShift(p.Y, limit),
		Z: bestComponentShift(p.Z, limit),
	}
}

func bestComponentShift(c, limit float64) float64 {
	if math.Abs(c) < limit {
		return 0
	}
	return -math.Round(c/shiftStep) * shiftStep
}
