package filter

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/geoio/geom"
)

func newShiftParams(mode ShiftMode, handler ShiftHandler) *LoadParameters {
	enabled := false
	shift := geom.Vector3d{}
	return &LoadParameters{
		CoordinatesShiftEnabled: &enabled,
		CoordinatesShift:        &shift,
		ShiftHandlingMode:       mode,
		ShiftHandler:            handler,
	}
}

func TestHandleGlobalShift_AutoAppliesForLargeCoordinates(t *testing.T) {
	params := newShiftParams(ShiftModeAuto, AutoHandler{PreserveOnSave: true})

	p := geom.Vector3d{X: 456000.0, Y: 5428000.0, Z: 120.5}
	shift, preserve, applied := HandleGlobalShift(p, geom.Vector3d{}, params, false)

	require.True(t, applied)
	assert.True(t, preserve)
	assert.Equal(t, geom.Vector3d{X: -456000, Y: -5428000, Z: 0}, shift)

	// The recentered point must be small enough for float32 storage.
	assert.Less(t, p.Add(shift).MaxAbs(), DefaultMaxCoordinateAbs)
}

func TestHandleGlobalShift_SmallCoordinatesNeedNoShift(t *testing.T) {
	params := newShiftParams(ShiftModeAuto, AutoHandler{})

	_, _, applied := HandleGlobalShift(geom.Vector3d{X: 1.5, Y: -2.25, Z: 10}, geom.Vector3d{}, params, false)
	assert.False(t, applied)
	assert.False(t, *params.CoordinatesShiftEnabled)
}

func TestHandleGlobalShift_ReusesSessionShift(t *testing.T) {
	params := newShiftParams(ShiftModeAuto, AutoHandler{PreserveOnSave: true})

	first := geom.Vector3d{X: 456000.0, Y: 5428000.0, Z: 120.5}
	firstShift, _, applied := HandleGlobalShift(first, geom.Vector3d{}, params, false)
	require.True(t, applied)
	require.True(t, *params.CoordinatesShiftEnabled)

	// A second dataset with a different candidate point must reuse the
	// identical shift vector rather than recomputing one.
	second := geom.Vector3d{X: 456789.0, Y: 5428321.0, Z: 95.0}
	secondShift, preserve, applied := HandleGlobalShift(second, geom.Vector3d{}, params, false)
	require.True(t, applied)
	assert.Equal(t, firstShift, secondShift)
	assert.True(t, preserve)
}

func TestHandleGlobalShift_ModeNoneNeverShifts(t *testing.T) {
	params := newShiftParams(ShiftModeNone, AutoHandler{})

	_, _, applied := HandleGlobalShift(geom.Vector3d{X: 1e7, Y: 1e7, Z: 0}, geom.Vector3d{}, params, false)
	assert.False(t, applied)
}

func TestHandleGlobalShift_NilHandlerNeverShifts(t *testing.T) {
	params := newShiftParams(ShiftModeAuto, nil)

	_, _, applied := HandleGlobalShift(geom.Vector3d{X: 1e7, Y: 1e7, Z: 0}, geom.Vector3d{}, params, false)
	assert.False(t, applied)
}

func TestHandleGlobalShift_PrefersSuggestedShift(t *testing.T) {
	params := newShiftParams(ShiftModeAuto, AutoHandler{})
	// A shift recorded in the file itself, close to but not equal to what
	// AutoHandler would compute.
	suggested := geom.Vector3d{X: -455950, Y: -5427950, Z: 0}

	p := geom.Vector3d{X: 456000.0, Y: 5428000.0, Z: 120.5}
	shift, _, applied := HandleGlobalShift(p, suggested, params, true)

	require.True(t, applied)
	assert.Equal(t, suggested, shift,
		"a suggested shift that keeps the point small must win over a recomputed one")
	assert.True(t, *params.CoordinatesShiftEnabled, "apply-all decisions persist session-wide")
}

func TestHandleGlobalShift_NilSlotsDoNotPersist(t *testing.T) {
	params := &LoadParameters{
		ShiftHandlingMode: ShiftModeAuto,
		ShiftHandler:      AutoHandler{},
	}

	shift, _, applied := HandleGlobalShift(geom.Vector3d{X: 1e6, Y: 0, Z: 0}, geom.Vector3d{}, params, false)
	require.True(t, applied)
	assert.Equal(t, -1e6, shift.X)

	// Without session-wide slots the decision applies to this dataset only.
	_, _, applied = HandleGlobalShift(geom.Vector3d{X: 2.0, Y: 0, Z: 0}, geom.Vector3d{}, params, false)
	assert.False(t, applied)
}

func TestHandleGlobalShift_ConcurrentLoadsAgreeOnOneShift(t *testing.T) {
	session := NewSession()
	params := newShiftParams(ShiftModeAuto, AutoHandler{})
	params.Session = session

	points := []geom.Vector3d{
		{X: 456000.0, Y: 5428000.0, Z: 100},
		{X: 456100.0, Y: 5428100.0, Z: 110},
		{X: 456200.0, Y: 5428200.0, Z: 120},
		{X: 456300.0, Y: 5428300.0, Z: 130},
	}

	shifts := make([]geom.Vector3d, len(points))
	var wg sync.WaitGroup
	for i, p := range points {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			shift, _, applied := HandleGlobalShift(p, geom.Vector3d{}, params, false)
			assert.True(t, applied)
			shifts[i] = shift
		}()
	}
	wg.Wait()

	// Whatever shift won the race, every load must have observed it.
	for i := 1; i < len(shifts); i++ {
		assert.Equal(t, shifts[0], shifts[i],
			"the active shift must never change mid-session")
	}
	assert.Equal(t, *params.CoordinatesShift, shifts[0])
}

func TestBestShift(t *testing.T) {
	tests := []struct {
		name     string
		p        geom.Vector3d
		expected geom.Vector3d
	}{
		{
			"all components large",
			geom.Vector3d{X: 123456, Y: -654321, Z: 99999},
			geom.Vector3d{X: -123500, Y: 654300, Z: -100000},
		},
		{
			"mixed magnitudes leave small components alone",
			geom.Vector3d{X: 456000, Y: 12.5, Z: -3},
			geom.Vector3d{X: -456000, Y: 0, Z: 0},
		},
		{
			"all components small",
			geom.Vector3d{X: 1, Y: 2, Z: 3},
			geom.Vector3d{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.expected, BestShift(test.p, DefaultMaxCoordinateAbs)); diff != "" {
				t.Errorf("BestShift mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseShiftMode(t *testing.T) {
	for _, mode := range []ShiftMode{ShiftModeNone, ShiftModeAsk, ShiftModeAuto} {
		parsed, ok := ParseShiftMode(mode.String())
		require.True(t, ok)
		assert.Equal(t, mode, parsed)
	}

	_, ok := ParseShiftMode("interactive")
	assert.False(t, ok)
}
