package gpkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/geoio/entity"
	"github.com/c360/geoio/errors"
	"github.com/c360/geoio/filter"
	"github.com/c360/geoio/geom"
)

func TestFilterCapabilities(t *testing.T) {
	f := New()

	assert.Equal(t, []string{FileFilterID}, f.FileFilters(true))
	assert.Equal(t, "gpkg", f.DefaultExtension())
	assert.True(t, f.CanLoadExtension("GPKG"))
	assert.True(t, f.CanLoadExtension("SQLITE"))
	assert.False(t, f.CanLoadExtension("ASC"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.gpkg")
	f := New()

	cloud := entity.NewPointCloud("scan")
	cloud.AddPoint(geom.Vector3d{X: 1.5, Y: 2.25, Z: -3.75})
	cloud.AddPoint(geom.Vector3d{X: 10, Y: 20, Z: 30})

	require.NoError(t, f.Save(cloud, path, &filter.SaveParameters{}))

	container := entity.NewContainer("root")
	params := &filter.LoadParameters{ShiftHandlingMode: filter.ShiftModeNone}
	require.NoError(t, f.Load(path, container, params))

	require.Equal(t, 1, container.ChildrenNumber())
	loaded, ok := container.Child(0).(*entity.PointCloud)
	require.True(t, ok)
	require.Equal(t, 2, loaded.Size())
	assert.Equal(t, geom.Vector3d{X: 1.5, Y: 2.25, Z: -3.75}, loaded.OriginalPoint(0))
	assert.Equal(t, geom.Vector3d{X: 10, Y: 20, Z: 30}, loaded.OriginalPoint(1))
}

func TestLoadShiftsLargeCoordinates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utm.gpkg")
	f := New()

	cloud := entity.NewPointCloud("utm")
	cloud.AddPoint(geom.Vector3d{X: 456000.5, Y: 5428000.25, Z: 99})
	require.NoError(t, f.Save(cloud, path, &filter.SaveParameters{}))

	container := entity.NewContainer("root")
	enabled := false
	shift := geom.Vector3d{}
	params := &filter.LoadParameters{
		CoordinatesShiftEnabled: &enabled,
		CoordinatesShift:        &shift,
		ShiftHandlingMode:       filter.ShiftModeAuto,
		ShiftHandler:            &filter.AutoHandler{MaxCoordinateAbs: filter.DefaultMaxCoordinateAbs},
	}
	require.NoError(t, f.Load(path, container, params))

	require.Equal(t, 1, container.ChildrenNumber())
	loaded := container.Child(0).(*entity.PointCloud)
	assert.False(t, loaded.GlobalShift().IsZero())

	// Shifted runtime coordinates stay small, originals survive the trip.
	assert.Less(t, float64(loaded.Point(0).X), filter.DefaultMaxCoordinateAbs)
	assert.InDelta(t, 456000.5, loaded.OriginalPoint(0).X, 1e-3)
	assert.InDelta(t, 5428000.25, loaded.OriginalPoint(0).Y, 1e-3)
}

func TestLoadRejectsNonDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.gpkg")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not sqlite"), 0o644))

	container := entity.NewContainer("root")
	err := New().Load(path, container, &filter.LoadParameters{ShiftHandlingMode: filter.ShiftModeNone})
	require.Error(t, err)
	assert.Equal(t, errors.CodeWrongFileType, errors.CodeOf(err))
	assert.Equal(t, 0, container.ChildrenNumber())
}

func TestLoadEmptyTableAddsNoChild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gpkg")
	f := New()

	// A cloud with no points still creates the table, just without rows.
	empty := entity.NewPointCloud("none")
	require.NoError(t, f.Save(empty, path, &filter.SaveParameters{}))

	container := entity.NewContainer("root")
	require.NoError(t, f.Load(path, container, &filter.LoadParameters{ShiftHandlingMode: filter.ShiftModeNone}))
	assert.Equal(t, 0, container.ChildrenNumber())
}

func TestPluginContributesFilterAndVerb(t *testing.T) {
	p := Plugin{}

	flts := p.Filters()
	require.Len(t, flts, 1)
	assert.Equal(t, FileFilterID, flts[0].FileFilters(true)[0])

	host := &captureHost{}
	require.NoError(t, p.RegisterCommands(host))
	assert.Equal(t, []string{"gpkg-info"}, host.verbs)
}

type captureHost struct {
	verbs []string
}

func (h *captureHost) RegisterCommand(name string, _ func(args []string) error) error {
	h.verbs = append(h.verbs, name)
	return nil
}

func TestCountPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count.gpkg")
	f := New()

	cloud := entity.NewPointCloud("scan")
	for i := 0; i < 5; i++ {
		cloud.AddPoint(geom.Vector3d{X: float64(i), Y: 0, Z: 0})
	}
	require.NoError(t, f.Save(cloud, path, &filter.SaveParameters{}))

	count, err := countPoints(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	_, err = countPoints(filepath.Join(t.TempDir(), "missing.gpkg"))
	assert.Error(t, err)
}

func TestSaveRejectsBadEntities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gpkg")
	f := New()

	err := f.Save(nil, path, &filter.SaveParameters{})
	assert.Equal(t, errors.CodeBadEntityType, errors.CodeOf(err))

	err = f.Save(entity.NewContainer("empty"), path, &filter.SaveParameters{})
	assert.Equal(t, errors.CodeNoSave, errors.CodeOf(err))
}
