// Package gpkg implements a GeoPackage-style filter reading and writing
// point clouds from a SQLite "points" table (columns x, y, z). The SQLite
// engine is a third-party codec from this core's perspective: its failures
// classify as third-party library failures, not filesystem errors.
package gpkg

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/c360/geoio/entity"
	"github.com/c360/geoio/errors"
	"github.com/c360/geoio/filter"
	"github.com/c360/geoio/geom"
)

// FileFilterID is the import/export identifier this filter claims.
const FileFilterID = "SQLite point table (*.gpkg *.sqlite)"

// Filter loads and saves point clouds stored in SQLite databases.
type Filter struct{}

// New creates the SQLite point table filter.
func New() *Filter { return &Filter{} }

// FileFilters implements filter.Filter.
func (f *Filter) FileFilters(bool) []string {
	return []string{FileFilterID}
}

// DefaultExtension implements filter.Filter.
func (f *Filter) DefaultExtension() string { return "gpkg" }

// CanLoadExtension implements filter.Filter.
func (f *Filter) CanLoadExtension(upperExt string) bool {
	return upperExt == "GPKG" || upperExt == "SQLITE"
}

// Load reads every row of the points table into one cloud child.
func (f *Filter) Load(path string, container *entity.Container, params *filter.LoadParameters) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.WrapCoded(errors.CodeThirdPartyLibFailure, err, "GpkgFilter", "Load", "open database")
	}
	defer db.Close()

	rows, err := db.Query("SELECT x, y, z FROM points ORDER BY rowid")
	if err != nil {
		// No points table (or not a SQLite file at all).
		return errors.WrapCoded(errors.CodeWrongFileType, err, "GpkgFilter", "Load", "query points table")
	}
	defer rows.Close()

	cloud := entity.NewPointCloud("unnamed_points")
	shiftDecided := false

	for rows.Next() {
		var p geom.Vector3d
		if err := rows.Scan(&p.X, &p.Y, &p.Z); err != nil {
			return errors.WrapCoded(errors.CodeMalformedFile, err, "GpkgFilter", "Load", "scan point row")
		}

		if !shiftDecided {
			shiftDecided = true
			if shift, _, applied := filter.HandleGlobalShift(p, geom.Vector3d{}, params, false); applied {
				cloud.SetGlobalShift(shift)
			}
		}
		cloud.AddPoint(p)
	}
	if err := rows.Err(); err != nil {
		return errors.WrapCoded(errors.CodeThirdPartyLibFailure, err, "GpkgFilter", "Load", "iterate point rows")
	}

	if cloud.Size() > 0 {
		container.AddChild(cloud)
	}
	return nil
}

// Save writes every point cloud into a fresh points table, full-precision
// coordinates restored.
func (f *Filter) Save(entities entity.Entity, path string, _ *filter.SaveParameters) error {
	clouds, ok := collectClouds(entities)
	if !ok {
		return errors.New(errors.CodeBadEntityType, "GpkgFilter.Save: entity is not a point cloud or container")
	}
	if len(clouds) == 0 {
		return errors.New(errors.CodeNoSave, "GpkgFilter.Save: no point cloud to save")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.WrapCoded(errors.CodeThirdPartyLibFailure, err, "GpkgFilter", "Save", "open database")
	}
	defer db.Close()

	if _, err := db.Exec("DROP TABLE IF EXISTS points"); err != nil {
		return errors.WrapCoded(errors.CodeWriting, err, "GpkgFilter", "Save", "reset points table")
	}
	if _, err := db.Exec("CREATE TABLE points (x REAL NOT NULL, y REAL NOT NULL, z REAL NOT NULL)"); err != nil {
		return errors.WrapCoded(errors.CodeWriting, err, "GpkgFilter", "Save", "create points table")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.WrapCoded(errors.CodeThirdPartyLibFailure, err, "GpkgFilter", "Save", "begin transaction")
	}
	stmt, err := tx.Prepare("INSERT INTO points (x, y, z) VALUES (?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return errors.WrapCoded(errors.CodeThirdPartyLibFailure, err, "GpkgFilter", "Save", "prepare insert")
	}
	defer stmt.Close()

	for _, cloud := range clouds {
		for i := 0; i < cloud.Size(); i++ {
			p := cloud.OriginalPoint(i)
			if _, err := stmt.Exec(p.X, p.Y, p.Z); err != nil {
				_ = tx.Rollback()
				return errors.WrapCoded(errors.CodeWriting, err, "GpkgFilter", "Save",
					fmt.Sprintf("insert point %d", i))
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.WrapCoded(errors.CodeWriting, err, "GpkgFilter", "Save", "commit transaction")
	}
	return nil
}

// Unregister implements filter.Filter.
func (f *Filter) Unregister() {}

func collectClouds(e entity.Entity) (clouds []*entity.PointCloud, ok bool) {
	switch v := e.(type) {
	case *entity.PointCloud:
		return []*entity.PointCloud{v}, true
	case *entity.Container:
		for _, child := range v.Children() {
			if cloud, cloudOK := child.(*entity.PointCloud); cloudOK {
				clouds = append(clouds, cloud)
			}
		}
		return clouds, true
	default:
		return nil, false
	}
}
