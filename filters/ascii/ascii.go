// Package ascii implements the ASCII point cloud filter: whitespace
// separated "x y z" lines, with '#' and '//' comments.
package ascii

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c360/geoio/entity"
	"github.com/c360/geoio/errors"
	"github.com/c360/geoio/filter"
	"github.com/c360/geoio/geom"
)

// FileFilterID is the import/export identifier this filter claims.
const FileFilterID = "ASCII cloud (*.asc *.txt *.xyz)"

var extensions = []string{"ASC", "TXT", "XYZ"}

// Filter loads and saves ASCII point clouds.
type Filter struct{}

// New creates the ASCII filter.
func New() *Filter { return &Filter{} }

// FileFilters implements filter.Filter.
func (f *Filter) FileFilters(bool) []string {
	return []string{FileFilterID}
}

// DefaultExtension implements filter.Filter.
func (f *Filter) DefaultExtension() string { return "asc" }

// CanLoadExtension implements filter.Filter.
func (f *Filter) CanLoadExtension(upperExt string) bool {
	for _, ext := range extensions {
		if ext == upperExt {
			return true
		}
	}
	return false
}

// Load reads the whole file into a single point cloud child. The cloud is
// named with the "unnamed" placeholder; the orchestrator substitutes the
// file's base name.
func (f *Filter) Load(path string, container *entity.Container, params *filter.LoadParameters) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WrapCoded(errors.CodeReading, err, "AsciiFilter", "Load", "open file")
	}
	defer file.Close()

	cloud := entity.NewPointCloud("unnamed")
	shiftDecided := false

	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "//") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 3 {
			return errors.Newf(errors.CodeMalformedFile,
				"AsciiFilter.Load: line %d has %d fields, expected at least 3", line, len(fields))
		}

		var p geom.Vector3d
		for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
			v, parseErr := strconv.ParseFloat(fields[i], 64)
			if parseErr != nil {
				return errors.WrapCoded(errors.CodeMalformedFile, parseErr,
					"AsciiFilter", "Load", fmt.Sprintf("parse coordinate on line %d", line))
			}
			*dst = v
		}

		// The first point of the dataset drives the shift negotiation.
		if !shiftDecided {
			shiftDecided = true
			if shift, _, applied := filter.HandleGlobalShift(p, geom.Vector3d{}, params, false); applied {
				cloud.SetGlobalShift(shift)
			}
		}

		cloud.AddPoint(p)
	}
	if err := scanner.Err(); err != nil {
		return errors.WrapCoded(errors.CodeReading, err, "AsciiFilter", "Load", "scan file")
	}

	if cloud.Size() > 0 {
		container.AddChild(cloud)
	}
	return nil
}

// Save writes every point cloud found in entities, restoring the original
// full-precision coordinates (global shift removed).
func (f *Filter) Save(entities entity.Entity, path string, _ *filter.SaveParameters) error {
	clouds, ok := collectClouds(entities)
	if !ok {
		return errors.New(errors.CodeBadEntityType, "AsciiFilter.Save: entity is not a point cloud or container")
	}
	if len(clouds) == 0 {
		return errors.New(errors.CodeNoSave, "AsciiFilter.Save: no point cloud to save")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.WrapCoded(errors.CodeWriting, err, "AsciiFilter", "Save", "create file")
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, cloud := range clouds {
		for i := 0; i < cloud.Size(); i++ {
			p := cloud.OriginalPoint(i)
			if _, err := fmt.Fprintf(w, "%s %s %s\n",
				strconv.FormatFloat(p.X, 'f', -1, 64),
				strconv.FormatFloat(p.Y, 'f', -1, 64),
				strconv.FormatFloat(p.Z, 'f', -1, 64)); err != nil {
				return errors.WrapCoded(errors.CodeWriting, err, "AsciiFilter", "Save", "write point")
			}
		}
	}
	if err := w.Flush(); err != nil {
		return errors.WrapCoded(errors.CodeWriting, err, "AsciiFilter", "Save", "flush file")
	}
	return nil
}

// Unregister implements filter.Filter. The ASCII filter holds no resources.
func (f *Filter) Unregister() {}

// collectClouds gathers point clouds from an entity or its immediate
// children. ok is false when the entity type is incompatible altogether.
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
