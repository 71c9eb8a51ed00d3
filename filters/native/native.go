// Package native implements geoio's own container format: a JSON document
// holding an entity tree with full-precision coordinates and the global
// shift recorded at save time. Documents are validated against a schema
// before any entity is built, so structural damage surfaces as a malformed
// file instead of a half-loaded tree.
package native

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/geoio/entity"
	"github.com/c360/geoio/errors"
	"github.com/c360/geoio/filter"
	"github.com/c360/geoio/geom"
)

// FileFilterID is the import/export identifier this filter claims.
const FileFilterID = "geoio container (*.geoio)"

// formatName is the magic value every native document must carry.
const formatName = "geoio.container"

// formatVersion is the current document version. Older versions load;
// newer ones are refused as written by an unknown (newer) plugin set.
const formatVersion = 1

// documentSchema validates the structural shape of a native document.
const documentSchema = `{
	"type": "object",
	"required": ["format", "version", "entities"],
	"properties": {
		"format":  {"type": "string"},
		"version": {"type": "integer", "minimum": 1},
		"writer":  {"type": "string"},
		"entities": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["type", "name"],
				"properties": {
					"type":   {"type": "string", "enum": ["cloud"]},
					"name":   {"type": "string"},
					"shift":  {"type": "array", "items": {"type": "number"}, "minItems": 3, "maxItems": 3},
					"points": {"type": "array", "items": {"type": "array", "items": {"type": "number"}, "minItems": 3, "maxItems": 3}}
				}
			}
		}
	}
}`

// document is the on-disk shape of a native file.
type document struct {
	Format   string          `json:"format"`
	Version  int             `json:"version"`
	Writer   string          `json:"writer,omitempty"`
	Entities []documentChild `json:"entities"`
}

type documentChild struct {
	Type   string       `json:"type"`
	Name   string       `json:"name"`
	Shift  *[3]float64  `json:"shift,omitempty"`
	Points [][3]float64 `json:"points,omitempty"`
}

// Filter loads and saves the native container format.
type Filter struct {
	schema *gojsonschema.Schema
}

// New creates the native filter. The embedded schema is trusted to
// compile; a failure here is a programming error.
func New() *Filter {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	if err != nil {
		panic(fmt.Sprintf("native: invalid embedded document schema: %v", err))
	}
	return &Filter{schema: schema}
}

// FileFilters implements filter.Filter.
func (f *Filter) FileFilters(bool) []string {
	return []string{FileFilterID}
}

// DefaultExtension implements filter.Filter.
func (f *Filter) DefaultExtension() string { return "geoio" }

// CanLoadExtension implements filter.Filter.
func (f *Filter) CanLoadExtension(upperExt string) bool {
	return upperExt == "GEOIO"
}

// Load reads a native document into the container. A shift recorded in
// the document is offered to the negotiator for reuse, so re-loading a
// shifted dataset lands it back in the same local frame.
func (f *Filter) Load(path string, container *entity.Container, params *filter.LoadParameters) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapCoded(errors.CodeReading, err, "NativeFilter", "Load", "read file")
	}

	result, err := f.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// Not even JSON.
		return errors.WrapCoded(errors.CodeMalformedFile, err, "NativeFilter", "Load", "parse document")
	}
	if !result.Valid() {
		return errors.Newf(errors.CodeMalformedFile,
			"NativeFilter.Load: invalid document: %s", result.Errors()[0])
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.WrapCoded(errors.CodeMalformedFile, err, "NativeFilter", "Load", "decode document")
	}

	if doc.Format != formatName {
		return errors.Newf(errors.CodeWrongFileType,
			"NativeFilter.Load: format is %q, expected %q", doc.Format, formatName)
	}
	if doc.Version > formatVersion {
		return errors.Newf(errors.CodeUnknownPlugin,
			"NativeFilter.Load: document version %d written by %q is newer than supported version %d",
			doc.Version, doc.Writer, formatVersion)
	}

	for _, child := range doc.Entities {
		cloud := entity.NewPointCloud(child.Name)

		var fileShift geom.Vector3d
		preferReuse := false
		if child.Shift != nil {
			fileShift = geom.Vector3d{X: child.Shift[0], Y: child.Shift[1], Z: child.Shift[2]}
			preferReuse = !fileShift.IsZero()
		}

		if len(child.Points) > 0 {
			first := geom.Vector3d{X: child.Points[0][0], Y: child.Points[0][1], Z: child.Points[0][2]}
			if shift, _, applied := filter.HandleGlobalShift(first, fileShift, params, preferReuse); applied {
				cloud.SetGlobalShift(shift)
			}
		}

		cloud.Reserve(len(child.Points))
		for _, p := range child.Points {
			cloud.AddPoint(geom.Vector3d{X: p[0], Y: p[1], Z: p[2]})
		}
		container.AddChild(cloud)
	}

	return nil
}

// Save writes entities as a native document with full-precision
// coordinates, recording each cloud's global shift for later reuse.
func (f *Filter) Save(entities entity.Entity, path string, _ *filter.SaveParameters) error {
	doc := document{
		Format:  formatName,
		Version: formatVersion,
		Writer:  "geoio",
	}

	children, ok := flatten(entities)
	if !ok {
		return errors.New(errors.CodeBadEntityType, "NativeFilter.Save: entity is not a point cloud or container")
	}
	if len(children) == 0 {
		return errors.New(errors.CodeNoSave, "NativeFilter.Save: nothing to save")
	}

	for _, cloud := range children {
		child := documentChild{
			Type:   "cloud",
			Name:   cloud.Name(),
			Points: make([][3]float64, cloud.Size()),
		}
		if shift := cloud.GlobalShift(); !shift.IsZero() {
			child.Shift = &[3]float64{shift.X, shift.Y, shift.Z}
		}
		for i := 0; i < cloud.Size(); i++ {
			p := cloud.OriginalPoint(i)
			child.Points[i] = [3]float64{p.X, p.Y, p.Z}
		}
		doc.Entities = append(doc.Entities, child)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WrapCoded(errors.CodeWriting, err, "NativeFilter", "Save", "encode document")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapCoded(errors.CodeWriting, err, "NativeFilter", "Save", "write file")
	}
	return nil
}

// Unregister implements filter.Filter.
func (f *Filter) Unregister() {}

func flatten(e entity.Entity) (clouds []*entity.PointCloud, ok bool) {
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
