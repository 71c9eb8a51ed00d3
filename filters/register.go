// Package filters bundles the built-in file format filters and registers
// them against a filter.Registry.
package filters

import (
	"github.com/c360/geoio/filter"
	"github.com/c360/geoio/filters/ascii"
	"github.com/c360/geoio/filters/gpkg"
	"github.com/c360/geoio/filters/native"
)

// RegisterDefaults registers every built-in filter, from the most useful
// to the less one. Registration order is the priority order used by
// extension lookup. The command-line host may be nil when no verb surface
// exists.
func RegisterDefaults(reg *filter.Registry, cmd filter.CommandLine) error {
	reg.Register(native.New())
	reg.Register(ascii.New())
	return filter.RegisterPlugin(reg, gpkg.Plugin{}, cmd)
}
