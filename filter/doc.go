// Package filter defines the file format abstraction at the core of geoio:
// the Filter capability contract, the insertion-ordered Registry that
// routes format identifiers and extensions to filters, the Session scoping
// load operations, and the global coordinate shift negotiation that keeps
// large-magnitude double-precision source coordinates representable in the
// narrower runtime coordinate type.
//
// # Registry
//
// Filters register once, "from the most useful to the less one": lookup by
// extension is first-match-wins in registration order, and import
// identifier strings must stay unique across the registry.
//
//	reg := filter.NewRegistry(logger)
//	reg.Register(native.New())
//	reg.Register(ascii.New())
//	defer reg.UnregisterAll()
//
// # Global shift
//
// Coordinate-bearing filters call HandleGlobalShift once per dataset with
// the first (or a representative) source point. The first decision of a
// session, when marked apply-all, is persisted into the LoadParameters and
// reused unconditionally by every later dataset of the same session;
// mixing shifts across datasets sharing a coordinate frame would silently
// corrupt relative positions.
//
//	shift, preserve, applied := filter.HandleGlobalShift(first, geom.Vector3d{}, params, false)
//	if applied {
//	    cloud.SetGlobalShift(shift)
//	}
package filter
