// Package entity defines the hierarchical result objects produced by load
// operations and consumed by save operations.
package entity

import (
	"github.com/google/uuid"

	"github.com/c360/geoio/geom"
)

// Entity is the minimal capability every loaded object exposes.
// Filters populate containers with entities; the orchestrator only ever
// relies on this surface for post-processing.
type Entity interface {
	// ID returns the stable unique identifier assigned at creation.
	ID() uuid.UUID
	// Name returns the current display name.
	Name() string
	// SetName replaces the display name.
	SetName(name string)
}

// base carries the identity shared by all concrete entity types.
type base struct {
	id   uuid.UUID
	name string
}

func newBase(name string) base {
	return base{id: uuid.New(), name: name}
}

// ID returns the entity's unique identifier.
func (b *base) ID() uuid.UUID { return b.id }

// Name returns the entity's display name.
func (b *base) Name() string { return b.name }

// SetName replaces the entity's display name.
func (b *base) SetName(name string) { b.name = name }

// Container is a generic hierarchical entity holding zero or more named
// children. The root container returned by a load is unnamed until the
// orchestrator post-processes it. The container does not own its children
// exclusively once returned: the caller of the load operation does.
type Container struct {
	base
	children []Entity
}

// NewContainer creates an empty container. The name may be empty; load
// results start unnamed.
func NewContainer(name string) *Container {
	return &Container{base: newBase(name)}
}

// AddChild appends a child entity. Nil children are ignored.
func (c *Container) AddChild(child Entity) {
	if child == nil {
		return
	}
	c.children = append(c.children, child)
}

// ChildrenNumber returns the number of immediate children.
func (c *Container) ChildrenNumber() int { return len(c.children) }

// Child returns the i-th immediate child, or nil if out of range.
func (c *Container) Child(i int) Entity {
	if i < 0 || i >= len(c.children) {
		return nil
	}
	return c.children[i]
}

// Children returns a snapshot copy of the immediate children.
func (c *Container) Children() []Entity {
	out := make([]Entity, len(c.children))
	copy(out, c.children)
	return out
}

// RemoveAllChildren drops every child, releasing any partially-populated
// content after a failed load.
func (c *Container) RemoveAllChildren() {
	c.children = nil
}

// PointCloud is a leaf entity storing runtime-precision points together
// with the full-precision shift that was subtracted from them at load time.
type PointCloud struct {
	base
	points      []geom.Vector3
	globalShift geom.Vector3d
}

// NewPointCloud creates an empty point cloud.
func NewPointCloud(name string) *PointCloud {
	return &PointCloud{base: newBase(name)}
}

// Reserve pre-allocates capacity for n points.
func (pc *PointCloud) Reserve(n int) {
	if cap(pc.points) < n {
		grown := make([]geom.Vector3, len(pc.points), n)
		copy(grown, pc.points)
		pc.points = grown
	}
}

// AddPoint appends a full-precision point, applying the cloud's global
// shift before narrowing to the runtime coordinate type.
func (pc *PointCloud) AddPoint(p geom.Vector3d) {
	pc.points = append(pc.points, p.Add(pc.globalShift).Narrow())
}

// Size returns the number of stored points.
func (pc *PointCloud) Size() int { return len(pc.points) }

// Point returns the i-th runtime-precision point.
func (pc *PointCloud) Point(i int) geom.Vector3 { return pc.points[i] }

// GlobalShift returns the shift that was added to source coordinates
// before storage (the negotiated offset, sign included).
func (pc *PointCloud) GlobalShift() geom.Vector3d { return pc.globalShift }

// SetGlobalShift records the negotiated shift. Must be set before points
// are added; changing it afterwards does not re-shift stored points.
func (pc *PointCloud) SetGlobalShift(shift geom.Vector3d) {
	pc.globalShift = shift
}

// OriginalPoint reconstructs the full-precision source coordinates of the
// i-th point by removing the global shift.
func (pc *PointCloud) OriginalPoint(i int) geom.Vector3d {
	return pc.points[i].Widen().Sub(pc.globalShift)
}
