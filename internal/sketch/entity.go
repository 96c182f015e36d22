package sketch

// EntityType identifies the kind of a sketch entity.
type EntityType int

const (
	EntityLine EntityType = iota
	EntityCircle
	EntityArc
)

// String returns the lowercase name used in sketch files.
func (t EntityType) String() string {
	switch t {
	case EntityLine:
		return "line"
	case EntityCircle:
		return "circle"
	case EntityArc:
		return "arc"
	}
	return "unknown"
}

// Entity is a sketch entity referencing points by id. Lines use Start/End,
// circles use Center/Radius, arcs use Center/Start/End/Radius. Radius is
// entity state, not a solver variable: the solver only moves point
// coordinates.
type Entity struct {
	ID     EntityID   `json:"id"`
	Type   EntityType `json:"type"`
	Start  PointID    `json:"start,omitempty"`
	End    PointID    `json:"end,omitempty"`
	Center PointID    `json:"center,omitempty"`
	Radius float64    `json:"radius,omitempty"`
}

// IsLine reports whether the entity is a line.
func (e *Entity) IsLine() bool { return e.Type == EntityLine }

// IsCircle reports whether the entity is a circle.
func (e *Entity) IsCircle() bool { return e.Type == EntityCircle }

// IsArc reports whether the entity is an arc.
func (e *Entity) IsArc() bool { return e.Type == EntityArc }

// PointIDs returns the point ids the entity references, in declaration order.
func (e *Entity) PointIDs() []PointID {
	switch e.Type {
	case EntityLine:
		return []PointID{e.Start, e.End}
	case EntityCircle:
		return []PointID{e.Center}
	case EntityArc:
		return []PointID{e.Center, e.Start, e.End}
	}
	return nil
}
