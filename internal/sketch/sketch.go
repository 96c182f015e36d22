// Package sketch holds the 2D sketch data model: points, entities (lines,
// circles, arcs) and geometric constraints. The sketch owns all geometric
// state; the solver borrows mutable access to point coordinates for the
// duration of one solve call.
package sketch

import (
	"fmt"

	"sketch-solver/pkg/geometry"
)

// PointID identifies a point within a sketch. Ids are never reused.
type PointID int

// EntityID identifies an entity within a sketch. Ids are never reused.
type EntityID int

// ConstraintID identifies a constraint within a sketch. Ids are never reused.
type ConstraintID int

// Point is a sketch point. Fixed points are excluded from the solver's
// variable vector and never moved.
type Point struct {
	ID    PointID `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fixed bool    `json:"fixed,omitempty"`
}

// Pos returns the point position as a geometry value.
func (p Point) Pos() geometry.Point2D {
	return geometry.Point2D{X: p.X, Y: p.Y}
}

// Sketch is the mutable collection of points, entities, and constraints.
// Iteration order is insertion order; lookups go through id→index maps so
// they stay O(1) as sketches grow.
type Sketch struct {
	points      []Point
	entities    []Entity
	constraints []Constraint

	pointIndex      map[PointID]int
	entityIndex     map[EntityID]int
	constraintIndex map[ConstraintID]int

	nextPointID      PointID
	nextEntityID     EntityID
	nextConstraintID ConstraintID
}

// New creates an empty sketch.
func New() *Sketch {
	return &Sketch{
		pointIndex:       make(map[PointID]int),
		entityIndex:      make(map[EntityID]int),
		constraintIndex:  make(map[ConstraintID]int),
		nextPointID:      1,
		nextEntityID:     1,
		nextConstraintID: 1,
	}
}

// AddPoint adds a free point and returns its id.
func (s *Sketch) AddPoint(x, y float64) PointID {
	return s.addPoint(x, y, false)
}

// AddFixedPoint adds a fixed point and returns its id.
func (s *Sketch) AddFixedPoint(x, y float64) PointID {
	return s.addPoint(x, y, true)
}

func (s *Sketch) addPoint(x, y float64, fixed bool) PointID {
	id := s.nextPointID
	s.nextPointID++
	s.pointIndex[id] = len(s.points)
	s.points = append(s.points, Point{ID: id, X: x, Y: y, Fixed: fixed})
	return id
}

// AddLine adds a line entity between two existing points.
func (s *Sketch) AddLine(start, end PointID) (EntityID, error) {
	if _, ok := s.pointIndex[start]; !ok {
		return 0, fmt.Errorf("line start point %d not found", start)
	}
	if _, ok := s.pointIndex[end]; !ok {
		return 0, fmt.Errorf("line end point %d not found", end)
	}
	return s.addEntity(Entity{Type: EntityLine, Start: start, End: end}), nil
}

// AddCircle adds a circle entity around an existing center point.
func (s *Sketch) AddCircle(center PointID, radius float64) (EntityID, error) {
	if _, ok := s.pointIndex[center]; !ok {
		return 0, fmt.Errorf("circle center point %d not found", center)
	}
	return s.addEntity(Entity{Type: EntityCircle, Center: center, Radius: radius}), nil
}

// AddArc adds an arc entity referencing center, start, and end points.
func (s *Sketch) AddArc(center, start, end PointID, radius float64) (EntityID, error) {
	for _, id := range []PointID{center, start, end} {
		if _, ok := s.pointIndex[id]; !ok {
			return 0, fmt.Errorf("arc point %d not found", id)
		}
	}
	return s.addEntity(Entity{Type: EntityArc, Center: center, Start: start, End: end, Radius: radius}), nil
}

func (s *Sketch) addEntity(e Entity) EntityID {
	e.ID = s.nextEntityID
	s.nextEntityID++
	s.entityIndex[e.ID] = len(s.entities)
	s.entities = append(s.entities, e)
	return e.ID
}

// AddConstraint adds an enabled constraint and returns its id.
func (s *Sketch) AddConstraint(data ConstraintData) ConstraintID {
	id := s.nextConstraintID
	s.nextConstraintID++
	s.constraintIndex[id] = len(s.constraints)
	s.constraints = append(s.constraints, Constraint{ID: id, Enabled: true, Data: data})
	return id
}

// Point looks up a point by id.
func (s *Sketch) Point(id PointID) (Point, bool) {
	i, ok := s.pointIndex[id]
	if !ok {
		return Point{}, false
	}
	return s.points[i], true
}

// Entity looks up an entity by id.
func (s *Sketch) Entity(id EntityID) (Entity, bool) {
	i, ok := s.entityIndex[id]
	if !ok {
		return Entity{}, false
	}
	return s.entities[i], true
}

// Constraint looks up a constraint by id.
func (s *Sketch) Constraint(id ConstraintID) (Constraint, bool) {
	i, ok := s.constraintIndex[id]
	if !ok {
		return Constraint{}, false
	}
	return s.constraints[i], true
}

// Points returns the points in insertion order. Callers must not modify
// the returned slice.
func (s *Sketch) Points() []Point { return s.points }

// Entities returns the entities in insertion order. Callers must not
// modify the returned slice.
func (s *Sketch) Entities() []Entity { return s.entities }

// Constraints returns the constraints in insertion order. Callers must not
// modify the returned slice.
func (s *Sketch) Constraints() []Constraint { return s.constraints }

// SetPointPosition moves a point. Returns false if the id is unknown or
// the point is fixed.
func (s *Sketch) SetPointPosition(id PointID, x, y float64) bool {
	i, ok := s.pointIndex[id]
	if !ok || s.points[i].Fixed {
		return false
	}
	s.points[i].X = x
	s.points[i].Y = y
	return true
}

// SetPointFixed sets or clears the fixed flag on a point.
func (s *Sketch) SetPointFixed(id PointID, fixed bool) bool {
	i, ok := s.pointIndex[id]
	if !ok {
		return false
	}
	s.points[i].Fixed = fixed
	return true
}

// SetEntityRadius changes the radius of a circle or arc.
func (s *Sketch) SetEntityRadius(id EntityID, radius float64) bool {
	i, ok := s.entityIndex[id]
	if !ok || s.entities[i].Type == EntityLine {
		return false
	}
	s.entities[i].Radius = radius
	return true
}

// SetConstraintEnabled toggles a constraint.
func (s *Sketch) SetConstraintEnabled(id ConstraintID, enabled bool) bool {
	i, ok := s.constraintIndex[id]
	if !ok {
		return false
	}
	s.constraints[i].Enabled = enabled
	return true
}

// SetConstraintValue updates the target value of a dimensional constraint
// (Distance, DistanceX, DistanceY, Angle). Returns false for other kinds.
func (s *Sketch) SetConstraintValue(id ConstraintID, value float64) bool {
	i, ok := s.constraintIndex[id]
	if !ok {
		return false
	}
	switch d := s.constraints[i].Data.(type) {
	case Distance:
		d.Value = value
		s.constraints[i].Data = d
	case DistanceX:
		d.Value = value
		s.constraints[i].Data = d
	case DistanceY:
		d.Value = value
		s.constraints[i].Data = d
	case Angle:
		d.Value = value
		s.constraints[i].Data = d
	default:
		return false
	}
	return true
}

// RemoveConstraint deletes a constraint.
func (s *Sketch) RemoveConstraint(id ConstraintID) bool {
	i, ok := s.constraintIndex[id]
	if !ok {
		return false
	}
	s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
	s.reindexConstraints()
	return true
}

// RemovePoint deletes a point and every entity and constraint that
// references it, keeping the no-dangling-reference invariant.
func (s *Sketch) RemovePoint(id PointID) bool {
	i, ok := s.pointIndex[id]
	if !ok {
		return false
	}
	s.points = append(s.points[:i], s.points[i+1:]...)
	s.reindexPoints()

	var keepEnts []Entity
	removed := map[EntityID]bool{}
	for _, e := range s.entities {
		refs := false
		for _, pid := range e.PointIDs() {
			if pid == id {
				refs = true
				break
			}
		}
		if refs {
			removed[e.ID] = true
		} else {
			keepEnts = append(keepEnts, e)
		}
	}
	s.entities = keepEnts
	s.reindexEntities()

	var keep []Constraint
	for _, c := range s.constraints {
		if constraintRefersToPoint(c.Data, id) || constraintRefersToEntities(c.Data, removed) {
			continue
		}
		keep = append(keep, c)
	}
	s.constraints = keep
	s.reindexConstraints()
	return true
}

// RemoveEntity deletes an entity, any constraint referencing it, and any
// point left orphaned (referenced by no remaining entity and no remaining
// constraint).
func (s *Sketch) RemoveEntity(id EntityID) bool {
	i, ok := s.entityIndex[id]
	if !ok {
		return false
	}
	s.entities = append(s.entities[:i], s.entities[i+1:]...)
	s.reindexEntities()

	removed := map[EntityID]bool{id: true}
	var keep []Constraint
	for _, c := range s.constraints {
		if constraintRefersToEntities(c.Data, removed) {
			continue
		}
		keep = append(keep, c)
	}
	s.constraints = keep
	s.reindexConstraints()

	s.removeOrphanPoints()
	return true
}

func (s *Sketch) removeOrphanPoints() {
	used := map[PointID]bool{}
	for _, e := range s.entities {
		for _, pid := range e.PointIDs() {
			used[pid] = true
		}
	}
	for _, c := range s.constraints {
		for _, pid := range constraintPointIDs(c.Data) {
			used[pid] = true
		}
	}
	var keep []Point
	for _, p := range s.points {
		if used[p.ID] {
			keep = append(keep, p)
		}
	}
	if len(keep) != len(s.points) {
		s.points = keep
		s.reindexPoints()
	}
}

func (s *Sketch) reindexPoints() {
	s.pointIndex = make(map[PointID]int, len(s.points))
	for i, p := range s.points {
		s.pointIndex[p.ID] = i
	}
}

func (s *Sketch) reindexEntities() {
	s.entityIndex = make(map[EntityID]int, len(s.entities))
	for i, e := range s.entities {
		s.entityIndex[e.ID] = i
	}
}

func (s *Sketch) reindexConstraints() {
	s.constraintIndex = make(map[ConstraintID]int, len(s.constraints))
	for i, c := range s.constraints {
		s.constraintIndex[c.ID] = i
	}
}

// FreePointIDs returns the ids of non-fixed points in insertion order.
// This is the variable packing order the solver relies on: index 2k is the
// x of the k-th free point, index 2k+1 its y.
func (s *Sketch) FreePointIDs() []PointID {
	var ids []PointID
	for _, p := range s.points {
		if !p.Fixed {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// constraintPointIDs returns the point ids a constraint payload references.
func constraintPointIDs(data ConstraintData) []PointID {
	switch d := data.(type) {
	case Coincident:
		return []PointID{d.P1, d.P2}
	case Distance:
		return []PointID{d.P1, d.P2}
	case DistanceX:
		return []PointID{d.P1, d.P2}
	case DistanceY:
		return []PointID{d.P1, d.P2}
	case PointOnLine:
		return []PointID{d.Point}
	case PointOnCircle:
		return []PointID{d.Point}
	case FixedPoint:
		return []PointID{d.Point}
	}
	return nil
}

// constraintEntityIDs returns the entity ids a constraint payload references.
func constraintEntityIDs(data ConstraintData) []EntityID {
	switch d := data.(type) {
	case Angle:
		return []EntityID{d.L1, d.L2}
	case Perpendicular:
		return []EntityID{d.L1, d.L2}
	case Parallel:
		return []EntityID{d.L1, d.L2}
	case Horizontal:
		return []EntityID{d.Line}
	case Vertical:
		return []EntityID{d.Line}
	case Tangent:
		return []EntityID{d.E1, d.E2}
	case Equal:
		return []EntityID{d.E1, d.E2}
	case PointOnLine:
		return []EntityID{d.Line}
	case PointOnCircle:
		return []EntityID{d.Circle}
	}
	return nil
}

func constraintRefersToPoint(data ConstraintData, id PointID) bool {
	for _, pid := range constraintPointIDs(data) {
		if pid == id {
			return true
		}
	}
	return false
}

func constraintRefersToEntities(data ConstraintData, removed map[EntityID]bool) bool {
	for _, eid := range constraintEntityIDs(data) {
		if removed[eid] {
			return true
		}
	}
	return false
}
