package sketch

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the entity type as its lowercase name.
func (t EntityType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes the lowercase entity type name.
func (t *EntityType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "line":
		*t = EntityLine
	case "circle":
		*t = EntityCircle
	case "arc":
		*t = EntityArc
	default:
		return fmt.Errorf("unknown entity type %q", name)
	}
	return nil
}

// constraintJSON is the flat wire form of a constraint. Which fields are
// meaningful depends on the type discriminator.
type constraintJSON struct {
	ID      ConstraintID   `json:"id"`
	Type    ConstraintKind `json:"type"`
	Enabled bool           `json:"enabled"`
	P1      PointID        `json:"p1,omitempty"`
	P2      PointID        `json:"p2,omitempty"`
	E1      EntityID       `json:"e1,omitempty"`
	E2      EntityID       `json:"e2,omitempty"`
	Point   PointID        `json:"point,omitempty"`
	Target  ConstraintID   `json:"target,omitempty"`
	Value   float64        `json:"value,omitempty"`
}

func encodeConstraint(c Constraint) constraintJSON {
	w := constraintJSON{ID: c.ID, Type: c.Data.Kind(), Enabled: c.Enabled}
	switch d := c.Data.(type) {
	case Coincident:
		w.P1, w.P2 = d.P1, d.P2
	case Distance:
		w.P1, w.P2, w.Value = d.P1, d.P2, d.Value
	case DistanceX:
		w.P1, w.P2, w.Value = d.P1, d.P2, d.Value
	case DistanceY:
		w.P1, w.P2, w.Value = d.P1, d.P2, d.Value
	case Angle:
		w.E1, w.E2, w.Value = d.L1, d.L2, d.Value
	case Perpendicular:
		w.E1, w.E2 = d.L1, d.L2
	case Parallel:
		w.E1, w.E2 = d.L1, d.L2
	case Horizontal:
		w.E1 = d.Line
	case Vertical:
		w.E1 = d.Line
	case Tangent:
		w.E1, w.E2 = d.E1, d.E2
	case Equal:
		w.E1, w.E2 = d.E1, d.E2
	case PointOnLine:
		w.Point, w.E1 = d.Point, d.Line
	case PointOnCircle:
		w.Point, w.E1 = d.Point, d.Circle
	case FixedPoint:
		w.Point = d.Point
	case FixedDistance:
		w.Target = d.Constraint
	case FixedAngle:
		w.Target = d.Constraint
	}
	return w
}

func decodeConstraint(w constraintJSON) (Constraint, error) {
	var data ConstraintData
	switch w.Type {
	case KindCoincident:
		data = Coincident{P1: w.P1, P2: w.P2}
	case KindDistance:
		data = Distance{P1: w.P1, P2: w.P2, Value: w.Value}
	case KindDistanceX:
		data = DistanceX{P1: w.P1, P2: w.P2, Value: w.Value}
	case KindDistanceY:
		data = DistanceY{P1: w.P1, P2: w.P2, Value: w.Value}
	case KindAngle:
		data = Angle{L1: w.E1, L2: w.E2, Value: w.Value}
	case KindPerpendicular:
		data = Perpendicular{L1: w.E1, L2: w.E2}
	case KindParallel:
		data = Parallel{L1: w.E1, L2: w.E2}
	case KindHorizontal:
		data = Horizontal{Line: w.E1}
	case KindVertical:
		data = Vertical{Line: w.E1}
	case KindTangent:
		data = Tangent{E1: w.E1, E2: w.E2}
	case KindEqual:
		data = Equal{E1: w.E1, E2: w.E2}
	case KindPointOnLine:
		data = PointOnLine{Point: w.Point, Line: w.E1}
	case KindPointOnCircle:
		data = PointOnCircle{Point: w.Point, Circle: w.E1}
	case KindFixedPoint:
		data = FixedPoint{Point: w.Point}
	case KindFixedDistance:
		data = FixedDistance{Constraint: w.Target}
	case KindFixedAngle:
		data = FixedAngle{Constraint: w.Target}
	default:
		return Constraint{}, fmt.Errorf("unknown constraint type %q", w.Type)
	}
	return Constraint{ID: w.ID, Enabled: w.Enabled, Data: data}, nil
}

// sketchJSON is the wire form of a whole sketch. The next-id counters are
// persisted so ids are never reused across a save/load cycle, even when
// the highest-numbered item was deleted before saving.
type sketchJSON struct {
	Points           []Point          `json:"points"`
	Entities         []Entity         `json:"entities"`
	Constraints      []constraintJSON `json:"constraints"`
	NextPointID      PointID          `json:"next_point_id"`
	NextEntityID     EntityID         `json:"next_entity_id"`
	NextConstraintID ConstraintID     `json:"next_constraint_id"`
}

// MarshalJSON encodes the sketch.
func (s *Sketch) MarshalJSON() ([]byte, error) {
	w := sketchJSON{
		Points:           s.points,
		Entities:         s.entities,
		NextPointID:      s.nextPointID,
		NextEntityID:     s.nextEntityID,
		NextConstraintID: s.nextConstraintID,
	}
	for _, c := range s.constraints {
		w.Constraints = append(w.Constraints, encodeConstraint(c))
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a sketch, rebuilding the id indices.
func (s *Sketch) UnmarshalJSON(data []byte) error {
	var w sketchJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*s = *New()
	s.points = w.Points
	s.entities = w.Entities
	for _, cw := range w.Constraints {
		c, err := decodeConstraint(cw)
		if err != nil {
			return err
		}
		s.constraints = append(s.constraints, c)
	}
	s.reindexPoints()
	s.reindexEntities()
	s.reindexConstraints()

	s.nextPointID = w.NextPointID
	s.nextEntityID = w.NextEntityID
	s.nextConstraintID = w.NextConstraintID
	// Older files may lack counters; derive them from the highest id seen.
	if s.nextPointID < 1 {
		s.nextPointID = 1
	}
	if s.nextEntityID < 1 {
		s.nextEntityID = 1
	}
	if s.nextConstraintID < 1 {
		s.nextConstraintID = 1
	}
	for _, p := range s.points {
		if p.ID >= s.nextPointID {
			s.nextPointID = p.ID + 1
		}
	}
	for _, e := range s.entities {
		if e.ID >= s.nextEntityID {
			s.nextEntityID = e.ID + 1
		}
	}
	for _, c := range s.constraints {
		if c.ID >= s.nextConstraintID {
			s.nextConstraintID = c.ID + 1
		}
	}
	return nil
}
