package sketch

// ConstraintKind identifies the kind of a constraint. The string form is
// the discriminator used in sketch files.
type ConstraintKind string

const (
	KindCoincident    ConstraintKind = "coincident"
	KindDistance      ConstraintKind = "distance"
	KindDistanceX     ConstraintKind = "distance_x"
	KindDistanceY     ConstraintKind = "distance_y"
	KindAngle         ConstraintKind = "angle"
	KindPerpendicular ConstraintKind = "perpendicular"
	KindParallel      ConstraintKind = "parallel"
	KindHorizontal    ConstraintKind = "horizontal"
	KindVertical      ConstraintKind = "vertical"
	KindTangent       ConstraintKind = "tangent"
	KindEqual         ConstraintKind = "equal"
	KindPointOnLine   ConstraintKind = "point_on_line"
	KindPointOnCircle ConstraintKind = "point_on_circle"
	KindFixedPoint    ConstraintKind = "fixed_point"
	KindFixedDistance ConstraintKind = "fixed_distance"
	KindFixedAngle    ConstraintKind = "fixed_angle"
)

// ConstraintData is the closed set of constraint payloads. Each payload
// reports its kind and how many residual equations it contributes to the
// solver. The residual evaluator type-switches over every implementation;
// adding a kind means adding a payload struct here and a case arm there.
type ConstraintData interface {
	Kind() ConstraintKind
	// Equations returns the number of residual equations the constraint
	// contributes. This count feeds the DOF formula whether or not the
	// evaluator implements the residual (Tangent and FixedPoint are
	// counted but currently unsupported in the evaluator).
	Equations() int
}

// Constraint pairs a payload with identity and an enabled flag. Disabled
// constraints contribute neither equations nor residuals.
type Constraint struct {
	ID      ConstraintID
	Enabled bool
	Data    ConstraintData
}

// Coincident pins two points together (2 equations: dx, dy).
type Coincident struct {
	P1, P2 PointID
}

// Distance holds two points at a Euclidean distance (1 equation).
type Distance struct {
	P1, P2 PointID
	Value  float64
}

// DistanceX holds the signed x separation of two points (1 equation).
type DistanceX struct {
	P1, P2 PointID
	Value  float64
}

// DistanceY holds the signed y separation of two points (1 equation).
type DistanceY struct {
	P1, P2 PointID
	Value  float64
}

// Angle holds the signed angle between two line directions, in radians
// (1 equation).
type Angle struct {
	L1, L2 EntityID
	Value  float64
}

// Perpendicular forces two lines perpendicular (1 equation: dot product).
type Perpendicular struct {
	L1, L2 EntityID
}

// Parallel forces two lines parallel (1 equation: cross product).
type Parallel struct {
	L1, L2 EntityID
}

// Horizontal forces a line horizontal (1 equation: dy).
type Horizontal struct {
	Line EntityID
}

// Vertical forces a line vertical (1 equation: dx).
type Vertical struct {
	Line EntityID
}

// Tangent declares tangency between two entities. The residual is not
// implemented; the evaluator skips it, but it still counts one equation
// toward DOF.
type Tangent struct {
	E1, E2 EntityID
}

// Equal forces equal length (two lines) or equal radius (two circles or
// arcs) (1 equation).
type Equal struct {
	E1, E2 EntityID
}

// PointOnLine holds a point on the infinite line through a line entity
// (1 equation: signed perpendicular distance).
type PointOnLine struct {
	Point PointID
	Line  EntityID
}

// PointOnCircle holds a point on a circle (1 equation).
type PointOnCircle struct {
	Point  PointID
	Circle EntityID
}

// FixedPoint declares a point fixed in place. The effective mechanism is
// the Fixed flag on the point itself, which removes it from the variable
// vector; no residual is evaluated, but the declaration counts two
// equations toward DOF.
type FixedPoint struct {
	Point PointID
}

// FixedDistance pins a Distance constraint's parameter. It is a parameter
// pin, not a geometric equation: zero equations.
type FixedDistance struct {
	Constraint ConstraintID
}

// FixedAngle pins an Angle constraint's parameter. Zero equations.
type FixedAngle struct {
	Constraint ConstraintID
}

func (Coincident) Kind() ConstraintKind    { return KindCoincident }
func (Distance) Kind() ConstraintKind      { return KindDistance }
func (DistanceX) Kind() ConstraintKind     { return KindDistanceX }
func (DistanceY) Kind() ConstraintKind     { return KindDistanceY }
func (Angle) Kind() ConstraintKind         { return KindAngle }
func (Perpendicular) Kind() ConstraintKind { return KindPerpendicular }
func (Parallel) Kind() ConstraintKind      { return KindParallel }
func (Horizontal) Kind() ConstraintKind    { return KindHorizontal }
func (Vertical) Kind() ConstraintKind      { return KindVertical }
func (Tangent) Kind() ConstraintKind       { return KindTangent }
func (Equal) Kind() ConstraintKind         { return KindEqual }
func (PointOnLine) Kind() ConstraintKind   { return KindPointOnLine }
func (PointOnCircle) Kind() ConstraintKind { return KindPointOnCircle }
func (FixedPoint) Kind() ConstraintKind    { return KindFixedPoint }
func (FixedDistance) Kind() ConstraintKind { return KindFixedDistance }
func (FixedAngle) Kind() ConstraintKind    { return KindFixedAngle }

func (Coincident) Equations() int    { return 2 }
func (Distance) Equations() int      { return 1 }
func (DistanceX) Equations() int     { return 1 }
func (DistanceY) Equations() int     { return 1 }
func (Angle) Equations() int         { return 1 }
func (Perpendicular) Equations() int { return 1 }
func (Parallel) Equations() int      { return 1 }
func (Horizontal) Equations() int    { return 1 }
func (Vertical) Equations() int      { return 1 }
func (Tangent) Equations() int       { return 1 }
func (Equal) Equations() int         { return 1 }
func (PointOnLine) Equations() int   { return 1 }
func (PointOnCircle) Equations() int { return 1 }
func (FixedPoint) Equations() int    { return 2 }
func (FixedDistance) Equations() int { return 0 }
func (FixedAngle) Equations() int    { return 0 }
