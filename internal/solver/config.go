package solver

// Config holds the Levenberg-Marquardt tuning parameters.
type Config struct {
	// MaxIterations bounds the outer LM loop.
	MaxIterations int
	// Tolerance is the residual L2 norm below which the sketch counts as
	// solved.
	Tolerance float64
	// LambdaInitial is the starting damping parameter.
	LambdaInitial float64
	// LambdaFactor scales lambda up after rejected steps and down after
	// accepted ones.
	LambdaFactor float64
	// Epsilon is the finite-difference step for the Jacobian. Too large
	// biases the derivative, too small loses precision to cancellation.
	Epsilon float64
	// MaxDampingRetries bounds the inner solve-and-retry loop per
	// iteration.
	MaxDampingRetries int
}

// DefaultConfig returns the standard solver parameters.
func DefaultConfig() Config {
	return Config{
		MaxIterations:     100,
		Tolerance:         1e-6,
		LambdaInitial:     0.01,
		LambdaFactor:      10.0,
		Epsilon:           1e-8,
		MaxDampingRetries: 10,
	}
}

// WithMaxIterations returns a copy with the iteration budget replaced.
func (c Config) WithMaxIterations(n int) Config {
	c.MaxIterations = n
	return c
}

// WithTolerance returns a copy with the convergence tolerance replaced.
func (c Config) WithTolerance(tol float64) Config {
	c.Tolerance = tol
	return c
}

// WithEpsilon returns a copy with the finite-difference step replaced.
func (c Config) WithEpsilon(eps float64) Config {
	c.Epsilon = eps
	return c
}

// WithLambda returns a copy with the damping schedule replaced.
func (c Config) WithLambda(initial, factor float64) Config {
	c.LambdaInitial = initial
	c.LambdaFactor = factor
	return c
}
