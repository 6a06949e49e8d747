package power

import (
	"fmt"
	"math"
)

const (
	// DefaultTargetPower is the power a study is required to reach.
	DefaultTargetPower = 0.80

	// DefaultLower and DefaultUpper bracket the r2 search.
	DefaultLower = 1e-10
	DefaultUpper = 0.999999

	// DefaultTolerance is the bracket width at which the search stops.
	DefaultTolerance = 1e-12

	// Halving a bracket of width < 1 reaches any representable tolerance well
	// before this many steps.
	maxBisections = 200
)

// Solver finds the smallest r2 at which a study reaches TargetPower. The
// search is restricted to [Lower, Upper] and stops once the bracket around the
// root is no wider than Tolerance.
type Solver struct {
	TargetPower float64
	Lower       float64
	Upper       float64
	Tolerance   float64
}

// DefaultSolver searches for 80% power over the default bracket and
// tolerance.
func DefaultSolver() Solver {
	return Solver{
		TargetPower: DefaultTargetPower,
		Lower:       DefaultLower,
		Upper:       DefaultUpper,
		Tolerance:   DefaultTolerance,
	}
}

// RequiredR2 uses the default bracket and tolerance to find the r2 needed to
// reach targetPower with N samples at alpha.
func RequiredR2(N, alpha, targetPower float64) (float64, error) {
	s := DefaultSolver()
	s.TargetPower = targetPower

	return s.RequiredR2(N, alpha)
}

// RequiredR2 returns the minimum r2 at which Power(N, alpha, r2) equals the
// target power. Power increases monotonically with r2, so the root is unique.
// If the target is already exceeded at the lower bound, the lower bound itself
// is returned. If it is not reached even at the upper bound, the error wraps
// ErrUnachievable.
func (s Solver) RequiredR2(N, alpha float64) (float64, error) {
	if err := s.validate(); err != nil {
		return math.NaN(), err
	}

	// Power approaches but never attains 1 for finite r2.
	if s.TargetPower >= 1 {
		return math.NaN(), fmt.Errorf("RequiredR2: power %v with N=%v at alpha=%v: %w", s.TargetPower, N, alpha, ErrUnachievable)
	}

	g := func(r2 float64) (float64, error) {
		p, err := Power(N, alpha, r2)
		if err != nil {
			return math.NaN(), err
		}

		return p - s.TargetPower, nil
	}

	gLower, err := g(s.Lower)
	if err != nil {
		return math.NaN(), fmt.Errorf("RequiredR2: %w", err)
	}
	if gLower > 0 {
		return s.Lower, nil
	}

	gUpper, err := g(s.Upper)
	if err != nil {
		return math.NaN(), fmt.Errorf("RequiredR2: %w", err)
	}
	if gUpper < 0 {
		return math.NaN(), fmt.Errorf("RequiredR2: power %v with N=%v at alpha=%v needs r2 above %v: %w", s.TargetPower, N, alpha, s.Upper, ErrUnachievable)
	}

	r2, err := bisect(g, s.Lower, s.Upper, s.Tolerance)
	if err != nil {
		return math.NaN(), fmt.Errorf("RequiredR2: %w", err)
	}

	return r2, nil
}

func (s Solver) validate() error {
	if math.IsNaN(s.TargetPower) {
		return fmt.Errorf("RequiredR2: target power is NaN: %w", ErrInvalidInput)
	}

	if !inOpenUnitInterval(s.Lower) || !inOpenUnitInterval(s.Upper) || s.Lower >= s.Upper {
		return fmt.Errorf("RequiredR2: bracket [%v, %v] must be ordered and lie within (0,1): %w", s.Lower, s.Upper, ErrInvalidInput)
	}

	if !(s.Tolerance > 0) {
		return fmt.Errorf("RequiredR2: tolerance %v must be positive: %w", s.Tolerance, ErrInvalidInput)
	}

	return nil
}

// bisect finds the root of an increasing function f that changes sign on
// [lo, hi], returning the midpoint of the final bracket.
func bisect(f func(float64) (float64, error), lo, hi, tol float64) (float64, error) {
	for i := 0; i < maxBisections && hi-lo > tol; i++ {
		mid := lo + (hi-lo)/2

		fMid, err := f(mid)
		if err != nil {
			return math.NaN(), err
		}

		switch {
		case fMid == 0:
			return mid, nil
		case fMid < 0:
			lo = mid
		default:
			hi = mid
		}
	}

	return lo + (hi-lo)/2, nil
}
