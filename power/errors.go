package power

import "errors"

var (
	// ErrInvalidInput is returned when a parameter lies outside of its domain,
	// e.g. an r2 or a minor allele frequency outside the open interval (0,1).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnachievable is returned by the solver when the target power cannot
	// be reached anywhere inside the search bracket.
	ErrUnachievable = errors.New("target power is unachievable")
)

func inOpenUnitInterval(x float64) bool {
	return x > 0 && x < 1
}
