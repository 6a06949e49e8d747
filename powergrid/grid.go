// Package powergrid evaluates the detectable effect sizes of a study across
// its sample-size strata, significance thresholds and minor allele
// frequencies.
package powergrid

import (
	"fmt"
	"log"
	"math"

	"github.com/carbocation/gwaspower/power"
)

type Stratum struct {
	Name       string
	SampleSize int
}

type Threshold struct {
	Label string
	Alpha float64
}

// MAFs are the minor allele frequencies at which effect sizes are reported,
// in ascending order.
var MAFs = [...]float64{0.05, 0.10, 0.20, 0.30, 0.50}

// Row is the result for one (stratum, threshold) pair. Betas[i] is the
// standardized effect at MAFs[i].
type Row struct {
	Stratum     string
	N           int
	Threshold   string
	Alpha       float64
	TargetPower float64
	RequiredR2  float64
	Betas       [len(MAFs)]float64
	PowerCheck  float64
}

// Consistent reports whether the power recomputed at the solved r2 matches
// the target within tol.
func (r Row) Consistent(tol float64) bool {
	return math.Abs(r.PowerCheck-r.TargetPower) <= tol
}

// Evaluate solves for the required r2 of every (stratum, threshold) pair,
// stratum-major. Any failure aborts the whole grid.
func Evaluate(strata []Stratum, thresholds []Threshold, solver power.Solver) ([]Row, error) {
	out := make([]Row, 0, len(strata)*len(thresholds))

	for _, stratum := range strata {
		if stratum.SampleSize <= 0 {
			return nil, fmt.Errorf("Evaluate: stratum %q has sample size %d: %w", stratum.Name, stratum.SampleSize, power.ErrInvalidInput)
		}

		for _, threshold := range thresholds {
			row, err := evaluatePair(stratum, threshold, solver)
			if err != nil {
				return nil, fmt.Errorf("Evaluate: stratum %q (N=%d), threshold %q (alpha=%v): %w", stratum.Name, stratum.SampleSize, threshold.Label, threshold.Alpha, err)
			}

			if !row.Consistent(checkTolerance) {
				log.Printf("Warning: %s/%s: power at the solved r2 is %v, not %v\n", row.Stratum, row.Threshold, row.PowerCheck, row.TargetPower)
			}

			log.Printf("%s (N=%d) at %s (alpha=%g): r2=%.6f\n", row.Stratum, row.N, row.Threshold, row.Alpha, row.RequiredR2)

			out = append(out, row)
		}
	}

	return out, nil
}

// checkTolerance is how far the recomputed power may drift from the target
// before it is reported.
const checkTolerance = 1e-6

func evaluatePair(stratum Stratum, threshold Threshold, solver power.Solver) (Row, error) {
	N := float64(stratum.SampleSize)

	r2, err := solver.RequiredR2(N, threshold.Alpha)
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Stratum:     stratum.Name,
		N:           stratum.SampleSize,
		Threshold:   threshold.Label,
		Alpha:       threshold.Alpha,
		TargetPower: solver.TargetPower,
		RequiredR2:  r2,
	}

	for i, maf := range MAFs {
		if row.Betas[i], err = power.BetaFromR2(r2, maf); err != nil {
			return Row{}, err
		}
	}

	if row.PowerCheck, err = power.Power(N, threshold.Alpha, r2); err != nil {
		return Row{}, err
	}

	return row, nil
}
