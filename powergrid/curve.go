package powergrid

import (
	"fmt"

	"github.com/carbocation/gwaspower/power"
)

// Curve holds the power of one (stratum, threshold) pair across a range of
// r2 values.
type Curve struct {
	Stratum   string
	Threshold string
	R2        []float64
	Power     []float64
}

// R2Range returns n evenly spaced r2 values from lo to hi inclusive.
func R2Range(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}

	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi

	return out
}

// PowerCurves evaluates the power of every (stratum, threshold) pair at each
// r2, in the same order as Evaluate.
func PowerCurves(strata []Stratum, thresholds []Threshold, r2s []float64) ([]Curve, error) {
	out := make([]Curve, 0, len(strata)*len(thresholds))

	for _, stratum := range strata {
		for _, threshold := range thresholds {
			curve, err := powerCurve(stratum.Name, stratum.SampleSize, threshold.Label, threshold.Alpha, r2s)
			if err != nil {
				return nil, fmt.Errorf("PowerCurves: %w", err)
			}

			out = append(out, curve)
		}
	}

	return out, nil
}

// RowCurves evaluates one curve per evaluated row, using the sample size and
// alpha recorded in that row.
func RowCurves(rows []Row, r2s []float64) ([]Curve, error) {
	out := make([]Curve, 0, len(rows))

	for _, row := range rows {
		curve, err := powerCurve(row.Stratum, row.N, row.Threshold, row.Alpha, r2s)
		if err != nil {
			return nil, fmt.Errorf("RowCurves: %w", err)
		}

		out = append(out, curve)
	}

	return out, nil
}

func powerCurve(stratum string, N int, threshold string, alpha float64, r2s []float64) (Curve, error) {
	curve := Curve{
		Stratum:   stratum,
		Threshold: threshold,
		R2:        r2s,
		Power:     make([]float64, len(r2s)),
	}

	for i, r2 := range r2s {
		p, err := power.Power(float64(N), alpha, r2)
		if err != nil {
			return curve, fmt.Errorf("stratum %q, threshold %q: %w", stratum, threshold, err)
		}
		curve.Power[i] = p
	}

	return curve, nil
}
