package powergrid

import (
	"errors"
	"math"
	"testing"

	"github.com/carbocation/gwaspower/power"
)

func TestR2Range(t *testing.T) {
	r := R2Range(0.001, 0.5, 5)
	if len(r) != 5 || r[0] != 0.001 || r[4] != 0.5 {
		t.Fatalf("unexpected range %v", r)
	}
	for i := 1; i < len(r); i++ {
		if r[i] <= r[i-1] {
			t.Errorf("range is not increasing: %v", r)
		}
	}

	if r := R2Range(0.2, 0.5, 1); len(r) != 1 || r[0] != 0.2 {
		t.Errorf("unexpected single-point range %v", r)
	}
}

func TestPowerCurves(t *testing.T) {
	r2s := R2Range(0.001, 0.6, 100)

	curves, err := PowerCurves(DefaultStrata, DefaultThresholds, r2s)
	if err != nil {
		t.Fatal(err)
	}
	if len(curves) != 14 {
		t.Fatalf("expected 14 curves, got %d", len(curves))
	}

	rows, err := Evaluate(DefaultStrata, DefaultThresholds, power.DefaultSolver())
	if err != nil {
		t.Fatal(err)
	}

	for i, c := range curves {
		if c.Stratum != rows[i].Stratum || c.Threshold != rows[i].Threshold {
			t.Errorf("curve %d is %s/%s, row is %s/%s", i, c.Stratum, c.Threshold, rows[i].Stratum, rows[i].Threshold)
		}

		for j := range c.Power {
			if j > 0 && c.Power[j] < c.Power[j-1] {
				t.Errorf("%s/%s: power is not monotonic at r2=%v", c.Stratum, c.Threshold, c.R2[j])
			}

			// Below the solved r2 the target is not met; above it, it is.
			if c.R2[j] < rows[i].RequiredR2 && c.Power[j] > rows[i].TargetPower+1e-9 {
				t.Errorf("%s/%s: power %v exceeds the target below the required r2", c.Stratum, c.Threshold, c.Power[j])
			}
			if c.R2[j] > rows[i].RequiredR2 && c.Power[j] < rows[i].TargetPower-1e-9 {
				t.Errorf("%s/%s: power %v misses the target above the required r2", c.Stratum, c.Threshold, c.Power[j])
			}

			if math.IsNaN(c.Power[j]) {
				t.Fatalf("%s/%s: NaN power", c.Stratum, c.Threshold)
			}
		}
	}
}

func TestPowerCurvesInvalid(t *testing.T) {
	_, err := PowerCurves(DefaultStrata, DefaultThresholds, []float64{0.1, 1.0})
	if !errors.Is(err, power.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRowCurves(t *testing.T) {
	rows := []Row{
		{Stratum: "small", N: 150, Threshold: "nominal", Alpha: 0.05},
		{Stratum: "large", N: 20000, Threshold: "genome-wide", Alpha: 5e-8},
	}
	r2s := R2Range(0.001, 0.2, 20)

	curves, err := RowCurves(rows, r2s)
	if err != nil {
		t.Fatal(err)
	}
	if len(curves) != len(rows) {
		t.Fatalf("expected %d curves, got %d", len(rows), len(curves))
	}

	for i, c := range curves {
		if c.Stratum != rows[i].Stratum || c.Threshold != rows[i].Threshold {
			t.Errorf("curve %d is %s/%s, row is %s/%s", i, c.Stratum, c.Threshold, rows[i].Stratum, rows[i].Threshold)
		}

		for j, r2 := range r2s {
			expected, err := power.Power(float64(rows[i].N), rows[i].Alpha, r2)
			if err != nil {
				t.Fatal(err)
			}
			if c.Power[j] != expected {
				t.Errorf("%s/%s: power %v at r2=%v, expected %v", c.Stratum, c.Threshold, c.Power[j], r2, expected)
			}
		}
	}

	if _, err := RowCurves([]Row{{Stratum: "empty", N: 0, Alpha: 0.05}}, r2s); !errors.Is(err, power.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for N=0, got %v", err)
	}
}
