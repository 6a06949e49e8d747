package power

import (
	"math"
	"testing"

	"github.com/tokenme/probab/dst"
	"gonum.org/v1/gonum/stat/distuv"
)

// Truth values calculated with scipy.stats.ncx2.cdf(x, df, nc=lambda)
func TestNoncentralCDFConstants(t *testing.T) {
	for _, v := range []struct {
		x, K, Lambda float64
		CDF          float64
	}{
		{5.0, 2.0, 3.0, 0.5940608030781964},
		{10.0, 5.0, 0.1, 0.9190377639698465},
		{3.33, 17.0, 2.7, 4.7614699056624424e-05},
		{77.0, 2.0, 21.7, 0.9999732101247713},
		{77.0, 22.0, 41.7, 0.8236022067253619},
	} {
		got := NoncentralChiSquared{K: v.K, Lambda: v.Lambda}.CDF(v.x)
		if math.Abs(got-v.CDF) > 1e-9 {
			t.Fatalf("\nError with input: %+v\nCDF: %.12f\nExpected: %.12f\nDiff: %.12f\n", v, got, v.CDF, got-v.CDF)
		}
	}
}

func TestOneDFClosedFormMatchesMixture(t *testing.T) {
	for _, lambda := range []float64{0.5, 5, 17.3, 39.6} {
		for _, x := range []float64{0.2, 1, 3.841458820694124, 19.511420964657567, 29.71678548976309} {
			n := NoncentralChiSquared{K: 1, Lambda: lambda}

			closed := n.Survival(x)
			mixture := n.poissonMixture(x, false)

			if math.Abs(closed-mixture) > 1e-10 {
				t.Errorf("lambda=%v x=%v: closed form %.14f, Poisson mixture %.14f", lambda, x, closed, mixture)
			}

			if sum := n.CDF(x) + n.Survival(x); math.Abs(sum-1) > 1e-12 {
				t.Errorf("lambda=%v x=%v: CDF+Survival=%.14f", lambda, x, sum)
			}
		}
	}
}

func TestZeroNoncentralityIsCentral(t *testing.T) {
	for _, K := range []float64{1, 2, 5} {
		central := distuv.ChiSquared{K: K}
		for _, x := range []float64{0.5, 3.84, 12} {
			got := NoncentralChiSquared{K: K, Lambda: 0}.CDF(x)
			if math.Abs(got-central.CDF(x)) > 1e-12 {
				t.Errorf("K=%v x=%v: got %v, central %v", K, x, got, central.CDF(x))
			}
		}
	}

	// Independent implementation of the 1 df central CDF
	for _, x := range []float64{0.5, 3.841458820694124, 10} {
		got := NoncentralChiSquared{K: 1, Lambda: 0}.CDF(x)
		if expected := dst.ChiSquareCDF(1)(x); math.Abs(got-expected) > 1e-6 {
			t.Errorf("x=%v: got %v, probab gives %v", x, got, expected)
		}
	}
}

func TestNoncentralBoundaries(t *testing.T) {
	n := NoncentralChiSquared{K: 1, Lambda: 7}
	if n.CDF(0) != 0 || n.Survival(0) != 1 {
		t.Errorf("expected CDF(0)=0 and Survival(0)=1, got %v and %v", n.CDF(0), n.Survival(0))
	}

	// Huge noncentrality must saturate, not underflow into NaN
	if s := (NoncentralChiSquared{K: 1, Lambda: 1e9}).Survival(29.7); s != 1 {
		t.Errorf("expected survival of 1 at lambda=1e9, got %v", s)
	}
	if s := (NoncentralChiSquared{K: 3, Lambda: 2000}).Survival(29.7); math.Abs(s-1) > 1e-9 {
		t.Errorf("expected survival of ~1 at lambda=2000, got %v", s)
	}

	for _, bad := range []NoncentralChiSquared{{K: 0, Lambda: 1}, {K: 2, Lambda: -0.1}, {K: math.NaN(), Lambda: 1}} {
		if !math.IsNaN(bad.CDF(1)) || !math.IsNaN(bad.Survival(1)) {
			t.Errorf("%+v: expected NaN", bad)
		}
	}
}

func TestNoncentralMonotonicInLambda(t *testing.T) {
	prev := -1.0
	for _, lambda := range []float64{0, 1, 2, 5, 10, 20, 40} {
		s := NoncentralChiSquared{K: 1, Lambda: lambda}.Survival(3.84)
		if s <= prev {
			t.Fatalf("survival at lambda=%v (%v) did not increase from %v", lambda, s, prev)
		}
		prev = s
	}
}
