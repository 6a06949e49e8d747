// Package power computes the statistical power of a single-variant additive
// association test, the variance explained that a study can detect at a
// given power, and the standardized per-allele effect that corresponds to it.
//
// The test is the 1 degree of freedom chi-square test. Under the alternative,
// its statistic is noncentral chi-square with noncentrality N*r2/(1-r2).
package power

import (
	"fmt"
	"math"

	"github.com/BenLubar/memoize"
	"gonum.org/v1/gonum/stat/distuv"
)

var memoizedCriticalValue = memoize.Memoize(criticalValue)

// CriticalValue returns the (1-alpha) quantile of the central chi-square
// distribution with 1 degree of freedom, i.e., the smallest statistic that
// is significant at alpha. CriticalValue is safe to call from concurrent
// goroutines.
func CriticalValue(alpha float64) (float64, error) {
	if !inOpenUnitInterval(alpha) {
		return math.NaN(), fmt.Errorf("CriticalValue: alpha %v is outside of (0,1): %w", alpha, ErrInvalidInput)
	}

	return memoizedCriticalValue.(func(float64) float64)(alpha), nil
}

func criticalValue(alpha float64) float64 {
	return distuv.ChiSquared{K: 1}.Quantile(1 - alpha)
}

// NoncentralityParameter yields lambda = N*r2/(1-r2).
func NoncentralityParameter(N, r2 float64) float64 {
	return N * r2 / (1 - r2)
}

// Power returns the probability that a variant explaining r2 of the
// phenotypic variance reaches significance at alpha in a sample of N people.
func Power(N, alpha, r2 float64) (float64, error) {
	if !(N > 0) || math.IsInf(N, 1) {
		return math.NaN(), fmt.Errorf("Power: sample size %v must be positive: %w", N, ErrInvalidInput)
	}

	if !inOpenUnitInterval(r2) {
		return math.NaN(), fmt.Errorf("Power: r2 %v is outside of (0,1): %w", r2, ErrInvalidInput)
	}

	c, err := CriticalValue(alpha)
	if err != nil {
		return math.NaN(), fmt.Errorf("Power: %w", err)
	}

	dist := NoncentralChiSquared{K: 1, Lambda: NoncentralityParameter(N, r2)}

	return dist.Survival(c), nil
}
