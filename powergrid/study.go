package powergrid

import "github.com/carbocation/gwaspower/power"

// DefaultStrata are the analysis strata of the study: the full cohort, each
// sex, and each continental ancestry group.
var DefaultStrata = []Stratum{
	{Name: "all", SampleSize: 1002},
	{Name: "female", SampleSize: 527},
	{Name: "male", SampleSize: 475},
	{Name: "EUR", SampleSize: 604},
	{Name: "AFR", SampleSize: 238},
	{Name: "EAS", SampleSize: 97},
	{Name: "AMR", SampleSize: 63},
}

var DefaultThresholds = []Threshold{
	{Label: "genome-wide", Alpha: 5e-8},
	{Label: "suggestive", Alpha: 1e-5},
}

const DefaultTargetPower = power.DefaultTargetPower
