// Package powertable turns evaluated power grids into the study's summary
// table: rounded for reading, in a fixed column order, and exported as a
// delimited file and as a console rendering.
package powertable

import (
	"fmt"
	"reflect"

	"github.com/carbocation/gwaspower/powergrid"
	"github.com/montanaflynn/stats"
)

// FormattedRow is one output line. The tags give the canonical column order
// and names; beta columns follow powergrid.MAFs.
type FormattedRow struct {
	Stratum     string  `csv:"stratum"`
	N           int     `csv:"N"`
	Threshold   string  `csv:"threshold"`
	Alpha       float64 `csv:"alpha"`
	PowerTarget float64 `csv:"power_target"`
	R2Required  float64 `csv:"r2_required"`
	R2Percent   float64 `csv:"r2_percent"`
	BetaMAF005  float64 `csv:"beta_MAF_0.05"`
	BetaMAF010  float64 `csv:"beta_MAF_0.1"`
	BetaMAF020  float64 `csv:"beta_MAF_0.2"`
	BetaMAF030  float64 `csv:"beta_MAF_0.3"`
	BetaMAF050  float64 `csv:"beta_MAF_0.5"`
	PowerCheck  float64 `csv:"power_check"`
}

// Decimal places shown for each rounded column
const (
	R2Places         = 4
	R2PercentPlaces  = 2
	BetaPlaces       = 3
	PowerCheckPlaces = 3
)

// Header lists the column names in output order, as given by the csv tags
// of FormattedRow.
func Header() []string {
	typ := reflect.TypeOf(FormattedRow{})

	out := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		out = append(out, typ.Field(i).Tag.Get("csv"))
	}

	return out
}

// Format rounds each row for display. The r2 percentage is derived from the
// unrounded r2, not from the rounded r2 column. Alpha and the power target
// are passed through unchanged.
func Format(rows []powergrid.Row) ([]FormattedRow, error) {
	out := make([]FormattedRow, 0, len(rows))

	for _, row := range rows {
		f, err := formatRow(row)
		if err != nil {
			return nil, fmt.Errorf("Format: %s/%s: %w", row.Stratum, row.Threshold, err)
		}

		out = append(out, f)
	}

	return out, nil
}

func formatRow(row powergrid.Row) (FormattedRow, error) {
	var err error

	out := FormattedRow{
		Stratum:     row.Stratum,
		N:           row.N,
		Threshold:   row.Threshold,
		Alpha:       row.Alpha,
		PowerTarget: row.TargetPower,
	}

	if out.R2Required, err = stats.Round(row.RequiredR2, R2Places); err != nil {
		return out, err
	}

	if out.R2Percent, err = stats.Round(100*row.RequiredR2, R2PercentPlaces); err != nil {
		return out, err
	}

	if out.PowerCheck, err = stats.Round(row.PowerCheck, PowerCheckPlaces); err != nil {
		return out, err
	}

	betas := []*float64{
		&out.BetaMAF005,
		&out.BetaMAF010,
		&out.BetaMAF020,
		&out.BetaMAF030,
		&out.BetaMAF050,
	}
	for i, beta := range row.Betas {
		if *betas[i], err = stats.Round(beta, BetaPlaces); err != nil {
			return out, err
		}
	}

	return out, nil
}
