package main

import (
	"bytes"
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwaspower"
	"github.com/carbocation/gwaspower/powergrid"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	plotPoints = 300
	plotMinR2  = 0.001
)

// plotPowerCurves draws power against r2 for every evaluated row, with the
// required r2 of each row marked on its curve and a reference line at the
// target power.
func plotPowerCurves(ctx context.Context, client *storage.Client, plotPath string, rows []powergrid.Row) error {
	series, err := powerCurveSeries(rows)
	if err != nil {
		return err
	}

	graph := chart.Chart{
		Width:  1024,
		Height: 640,
		XAxis: chart.XAxis{
			Name: "r2",
		},
		YAxis: chart.YAxis{
			Name:  "power",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := gwaspower.CreateMaybeGoogleStorage(ctx, plotPath, client)
	if err != nil {
		return err
	}

	if _, err := buffer.WriteTo(w); err != nil {
		cancel()
		w.Close()
		return err
	}

	return w.Close()
}

// powerCurveSeries builds one curve per row, a dashed line at the target
// power, and an annotation at each row's required r2.
func powerCurveSeries(rows []powergrid.Row) ([]chart.Series, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to plot")
	}

	// Extend past the hardest-to-power stratum so that every curve saturates
	maxR2 := 0.0
	for _, row := range rows {
		if row.RequiredR2 > maxR2 {
			maxR2 = row.RequiredR2
		}
	}
	maxR2 *= 1.5
	if maxR2 >= 1 {
		maxR2 = 0.99
	}

	curves, err := powergrid.RowCurves(rows, powergrid.R2Range(plotMinR2, maxR2, plotPoints))
	if err != nil {
		return nil, err
	}

	series := make([]chart.Series, 0, len(curves)+2)
	for _, c := range curves {
		series = append(series, chart.ContinuousSeries{
			Name:    c.Stratum + " " + c.Threshold,
			XValues: c.R2,
			YValues: c.Power,
		})
	}

	target := rows[0].TargetPower
	series = append(series, chart.ContinuousSeries{
		Name:    fmt.Sprintf("power %v", target),
		XValues: []float64{plotMinR2, maxR2},
		YValues: []float64{target, target},
		Style: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	})

	required := chart.AnnotationSeries{Name: "required r2"}
	for _, row := range rows {
		required.Annotations = append(required.Annotations, chart.Value2{
			XValue: row.RequiredR2,
			YValue: row.TargetPower,
			Label:  fmt.Sprintf("%s %s: %.4f", row.Stratum, row.Threshold, row.RequiredR2),
		})
	}
	series = append(series, required)

	return series, nil
}
