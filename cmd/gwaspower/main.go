// gwaspower reports, for each analysis stratum and significance threshold of
// the study, the smallest variance explained (and the matching per-allele
// effect at several minor allele frequencies) that an additive 1 df test
// detects with 80% power.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwaspower"
	"github.com/carbocation/gwaspower/compileinfo"
	"github.com/carbocation/gwaspower/power"
	"github.com/carbocation/gwaspower/powergrid"
	"github.com/carbocation/gwaspower/powertable"
	"github.com/carbocation/pfx"
)

func main() {
	var output, plotPath string
	var quiet bool

	flag.StringVar(&output, "output", "gwas_power_table.csv", "Path for the summary table. Files ending in .tsv are tab-delimited, others comma-delimited. May be a gs:// path.")
	flag.StringVar(&plotPath, "plot", "", "(Optional) Path for a PNG of power against r2 for every stratum and threshold. May be a gs:// path.")
	flag.BoolVar(&quiet, "quiet", false, "Do not print the table to stdout.")
	flag.Parse()

	if output == "" {
		fmt.Fprintln(os.Stderr, "gwaspower computes the r2 and standardized effect sizes that each stratum of the study can detect at 80% power.")
		flag.PrintDefaults()
		os.Exit(1)
	}

	compileinfo.PrintToStdErr()

	if err := run(context.Background(), output, plotPath, quiet); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}

func run(ctx context.Context, output, plotPath string, quiet bool) error {
	output, err := gwaspower.ExpandHome(output)
	if err != nil {
		return err
	}

	if plotPath, err = gwaspower.ExpandHome(plotPath); err != nil {
		return err
	}

	var client *storage.Client
	if strings.HasPrefix(output, "gs://") || strings.HasPrefix(plotPath, "gs://") {
		client, err = storage.NewClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	solver := power.DefaultSolver()
	solver.TargetPower = powergrid.DefaultTargetPower

	log.Printf("Build %s: solving for the r2 detectable at power %v across %d strata and %d thresholds\n", compileinfo.Get().Short(), solver.TargetPower, len(powergrid.DefaultStrata), len(powergrid.DefaultThresholds))

	rows, err := powergrid.Evaluate(powergrid.DefaultStrata, powergrid.DefaultThresholds, solver)
	if err != nil {
		return err
	}

	formatted, err := powertable.Format(rows)
	if err != nil {
		return err
	}

	if err := writeTable(ctx, client, output, formatted); err != nil {
		return err
	}
	log.Println("Wrote", len(formatted), "rows to", output)

	if plotPath != "" {
		if err := plotPowerCurves(ctx, client, plotPath, rows); err != nil {
			return err
		}
		log.Println("Wrote power curves to", plotPath)
	}

	if !quiet {
		return powertable.Render(os.Stdout, formatted)
	}

	return nil
}

func writeTable(ctx context.Context, client *storage.Client, output string, formatted []powertable.FormattedRow) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := gwaspower.CreateMaybeGoogleStorage(ctx, output, client)
	if err != nil {
		return err
	}

	if err := powertable.Write(w, formatted, gwaspower.DelimiterForPath(output)); err != nil {
		// Abandon the partial table rather than publishing it
		cancel()
		w.Close()
		return err
	}

	return w.Close()
}
