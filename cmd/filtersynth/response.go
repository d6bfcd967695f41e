package main

import (
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-analog/analog/filter"
	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/digital/biquad"
)

func responseCmd(rf *rootFlags) *cobra.Command {
	var (
		only       string
		points     int
		sampleRate float64
	)

	c := &cobra.Command{
		Use:   "response <file.yaml>",
		Short: "Print magnitude, phase and group delay on a log-spaced axis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := synthesize(args[0], only, rf.logger(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, f := range filters {
				printf(out, "%s\n", f.Name())

				if f.Err() != nil {
					printf(out, "  error: %v\n\n", f.Err())
					continue
				}

				var chain *biquad.Chain

				if sampleRate > 0 {
					if err := f.ComputeStages(); err != nil {
						return err
					}

					if chain, err = f.Cascade(sampleRate); err != nil {
						return err
					}
				}

				if err := writeResponse(out, f, max(points, 2), chain, sampleRate); err != nil {
					return err
				}
			}

			return nil
		},
	}

	c.Flags().StringVarP(&only, "filter", "f", "", "only evaluate the named filter")
	c.Flags().IntVarP(&points, "points", "n", 41, "number of frequencies")
	c.Flags().Float64Var(&sampleRate, "sample-rate", 0, "add the biquad realization at this rate (Hz) as a column")

	return c
}

func writeResponse(out io.Writer, f *filter.Filter, points int, chain *biquad.Chain, fs float64) error {
	wmin, wmax, err := filter.WMinMax(f.Spec())
	if err != nil {
		return err
	}

	hz := floats.LogSpan(make([]float64, points), wmin/(2*math.Pi), wmax/(2*math.Pi))

	z := f.ZPK()
	mag, phase := z.Bode(hz)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	printf(tw, "f [Hz]\t|H| [dB]\tphase [deg]\tdelay [s]\t")

	if chain != nil {
		printf(tw, "digital [dB]\t")
	}

	printf(tw, "\n")

	for i, w := range hz {
		printf(tw, "%.5g\t%.3f\t%.2f\t%.4g\t", w, mag[i], phase[i]*180/math.Pi, delaySeconds(z, w))

		// Frequencies past Nyquist have no digital counterpart.
		switch {
		case chain == nil:
		case w < fs/2:
			printf(tw, "%.3f\t", chain.MagnitudeDB(w, fs))
		default:
			printf(tw, "-\t")
		}

		printf(tw, "\n")
	}

	printf(tw, "\t\t\t\t\n")

	return tw.Flush()
}

// delaySeconds converts the analytic group delay of Hz-scaled roots into
// seconds.
func delaySeconds(z zpk.ZPK, hz float64) float64 {
	return z.GroupDelay(hz) / (2 * math.Pi)
}
