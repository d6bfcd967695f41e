package main

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-analog/digital/biquad"
)

func designCmd(rf *rootFlags) *cobra.Command {
	var (
		only       string
		stages     bool
		sampleRate float64
		points     int
		impulse    int
	)

	c := &cobra.Command{
		Use:   "design <file.yaml>",
		Short: "Synthesize filters and print their summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := synthesize(args[0], only, rf.logger(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0

			for _, f := range filters {
				if err := f.Summary(out); err != nil {
					return err
				}

				if f.Err() != nil {
					failed++
					printf(out, "\n")

					continue
				}

				if stages || sampleRate > 0 {
					if err := f.ComputeStages(); err != nil {
						return err
					}

					tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
					printf(tw, "\nstage\torder\tQ\tnum\tden\n")

					for _, s := range f.Stages() {
						printf(tw, "%s\t%d\t%.4g\t%.6g\t%.6g\n", s.Name, s.Order(), s.Q(), s.Num, s.Den)
					}

					if err := tw.Flush(); err != nil {
						return err
					}
				}

				if sampleRate > 0 {
					chain, err := f.Cascade(sampleRate)
					if err != nil {
						return err
					}

					printf(out, "\nbiquads at %g Hz (gain %.6g):\n", sampleRate, chain.Gain())

					for i := range chain.NumSections() {
						s := chain.Section(i)
						printf(out, "  b = [%.9g %.9g %.9g]  a = [1 %.9g %.9g]\n", s.B0, s.B1, s.B2, s.A1, s.A2)
					}

					if err := writeDigital(out, chain, sampleRate, points, impulse); err != nil {
						return err
					}
				}

				printf(out, "\n")
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d filters failed", failed, len(filters))
			}

			return nil
		},
	}

	c.Flags().StringVarP(&only, "filter", "f", "", "only design the named filter")
	c.Flags().BoolVar(&stages, "stages", false, "partition into second-order stages")
	c.Flags().Float64Var(&sampleRate, "sample-rate", 0, "also realize the stages as biquads at this rate (Hz)")
	c.Flags().IntVar(&points, "points", 1024, "FFT points for the digital response summary")
	c.Flags().IntVar(&impulse, "impulse", 0, "print this many impulse and step response samples")

	return c
}

// writeDigital reports stability, pole radius and the FFT-sampled response
// of the realized chain.
func writeDigital(out io.Writer, chain *biquad.Chain, fs float64, points, impulse int) error {
	w, h, err := chain.FrequencyResponse(points)
	if err != nil {
		return err
	}

	peak, peakHz := math.Inf(-1), 0.0

	for k := range h {
		if db := 20 * math.Log10(cmplx.Abs(h[k])); db > peak {
			peak, peakHz = db, w[k]*fs/(2*math.Pi)
		}
	}

	printf(out, "stable: %t (max pole radius %.6f)\n", chain.Stable(), chain.MaxPoleRadius())
	printf(out, "|H| at DC: %.3f dB, peak %.3f dB at %.5g Hz (%d points)\n",
		20*math.Log10(cmplx.Abs(h[0])), peak, peakHz, len(h))

	if impulse > 0 {
		printf(out, "impulse: %.6g\n", chain.ImpulseResponse(impulse))
		printf(out, "step:    %.6g\n", chain.StepResponse(impulse))
	}

	return nil
}
