package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/ckstar"
	"github.com/decibelcooper/ckstar/hist"
)

var (
	plotOutput       string
	plotTitle        string
	multMin, multMax float64
	normLo, normHi   float64
)

var plotCmd = &cobra.Command{
	Use:   "plot [flags] <histogram-file>",
	Short: "Plot the same-event, mixed-event and subtracted mass spectra",
	Long: `Projects the histograms written by fill onto the mass axis for a range of
multiplicity, scales the mixed-event spectrum to the same-event one in a mass
side band and plots both together with their difference.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "out.png", "output file")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "plot title")
	plotCmd.Flags().Float64Var(&multMin, "mult-min", 0, "lower multiplicity bound")
	plotCmd.Flags().Float64Var(&multMax, "mult-max", 200, "upper multiplicity bound")
	plotCmd.Flags().Float64Var(&normLo, "norm-lo", 1.1, "lower mass of the normalization side band")
	plotCmd.Flags().Float64Var(&normHi, "norm-hi", 1.4, "upper mass of the normalization side band")
}

func runPlot(cmd *cobra.Command, args []string) error {
	fname := args[0]

	same, err := hist.ReadSparse3DFile(fname, sameName)
	if err != nil {
		return err
	}
	mixed, err := hist.ReadSparse3DFile(fname, mixedName)
	if err != nil {
		return err
	}

	se := same.ProjectZ(multMin, multMax)
	me := mixed.ProjectZ(multMin, multMax)
	sub, err := hist.Subtract(se, me, normLo, normHi)
	if err != nil {
		return fmt.Errorf("could not normalize mixed-event spectrum: %w", err)
	}
	logger.Info("normalized mixed-event spectrum",
		zap.Float64("scale", sub.Scale),
		zap.Float64("same-integral", se.Integral()),
		zap.Float64("signal-integral", sub.Signal.Integral()),
	)

	p := hplot.New()
	p.Title.Text = plotTitle
	p.X.Label.Text = "Mass (GeV)"
	p.Y.Label.Text = "Pairs"
	p.X.Tick.Marker = ckstar.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = ckstar.PreciseTicks{NSuggestedTicks: 5}
	p.Legend.Top = true

	for i, c := range []struct {
		name string
		h    *hbook.H1D
	}{
		{"same event", se},
		{"mixed event (scaled)", sub.Background},
		{"difference", sub.Signal},
	} {
		h := hplot.NewH1D(c.h)
		h.LineStyle.Color = ckstar.LineColor(i)
		p.Add(h)
		p.Legend.Add(c.name, h)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, plotOutput); err != nil {
		return fmt.Errorf("could not save plot: %w", err)
	}
	return nil
}
