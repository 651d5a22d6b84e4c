package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/ckstar"
	"github.com/decibelcooper/ckstar/hist"
)

var (
	mapOutput string
	mapName   string
)

var mapCmd = &cobra.Command{
	Use:   "map [flags] <histogram-file>",
	Short: "Draw pT versus mass of one histogram as a color map",
	Args:  cobra.ExactArgs(1),
	RunE:  runMap,
}

func init() {
	mapCmd.Flags().StringVarP(&mapOutput, "output", "o", "map.png", "output PNG file")
	mapCmd.Flags().StringVar(&mapName, "hist", sameName, "histogram to draw")
	mapCmd.Flags().StringVar(&plotTitle, "title", "", "plot title")
	mapCmd.Flags().Float64Var(&multMin, "mult-min", 0, "lower multiplicity bound")
	mapCmd.Flags().Float64Var(&multMax, "mult-max", 200, "upper multiplicity bound")
}

func runMap(cmd *cobra.Command, args []string) error {
	h3, err := hist.ReadSparse3DFile(args[0], mapName)
	if err != nil {
		return err
	}
	h2 := h3.ProjectYZ(multMin, multMax)

	grid := h2.GridXYZ()
	zmax := 0.0
	nx, ny := grid.Dims()
	for c := 0; c < nx; c++ {
		for r := 0; r < ny; r++ {
			zmax = max(zmax, grid.Z(c, r))
		}
	}
	if zmax == 0 {
		zmax = 1
	}

	p := plot.New()
	p.Title.Text = plotTitle
	p.X.Label.Text = "p_T (GeV)"
	p.Y.Label.Text = "Mass (GeV)"
	p.X.Tick.Marker = ckstar.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = ckstar.PreciseTicks{NSuggestedTicks: 5}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(zmax)
	heatMap := plotter.NewHeatMap(grid, colorMap.Palette(1000))
	heatMap.Min = 0
	heatMap.Max = zmax
	p.Add(heatMap)

	p.Draw(dc0)

	p = plot.New()

	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0

	p.Draw(dc1)

	w, err := os.Create(mapOutput)
	if err != nil {
		return err
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		return fmt.Errorf("could not write %q: %w", mapOutput, err)
	}
	return w.Close()
}
