package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decibelcooper/ckstar"
	"github.com/decibelcooper/ckstar/aod"
	"github.com/decibelcooper/ckstar/config"
	"github.com/decibelcooper/ckstar/hist"
	"github.com/decibelcooper/ckstar/pairing"
)

const (
	sameName  = "h3CKSInvMassUnlikeSign"
	mixedName = "h3CKSInvMassMixed"
)

var (
	fillOutput  string
	fillWorkers int
	vzEdges     ckstar.FloatArrayFlags
	multEdges   ckstar.FloatArrayFlags
)

var fillCmd = &cobra.Command{
	Use:   "fill [flags] <aod-input-files>...",
	Short: "Fill the same-event and mixed-event mass histograms",
	Long: `Reads collisions, tracks and V0s from ROOT files, runs the same-event and
mixed-event pairing and writes the (multiplicity, pT, mass) histograms and the
enabled QA histograms to a ROOT file.

Mixing bin edges may be given on the command line, e.g.
  --vz-edges -10,-5,0,5,10 --mult-edges 0,20,50,100,10000`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "out.root", "output ROOT file")
	fillCmd.Flags().IntVarP(&fillWorkers, "workers", "j", 0, "concurrent workers (0 means GOMAXPROCS)")
	fillCmd.Flags().Var(&vzEdges, "vz-edges", "vertex z mixing bin edges")
	fillCmd.Flags().Var(&multEdges, "mult-edges", "multiplicity mixing bin edges")
}

func massAxes() (mult, pt, mass hist.Axis) {
	return hist.Axis{N: 200, Lo: 0, Hi: 200},
		hist.Axis{N: 200, Lo: 0, Hi: 20},
		hist.Axis{N: 90, Lo: 0.6, Hi: 1.5}
}

func loadFillConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, err
	}
	if vzEdges.Changed() {
		cfg.Mixing.Binning.Vertex = pairing.Variable(vzEdges.Array...)
	}
	if multEdges.Changed() {
		cfg.Mixing.Binning.Mult = pairing.Variable(multEdges.Array...)
	}
	return cfg, cfg.Validate()
}

func readEvents(fnames []string) ([]aod.Event, error) {
	var events []aod.Event
	for _, fname := range fnames {
		evs, err := aod.ReadFile(fname)
		if err != nil {
			return nil, err
		}
		logger.Debug("read input", zap.String("file", fname), zap.Int("collisions", len(evs)))
		events = append(events, evs...)
	}
	return events, nil
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := loadFillConfig()
	if err != nil {
		return err
	}

	msg := logger.With(zap.String("run", uuid.NewString()))
	msg.Info("starting",
		zap.Strings("inputs", args),
		zap.String("output", fillOutput),
		zap.Stringer("estimator", cfg.Estimator),
		zap.Stringer("mixing-variable", cfg.Mixing.Binning.Variable),
		zap.Int("mixing-depth", cfg.Mixing.Depth),
	)

	events, err := readEvents(args)
	if err != nil {
		return err
	}

	mult, pt, mass := massAxes()
	same := hist.NewSparse3D(sameName, mult, pt, mass)
	mixed := hist.NewSparse3D(mixedName, mult, pt, mass)
	qa := hist.NewQA(cfg.QA)

	sinks := pairing.Sinks{Same: same, Mixed: mixed, Events: qa}
	if cfg.QA.TracksBefore || cfg.QA.TracksAfter {
		sinks.Tracks = qa
	}
	if cfg.QA.V0 {
		sinks.V0s = qa
	}
	eng := pairing.NewEngine(cfg.Cuts, sinks, pairing.WithLogger(msg))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = eng.Run(ctx, events, pairing.RunOptions{
		Mixing:  cfg.Mixing,
		Workers: fillWorkers,
		NoSame:  !cfg.Process.Same,
		NoMixed: !cfg.Process.Mixed,
	})
	if err != nil {
		return err
	}

	if n := same.Outside() + mixed.Outside(); n > 0 {
		msg.Warn("fills outside the multiplicity axis were dropped", zap.Int("fills", n))
	}

	if err := hist.WriteFile(fillOutput, same, mixed, qa); err != nil {
		return fmt.Errorf("could not write histograms: %w", err)
	}
	msg.Info("histograms written",
		zap.String("output", fillOutput),
		zap.Int64("same-entries", same.Entries()),
		zap.Int64("mixed-entries", mixed.Entries()),
	)
	return nil
}
