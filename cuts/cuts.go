// Package cuts holds the candidate and collision selections of the charged
// K* analysis: primary pion tracks, K0S daughters, K0S topology and
// collision quality.
package cuts

import (
	"errors"
	"fmt"
)

const (
	// MaxRapidity is the |y| acceptance of K0S candidates and of K0S-pion pairs.
	MaxRapidity = 0.5

	// MinArmenterosRatio is the lower bound on qT/alpha of K0S candidates.
	MinArmenterosRatio = 0.2

	minDaughterCrossedRows      = 70
	minDaughterRowsOverFindable = 0.8
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid cuts")

type EventCuts struct {
	ZVertexMax float64 `yaml:"cut_zvertex"`
}

type TrackCuts struct {
	Policy         TrackPolicy `yaml:"policy"`
	PtMin          float64     `yaml:"pt_min"`
	EtaMax         float64     `yaml:"eta_max"`
	DCAXYMax       float64     `yaml:"dca_xy_max"`
	DCAZMax        float64     `yaml:"dca_z_max"`
	NSigmaTPC      float64     `yaml:"nsigma_tpc"`
	NSigmaCombined float64     `yaml:"nsigma_combined"`
	ITSClusterMin  int         `yaml:"its_cluster_min"`
}

type DaughterCuts struct {
	EtaMax     float64 `yaml:"eta_max"`
	TPCNClsMin float64 `yaml:"tpc_ncls_min"`
	DCAXYMin   float64 `yaml:"dca_xy_min"`
	NSigmaPID  float64 `yaml:"nsigma_pid"`
}

type V0Cuts struct {
	PtMin           float64 `yaml:"pt_min"`
	DCADaughtersMax float64 `yaml:"dca_daughters_max"`
	CosPAMin        float64 `yaml:"cpa_min"`
	RadiusMin       float64 `yaml:"radius_min"`
	RadiusMax       float64 `yaml:"radius_max"`
	LifetimeMax     float64 `yaml:"lifetime_max"`
	DCAToPVMax      float64 `yaml:"dca_to_pv_max"`
	MassCenter      float64 `yaml:"mass_center"`
	MassWidth       float64 `yaml:"mass_width"`
	MassNSigma      float64 `yaml:"mass_sigma"`
}

// MassWindow returns the accepted K0S mass interval.
func (c V0Cuts) MassWindow() (lo, hi float64) {
	return c.MassCenter - c.MassWidth*c.MassNSigma, c.MassCenter + c.MassWidth*c.MassNSigma
}

type Cuts struct {
	Event     EventCuts    `yaml:"event"`
	Track     TrackCuts    `yaml:"track"`
	Daughter  DaughterCuts `yaml:"daughter"`
	V0        V0Cuts       `yaml:"v0"`
	Estimator Estimator    `yaml:"estimator"`
}

func Default() Cuts {
	return Cuts{
		Event: EventCuts{ZVertexMax: 10},
		Track: TrackCuts{
			Policy:         ManualDCA,
			PtMin:          0.2,
			EtaMax:         0.8,
			DCAXYMax:       2,
			DCAZMax:        2,
			NSigmaTPC:      3,
			NSigmaCombined: 3,
			ITSClusterMin:  0,
		},
		Daughter: DaughterCuts{
			EtaMax:     0.8,
			TPCNClsMin: 70,
			DCAXYMin:   0.06,
			NSigmaPID:  4,
		},
		V0: V0Cuts{
			PtMin:           0,
			DCADaughtersMax: 1,
			CosPAMin:        0.985,
			RadiusMin:       0.5,
			RadiusMax:       200,
			LifetimeMax:     15,
			DCAToPVMax:      0.3,
			MassCenter:      0.497,
			MassWidth:       0.005,
			MassNSigma:      4,
		},
		Estimator: CentFT0C,
	}
}

func (c Cuts) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...))
		}
	}

	check(c.Event.ZVertexMax > 0, "event.cut_zvertex must be positive, got %v", c.Event.ZVertexMax)
	check(c.Track.Policy == CustomDCA || c.Track.Policy == ManualDCA, "unknown track policy %d", c.Track.Policy)
	check(c.Track.NSigmaTPC > 0, "track.nsigma_tpc must be positive, got %v", c.Track.NSigmaTPC)
	check(c.Track.NSigmaCombined > 0, "track.nsigma_combined must be positive, got %v", c.Track.NSigmaCombined)
	check(c.Track.EtaMax > 0, "track.eta_max must be positive, got %v", c.Track.EtaMax)
	check(c.Daughter.EtaMax > 0, "daughter.eta_max must be positive, got %v", c.Daughter.EtaMax)
	check(c.V0.RadiusMin <= c.V0.RadiusMax, "v0.radius_min %v above v0.radius_max %v", c.V0.RadiusMin, c.V0.RadiusMax)
	check(c.V0.MassWidth >= 0 && c.V0.MassNSigma >= 0, "v0 mass window must not be negative")
	check(c.Estimator.valid(), "unknown estimator %d", c.Estimator)

	return errors.Join(errs...)
}
