package cuts

import (
	"math"

	"github.com/decibelcooper/ckstar/aod"
)

// PrimaryTrack is what SelectTrack needs to know about a track.
type PrimaryTrack interface {
	IsGlobalTrack() bool
	IsGlobalTrackWoDCA() bool
	IsPVContributor() bool
	ITSNCls() int
	DCAXY() float64
	DCAZ() float64
}

// PIDTrack exposes the pion PID response of a track.
type PIDTrack interface {
	HasTOF() bool
	TPCNSigmaPi() float64
	TOFNSigmaPi() float64
}

type AcceptanceTrack interface {
	Pt() float64
	Eta() float64
	DCAXY() float64
	DCAZ() float64
}

// DaughterTrack is what SelectV0Daughter needs to know about a V0 prong.
type DaughterTrack interface {
	HasTPC() bool
	TPCNClsCrossedRows() int
	TPCCrossedRowsOverFindableCls() float64
	TPCNClsFound() int
	Sign() int
	Eta() float64
	DCAXY() float64
}

// V0Candidate is what SelectV0 needs to know about a K0S candidate.
type V0Candidate interface {
	Pt() float64
	MK0Short() float64
	YK0Short() float64
	DCAV0ToPV() float64
	DCAV0Daughters() float64
	V0CosPA() float64
	V0Radius() float64
	DistOverTotMom(pvX, pvY, pvZ float64) float64
	QtArm() float64
	Alpha() float64
}

// V0Monitor receives the quantities of every accepted K0S candidate.
type V0Monitor interface {
	FillV0(ctau, mass, pt, mult, dcaDaughters, cosPA float64)
}

// Selector applies a set of Cuts. It holds no mutable state and may be
// shared between goroutines as long as its monitor may.
type Selector struct {
	cuts Cuts
	v0qa V0Monitor
}

type Option func(*Selector)

// WithV0Monitor enables K0S quality-assurance fills.
func WithV0Monitor(m V0Monitor) Option {
	return func(s *Selector) { s.v0qa = m }
}

func NewSelector(c Cuts, opts ...Option) *Selector {
	s := &Selector{cuts: c}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Selector) Cuts() Cuts { return s.cuts }

// InAcceptance is the kinematic and DCA pre-selection of pion candidates.
func (s *Selector) InAcceptance(t AcceptanceTrack) bool {
	c := s.cuts.Track
	return math.Abs(t.Eta()) < c.EtaMax &&
		t.Pt() > c.PtMin &&
		math.Abs(t.DCAXY()) < c.DCAXYMax &&
		math.Abs(t.DCAZ()) < c.DCAZMax
}

// SelectTrack evaluates the configured primary-track policy. Each policy is
// an OR of its conditions.
func (s *Selector) SelectTrack(t PrimaryTrack) bool {
	c := s.cuts.Track
	switch c.Policy {
	case CustomDCA:
		return t.IsGlobalTrack() ||
			t.IsPVContributor() ||
			t.ITSNCls() > c.ITSClusterMin
	case ManualDCA:
		return t.IsGlobalTrackWoDCA() ||
			t.IsPVContributor() ||
			math.Abs(t.DCAXY()) < c.DCAXYMax ||
			math.Abs(t.DCAZ()) < c.DCAZMax ||
			t.ITSNCls() > c.ITSClusterMin
	}
	return false
}

func (s *Selector) SelectPID(t PIDTrack) bool {
	c := s.cuts.Track
	tpc := t.TPCNSigmaPi()
	if t.HasTOF() {
		tof := t.TOFNSigmaPi()
		return tof*tof+tpc*tpc < c.NSigmaCombined*c.NSigmaCombined
	}
	return math.Abs(tpc) < c.NSigmaTPC
}

// PionCandidate is a track offering everything SelectPion looks at.
type PionCandidate interface {
	AcceptanceTrack
	PrimaryTrack
	PIDTrack
}

// SelectPion applies acceptance, PID and primary-track selections in turn.
func (s *Selector) SelectPion(t PionCandidate) bool {
	return s.InAcceptance(t) && s.SelectPID(t) && s.SelectTrack(t)
}

// SelectV0Daughter checks one K0S prong against the daughter cuts. charge is
// the expected sign and nsigma the PID deviation used for the prong.
func (s *Selector) SelectV0Daughter(t DaughterTrack, charge int, nsigma float64) bool {
	c := s.cuts.Daughter

	if !t.HasTPC() {
		return false
	}
	if t.TPCNClsCrossedRows() < minDaughterCrossedRows {
		return false
	}
	if t.TPCCrossedRowsOverFindableCls() < minDaughterRowsOverFindable {
		return false
	}
	if charge < 0 && t.Sign() > 0 {
		return false
	}
	if charge > 0 && t.Sign() < 0 {
		return false
	}
	if math.Abs(t.Eta()) > c.EtaMax {
		return false
	}
	if float64(t.TPCNClsFound()) < c.TPCNClsMin {
		return false
	}
	// prongs too close to the primary vertex are rejected
	if math.Abs(t.DCAXY()) < c.DCAXYMin {
		return false
	}
	if math.Abs(nsigma) > c.NSigmaPID {
		return false
	}
	return true
}

// SelectV0 applies the K0S topology, lifetime, mass and Armenteros cuts.
// mult is only used for monitoring.
func (s *Selector) SelectV0(coll aod.Collision, v0 V0Candidate, mult float64) bool {
	c := s.cuts.V0

	if math.Abs(v0.DCAV0ToPV()) > c.DCAToPVMax {
		return false
	}
	if !(math.Abs(v0.YK0Short()) <= MaxRapidity) {
		return false
	}

	pt := v0.Pt()
	if pt < c.PtMin {
		return false
	}
	if v0.DCAV0Daughters() > c.DCADaughtersMax {
		return false
	}
	if v0.V0CosPA() < c.CosPAMin {
		return false
	}
	if r := v0.V0Radius(); r < c.RadiusMin || r > c.RadiusMax {
		return false
	}

	ctau := v0.DistOverTotMom(coll.PosX, coll.PosY, coll.PosZ) * aod.MassK0Short
	if math.Abs(ctau) > c.LifetimeMax {
		return false
	}
	lo, hi := c.MassWindow()
	if m := v0.MK0Short(); m < lo || m > hi {
		return false
	}

	alpha := v0.Alpha()
	if alpha == 0 {
		return false
	}
	if v0.QtArm()/alpha < MinArmenterosRatio {
		return false
	}

	if s.v0qa != nil {
		s.v0qa.FillV0(ctau, v0.MK0Short(), pt, mult, v0.DCAV0Daughters(), v0.V0CosPA())
	}
	return true
}
