// Package pairing builds K0S-pion pairs within a collision and across
// collisions of the same mixing class, and fills their (multiplicity, pT,
// mass) into the configured sinks.
package pairing

import (
	"math"
	"sync/atomic"

	"go-hep.org/x/hep/fmom"
	"go.uber.org/zap"

	"github.com/decibelcooper/ckstar/aod"
	"github.com/decibelcooper/ckstar/cuts"
)

// Sink receives one (multiplicity, pT, mass) fill per accepted pair.
type Sink interface {
	Fill(mult, pt, mass float64)
}

// EventMonitor receives the vertex position and multiplicity of every
// processed collision.
type EventMonitor interface {
	FillEvent(posZ, mult float64)
}

// TrackMonitor receives the pion candidates before and after the PID and
// primary-track selections.
type TrackMonitor interface {
	FillTrackBefore(tpc, tof float64)
	FillTrackAfter(eta, dcaXY, dcaZ, tpc, tof float64)
}

// Sinks are the accumulators an Engine writes to. Same and Mixed are
// required, the monitors are optional.
type Sinks struct {
	Same   Sink
	Mixed  Sink
	Events EventMonitor
	Tracks TrackMonitor
	V0s    cuts.V0Monitor
}

// Stats counts what an Engine processed.
type Stats struct {
	Collisions  int64
	Rejected    int64
	Pions       int64
	K0S         int64
	SameFills   int64
	MixedPairs  int64
	MixedFills  int64
	MixedSkips  int64
	RapidityCut int64
}

type counters struct {
	collisions  atomic.Int64
	rejected    atomic.Int64
	pions       atomic.Int64
	k0s         atomic.Int64
	sameFills   atomic.Int64
	mixedPairs  atomic.Int64
	mixedFills  atomic.Int64
	mixedSkips  atomic.Int64
	rapidityCut atomic.Int64
}

// Engine pairs pion and K0S candidates. It is safe for concurrent use as long
// as its sinks are.
type Engine struct {
	same  *cuts.Selector
	mixed *cuts.Selector
	sinks Sinks
	msg   *zap.Logger

	n counters
}

type Option func(*Engine)

func WithLogger(msg *zap.Logger) Option {
	return func(e *Engine) { e.msg = msg }
}

// NewEngine creates an engine applying c. K0S monitoring only sees the
// same-event candidates.
func NewEngine(c cuts.Cuts, sinks Sinks, opts ...Option) *Engine {
	var sopts []cuts.Option
	if sinks.V0s != nil {
		sopts = append(sopts, cuts.WithV0Monitor(sinks.V0s))
	}
	e := &Engine{
		same:  cuts.NewSelector(c, sopts...),
		mixed: cuts.NewSelector(c),
		sinks: sinks,
		msg:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Stats() Stats {
	return Stats{
		Collisions:  e.n.collisions.Load(),
		Rejected:    e.n.rejected.Load(),
		Pions:       e.n.pions.Load(),
		K0S:         e.n.k0s.Load(),
		SameFills:   e.n.sameFills.Load(),
		MixedPairs:  e.n.mixedPairs.Load(),
		MixedFills:  e.n.mixedFills.Load(),
		MixedSkips:  e.n.mixedSkips.Load(),
		RapidityCut: e.n.rapidityCut.Load(),
	}
}

type pion struct {
	id, coll int64
	p4       fmom.PtEtaPhiM
}

type kshort struct {
	id, coll int64
	pos, neg int64
	p4       fmom.PtEtaPhiM
}

// pions returns the accepted pion candidates of ev. Track monitoring is only
// done when monitor is set.
func (e *Engine) pions(sel *cuts.Selector, ev aod.Event, monitor TrackMonitor) []pion {
	var out []pion
	for i := 0; i < ev.Tracks.Len(); i++ {
		t := ev.Tracks.Row(i)
		if !sel.InAcceptance(t) {
			continue
		}
		if monitor != nil {
			monitor.FillTrackBefore(t.TPCNSigmaPi(), t.TOFNSigmaPi())
		}
		if !sel.SelectPID(t) || !sel.SelectTrack(t) {
			continue
		}
		if monitor != nil {
			monitor.FillTrackAfter(t.Eta(), t.DCAXY(), t.DCAZ(), t.TPCNSigmaPi(), t.TOFNSigmaPi())
		}
		out = append(out, pion{
			id:   t.ID(),
			coll: t.CollisionID(),
			p4:   fmom.NewPtEtaPhiM(t.Pt(), t.Eta(), t.Phi(), aod.MassPionCharged),
		})
	}
	return out
}

// kshorts returns the accepted K0S candidates of ev. Daughters are resolved
// against the tracks of ev.
func (e *Engine) kshorts(sel *cuts.Selector, ev aod.Event, mult float64) ([]kshort, error) {
	if ev.V0s.Len() == 0 {
		return nil, nil
	}
	idx := aod.NewTrackIndex(ev.Tracks)

	var out []kshort
	for i := 0; i < ev.V0s.Len(); i++ {
		v0 := ev.V0s.Row(i)
		pos, neg, err := idx.Daughters(v0)
		if err != nil {
			return nil, err
		}
		if !sel.SelectV0Daughter(pos, +1, pos.TPCNSigmaPi()) {
			continue
		}
		if !sel.SelectV0Daughter(neg, -1, neg.TPCNSigmaPi()) {
			continue
		}
		if !sel.SelectV0(ev.Collision, v0, mult) {
			continue
		}
		out = append(out, kshort{
			id:   v0.ID(),
			coll: v0.CollisionID(),
			pos:  pos.ID(),
			neg:  neg.ID(),
			p4:   fmom.NewPtEtaPhiM(v0.Pt(), v0.Eta(), v0.Phi(), aod.MassK0Short),
		})
	}
	return out, nil
}

// pair fills every K0S-pion combination of pis and ks passing the overlap and
// rapidity requirements into sink. Pairs from different collisions are
// skipped unless mixed is set. It returns the number of fills.
func (e *Engine) pair(mult float64, pis []pion, ks []kshort, mixed bool, sink Sink) int64 {
	var n int64
	for i := range pis {
		pi := &pis[i]
		for j := range ks {
			k := &ks[j]
			if pi.id == k.pos || pi.id == k.neg {
				continue
			}
			if !mixed && pi.coll != k.coll {
				continue
			}
			p4 := fmom.Add(aod.Cartesian(&pi.p4), &k.p4)
			if !(math.Abs(p4.Rapidity()) < cuts.MaxRapidity) {
				e.n.rapidityCut.Add(1)
				continue
			}
			sink.Fill(mult, p4.Pt(), p4.M())
			n++
		}
	}
	return n
}

// ProcessSame pairs the pions and K0S candidates of one collision.
func (e *Engine) ProcessSame(ev aod.Event) error {
	e.n.collisions.Add(1)
	if !e.same.SelectCollision(ev.Collision) {
		e.n.rejected.Add(1)
		return nil
	}
	mult := e.same.Multiplicity(ev.Collision)
	if e.sinks.Events != nil {
		e.sinks.Events.FillEvent(ev.Collision.PosZ, mult)
	}

	pis := e.pions(e.same, ev, e.sinks.Tracks)
	ks, err := e.kshorts(e.same, ev, mult)
	if err != nil {
		return err
	}
	e.n.pions.Add(int64(len(pis)))
	e.n.k0s.Add(int64(len(ks)))

	n := e.pair(mult, pis, ks, false, e.sinks.Same)
	e.n.sameFills.Add(n)
	if n > 0 {
		e.msg.Debug("same-event pairs",
			zap.Int64("collision", ev.Collision.GlobalIndex),
			zap.Int("pions", len(pis)),
			zap.Int("k0s", len(ks)),
			zap.Int64("fills", n),
		)
	}
	return nil
}

// ProcessMixed pairs the pions of ev1 with the K0S candidates of ev2. The
// multiplicity of ev1 is used for the fills. Roles are not swapped.
func (e *Engine) ProcessMixed(ev1, ev2 aod.Event) error {
	e.n.mixedPairs.Add(1)
	if !e.mixed.SelectCollision(ev1.Collision) || !e.mixed.SelectCollision(ev2.Collision) {
		e.n.mixedSkips.Add(1)
		return nil
	}
	mult := e.mixed.Multiplicity(ev1.Collision)

	pis := e.pions(e.mixed, ev1, nil)
	if len(pis) == 0 {
		return nil
	}
	ks, err := e.kshorts(e.mixed, ev2, mult)
	if err != nil {
		return err
	}

	n := e.pair(mult, pis, ks, true, e.sinks.Mixed)
	e.n.mixedFills.Add(n)
	return nil
}
