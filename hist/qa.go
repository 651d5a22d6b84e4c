package hist

import (
	"sync"

	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/hbook"
)

// QAConfig switches the optional monitoring histograms on.
type QAConfig struct {
	TracksBefore bool `yaml:"before"`
	TracksAfter  bool `yaml:"after"`
	V0           bool `yaml:"v0"`
}

// QA holds the event, track and K0S monitoring histograms. Event histograms
// are always booked, the others only when enabled. All fills are safe for
// concurrent use.
type QA struct {
	mu sync.Mutex

	vertexZ *hbook.H1D
	mult    *hbook.H1D

	tpcBefore, tofBefore *hbook.H1D

	etaAfter              *hbook.H1D
	dcaXYAfter, dcaZAfter *hbook.H1D
	tpcAfter, tofAfter    *hbook.H1D

	lifetime     *hbook.H1D
	dcaDaughters *hbook.H1D
	cosPA        *hbook.H1D
	k0s          *Sparse3D
}

func newH1D(name string, n int, lo, hi float64) *hbook.H1D {
	h := hbook.NewH1D(n, lo, hi)
	h.Ann["name"] = name
	return h
}

func NewQA(cfg QAConfig) *QA {
	qa := &QA{
		vertexZ: newH1D("hVertexZRec", 100, -10, 10),
		mult:    newH1D("hmult", 200, 0, 200),
	}
	if cfg.TracksBefore {
		qa.tpcBefore = newH1D("hNsigmaPionTPC_before", 200, -10, 10)
		qa.tofBefore = newH1D("hNsigmaPionTOF_before", 200, -10, 10)
	}
	if cfg.TracksAfter {
		qa.etaAfter = newH1D("hEta_after", 200, -1, 1)
		qa.dcaXYAfter = newH1D("hDcaxy_after", 200, -10, 10)
		qa.dcaZAfter = newH1D("hDcaz_after", 200, -10, 10)
		qa.tpcAfter = newH1D("hNsigmaPionTPC_after", 200, -10, 10)
		qa.tofAfter = newH1D("hNsigmaPionTOF_after", 200, -10, 10)
	}
	if cfg.V0 {
		qa.lifetime = newH1D("hLT", 100, 0, 50)
		qa.dcaDaughters = newH1D("hDCAV0Daughters", 50, 0, 5)
		qa.cosPA = newH1D("hV0CosPA", 100, 0.95, 1)
		qa.k0s = NewSparse3D("hMassvsptvsmult",
			Axis{N: 100, Lo: 0, Hi: 100},
			Axis{N: 200, Lo: 0, Hi: 20},
			Axis{N: 200, Lo: 0.45, Hi: 0.55},
		)
	}
	return qa
}

func (qa *QA) FillEvent(posZ, mult float64) {
	qa.mu.Lock()
	qa.vertexZ.Fill(posZ, 1)
	qa.mult.Fill(mult, 1)
	qa.mu.Unlock()
}

func (qa *QA) FillTrackBefore(tpc, tof float64) {
	if qa.tpcBefore == nil {
		return
	}
	qa.mu.Lock()
	qa.tpcBefore.Fill(tpc, 1)
	qa.tofBefore.Fill(tof, 1)
	qa.mu.Unlock()
}

func (qa *QA) FillTrackAfter(eta, dcaXY, dcaZ, tpc, tof float64) {
	if qa.etaAfter == nil {
		return
	}
	qa.mu.Lock()
	qa.etaAfter.Fill(eta, 1)
	qa.dcaXYAfter.Fill(dcaXY, 1)
	qa.dcaZAfter.Fill(dcaZ, 1)
	qa.tpcAfter.Fill(tpc, 1)
	qa.tofAfter.Fill(tof, 1)
	qa.mu.Unlock()
}

// FillV0 records an accepted K0S candidate. The mass histogram is sliced in
// multiplicity like the K* histograms.
func (qa *QA) FillV0(ctau, mass, pt, mult, dcaDaughters, cosPA float64) {
	if qa.lifetime == nil {
		return
	}
	qa.mu.Lock()
	qa.lifetime.Fill(ctau, 1)
	qa.dcaDaughters.Fill(dcaDaughters, 1)
	qa.cosPA.Fill(cosPA, 1)
	qa.mu.Unlock()
	qa.k0s.Fill(mult, pt, mass)
}

// Histograms returns the booked 1D histograms.
func (qa *QA) Histograms() []*hbook.H1D {
	qa.mu.Lock()
	defer qa.mu.Unlock()

	var hs []*hbook.H1D
	for _, h := range []*hbook.H1D{
		qa.vertexZ, qa.mult,
		qa.tpcBefore, qa.tofBefore,
		qa.etaAfter, qa.dcaXYAfter, qa.dcaZAfter, qa.tpcAfter, qa.tofAfter,
		qa.lifetime, qa.dcaDaughters, qa.cosPA,
	} {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return hs
}

func (qa *QA) WriteTo(dir riofs.Directory) error {
	for _, h := range qa.Histograms() {
		if err := putH1D(dir, h); err != nil {
			return err
		}
	}
	if qa.k0s != nil {
		return qa.k0s.WriteTo(dir)
	}
	return nil
}
