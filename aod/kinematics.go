package aod

import (
	"go-hep.org/x/hep/fmom"
)

const (
	MassPionCharged = 0.13957039 // GeV/c^2
	MassK0Short     = 0.497611   // GeV/c^2
)

func PtEtaPhiM(pt, eta, phi, m float64) *fmom.PtEtaPhiM {
	p4 := fmom.NewPtEtaPhiM(pt, eta, phi, m)
	return &p4
}

// Cartesian returns p4 in PxPyPzE form, whose Rapidity is finite-safe when
// E == ±pz.
func Cartesian(p4 fmom.P4) *fmom.PxPyPzE {
	var c fmom.PxPyPzE
	c.Set(p4)
	return &c
}
