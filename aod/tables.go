package aod

import "math"

type Collision struct {
	GlobalIndex      int64
	PosX, PosY, PosZ float64
	Sel8             bool
	NumContrib       int
	MultZeqFT0A      float64
	MultZeqFT0C      float64
	CentFT0C         float64
	CentFT0M         float64
}

// Track is one reconstructed charged track as it is appended to a Tracks table.
type Track struct {
	ID          int64
	CollisionID int64

	Pt, Eta, Phi float64
	Sign         int

	IsGlobalTrack      bool
	IsGlobalTrackWoDCA bool
	IsPVContributor    bool
	ITSNCls            int

	HasTPC                        bool
	HasTOF                        bool
	TPCNClsFound                  int
	TPCNClsCrossedRows            int
	TPCCrossedRowsOverFindableCls float64

	DCAXY, DCAZ float64

	TPCNSigmaPi float64
	TOFNSigmaPi float64
}

// Tracks is a columnar track table. Rows are addressed through TrackRow.
type Tracks struct {
	id, collisionID  []int64
	pt, eta, phi     []float64
	sign             []int
	globalTrack      []bool
	globalTrackWoDCA []bool
	pvContributor    []bool
	itsNCls          []int
	hasTPC, hasTOF   []bool
	tpcNClsFound     []int
	tpcCrossedRows   []int
	tpcRowsOverFind  []float64
	dcaXY, dcaZ      []float64
	tpcNSigmaPi      []float64
	tofNSigmaPi      []float64
}

func NewTracks(tracks ...Track) *Tracks {
	t := &Tracks{}
	for _, trk := range tracks {
		t.Append(trk)
	}
	return t
}

func (t *Tracks) Append(trk Track) {
	t.id = append(t.id, trk.ID)
	t.collisionID = append(t.collisionID, trk.CollisionID)
	t.pt = append(t.pt, trk.Pt)
	t.eta = append(t.eta, trk.Eta)
	t.phi = append(t.phi, trk.Phi)
	t.sign = append(t.sign, trk.Sign)
	t.globalTrack = append(t.globalTrack, trk.IsGlobalTrack)
	t.globalTrackWoDCA = append(t.globalTrackWoDCA, trk.IsGlobalTrackWoDCA)
	t.pvContributor = append(t.pvContributor, trk.IsPVContributor)
	t.itsNCls = append(t.itsNCls, trk.ITSNCls)
	t.hasTPC = append(t.hasTPC, trk.HasTPC)
	t.hasTOF = append(t.hasTOF, trk.HasTOF)
	t.tpcNClsFound = append(t.tpcNClsFound, trk.TPCNClsFound)
	t.tpcCrossedRows = append(t.tpcCrossedRows, trk.TPCNClsCrossedRows)
	t.tpcRowsOverFind = append(t.tpcRowsOverFind, trk.TPCCrossedRowsOverFindableCls)
	t.dcaXY = append(t.dcaXY, trk.DCAXY)
	t.dcaZ = append(t.dcaZ, trk.DCAZ)
	t.tpcNSigmaPi = append(t.tpcNSigmaPi, trk.TPCNSigmaPi)
	t.tofNSigmaPi = append(t.tofNSigmaPi, trk.TOFNSigmaPi)
}

func (t *Tracks) Len() int {
	if t == nil {
		return 0
	}
	return len(t.id)
}

func (t *Tracks) Row(i int) TrackRow { return TrackRow{t: t, i: i} }

// Record copies row i back into a Track value.
func (t *Tracks) Record(i int) Track {
	return Track{
		ID:                            t.id[i],
		CollisionID:                   t.collisionID[i],
		Pt:                            t.pt[i],
		Eta:                           t.eta[i],
		Phi:                           t.phi[i],
		Sign:                          t.sign[i],
		IsGlobalTrack:                 t.globalTrack[i],
		IsGlobalTrackWoDCA:            t.globalTrackWoDCA[i],
		IsPVContributor:               t.pvContributor[i],
		ITSNCls:                       t.itsNCls[i],
		HasTPC:                        t.hasTPC[i],
		HasTOF:                        t.hasTOF[i],
		TPCNClsFound:                  t.tpcNClsFound[i],
		TPCNClsCrossedRows:            t.tpcCrossedRows[i],
		TPCCrossedRowsOverFindableCls: t.tpcRowsOverFind[i],
		DCAXY:                         t.dcaXY[i],
		DCAZ:                          t.dcaZ[i],
		TPCNSigmaPi:                   t.tpcNSigmaPi[i],
		TOFNSigmaPi:                   t.tofNSigmaPi[i],
	}
}

// TrackRow is a read-only view of one row of a Tracks table.
type TrackRow struct {
	t *Tracks
	i int
}

func (r TrackRow) Index() int               { return r.i }
func (r TrackRow) ID() int64                { return r.t.id[r.i] }
func (r TrackRow) CollisionID() int64       { return r.t.collisionID[r.i] }
func (r TrackRow) Pt() float64              { return r.t.pt[r.i] }
func (r TrackRow) Eta() float64             { return r.t.eta[r.i] }
func (r TrackRow) Phi() float64             { return r.t.phi[r.i] }
func (r TrackRow) Sign() int                { return r.t.sign[r.i] }
func (r TrackRow) IsGlobalTrack() bool      { return r.t.globalTrack[r.i] }
func (r TrackRow) IsGlobalTrackWoDCA() bool { return r.t.globalTrackWoDCA[r.i] }
func (r TrackRow) IsPVContributor() bool    { return r.t.pvContributor[r.i] }
func (r TrackRow) ITSNCls() int             { return r.t.itsNCls[r.i] }
func (r TrackRow) HasTPC() bool             { return r.t.hasTPC[r.i] }
func (r TrackRow) HasTOF() bool             { return r.t.hasTOF[r.i] }
func (r TrackRow) TPCNClsFound() int        { return r.t.tpcNClsFound[r.i] }
func (r TrackRow) TPCNClsCrossedRows() int  { return r.t.tpcCrossedRows[r.i] }
func (r TrackRow) DCAXY() float64           { return r.t.dcaXY[r.i] }
func (r TrackRow) DCAZ() float64            { return r.t.dcaZ[r.i] }
func (r TrackRow) TPCNSigmaPi() float64     { return r.t.tpcNSigmaPi[r.i] }
func (r TrackRow) TOFNSigmaPi() float64     { return r.t.tofNSigmaPi[r.i] }
func (r TrackRow) TPCCrossedRowsOverFindableCls() float64 {
	return r.t.tpcRowsOverFind[r.i]
}

// V0 is one reconstructed two-prong secondary vertex.
type V0 struct {
	ID          int64
	CollisionID int64
	PosTrackID  int64
	NegTrackID  int64

	Pt, Eta, Phi float64
	MK0Short     float64

	// decay vertex
	X, Y, Z float64

	DCAV0ToPV      float64
	DCAV0Daughters float64
	V0CosPA        float64
	QtArm          float64
	Alpha          float64
}

type V0s struct {
	id, collisionID []int64
	posID, negID    []int64
	pt, eta, phi    []float64
	mK0Short        []float64
	x, y, z         []float64
	dcaToPV         []float64
	dcaDaughters    []float64
	cosPA           []float64
	qtArm, alpha    []float64
}

func NewV0s(v0s ...V0) *V0s {
	t := &V0s{}
	for _, v0 := range v0s {
		t.Append(v0)
	}
	return t
}

func (t *V0s) Append(v0 V0) {
	t.id = append(t.id, v0.ID)
	t.collisionID = append(t.collisionID, v0.CollisionID)
	t.posID = append(t.posID, v0.PosTrackID)
	t.negID = append(t.negID, v0.NegTrackID)
	t.pt = append(t.pt, v0.Pt)
	t.eta = append(t.eta, v0.Eta)
	t.phi = append(t.phi, v0.Phi)
	t.mK0Short = append(t.mK0Short, v0.MK0Short)
	t.x = append(t.x, v0.X)
	t.y = append(t.y, v0.Y)
	t.z = append(t.z, v0.Z)
	t.dcaToPV = append(t.dcaToPV, v0.DCAV0ToPV)
	t.dcaDaughters = append(t.dcaDaughters, v0.DCAV0Daughters)
	t.cosPA = append(t.cosPA, v0.V0CosPA)
	t.qtArm = append(t.qtArm, v0.QtArm)
	t.alpha = append(t.alpha, v0.Alpha)
}

func (t *V0s) Len() int {
	if t == nil {
		return 0
	}
	return len(t.id)
}

func (t *V0s) Row(i int) V0Row { return V0Row{t: t, i: i} }

func (t *V0s) Record(i int) V0 {
	return V0{
		ID:             t.id[i],
		CollisionID:    t.collisionID[i],
		PosTrackID:     t.posID[i],
		NegTrackID:     t.negID[i],
		Pt:             t.pt[i],
		Eta:            t.eta[i],
		Phi:            t.phi[i],
		MK0Short:       t.mK0Short[i],
		X:              t.x[i],
		Y:              t.y[i],
		Z:              t.z[i],
		DCAV0ToPV:      t.dcaToPV[i],
		DCAV0Daughters: t.dcaDaughters[i],
		V0CosPA:        t.cosPA[i],
		QtArm:          t.qtArm[i],
		Alpha:          t.alpha[i],
	}
}

type V0Row struct {
	t *V0s
	i int
}

func (r V0Row) Index() int              { return r.i }
func (r V0Row) ID() int64               { return r.t.id[r.i] }
func (r V0Row) CollisionID() int64      { return r.t.collisionID[r.i] }
func (r V0Row) PosTrackID() int64       { return r.t.posID[r.i] }
func (r V0Row) NegTrackID() int64       { return r.t.negID[r.i] }
func (r V0Row) Pt() float64             { return r.t.pt[r.i] }
func (r V0Row) Eta() float64            { return r.t.eta[r.i] }
func (r V0Row) Phi() float64            { return r.t.phi[r.i] }
func (r V0Row) MK0Short() float64       { return r.t.mK0Short[r.i] }
func (r V0Row) DCAV0ToPV() float64      { return r.t.dcaToPV[r.i] }
func (r V0Row) DCAV0Daughters() float64 { return r.t.dcaDaughters[r.i] }
func (r V0Row) V0CosPA() float64        { return r.t.cosPA[r.i] }
func (r V0Row) QtArm() float64          { return r.t.qtArm[r.i] }
func (r V0Row) Alpha() float64          { return r.t.alpha[r.i] }

// V0Radius is the transverse distance of the decay vertex from the beam axis.
func (r V0Row) V0Radius() float64 { return math.Hypot(r.t.x[r.i], r.t.y[r.i]) }

// YK0Short is the V0 rapidity under the K0S mass hypothesis.
func (r V0Row) YK0Short() float64 {
	return Cartesian(PtEtaPhiM(r.Pt(), r.Eta(), r.Phi(), MassK0Short)).Rapidity()
}

// DistOverTotMom is the decay length measured from the given primary vertex
// divided by the total V0 momentum.
func (r V0Row) DistOverTotMom(pvX, pvY, pvZ float64) float64 {
	dx := r.t.x[r.i] - pvX
	dy := r.t.y[r.i] - pvY
	dz := r.t.z[r.i] - pvZ
	l := math.Sqrt(dx*dx + dy*dy + dz*dz)
	p := r.Pt() * math.Cosh(r.Eta())
	return l / (p + 1e-13)
}

// Event groups one collision with the tracks and V0s associated to it.
type Event struct {
	Collision Collision
	Tracks    *Tracks
	V0s       *V0s
}
