package aod

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// Tree names of an analysis input file.
const (
	CollisionTree = "collisions"
	TrackTree     = "tracks"
	V0Tree        = "v0s"
)

type branch struct {
	name string
	ptr  interface{}
}

func readVars(bs []branch) []rtree.ReadVar {
	rvars := make([]rtree.ReadVar, len(bs))
	for i, b := range bs {
		rvars[i] = rtree.ReadVar{Name: b.name, Value: b.ptr}
	}
	return rvars
}

func writeVars(bs []branch) []rtree.WriteVar {
	wvars := make([]rtree.WriteVar, len(bs))
	for i, b := range bs {
		wvars[i] = rtree.WriteVar{Name: b.name, Value: b.ptr}
	}
	return wvars
}

type collisionBranches struct {
	globalIndex              int64
	posX, posY, posZ         float32
	sel8                     bool
	numContrib               int32
	multZeqFT0A, multZeqFT0C float32
	centFT0C, centFT0M       float32
}

func (b *collisionBranches) branches() []branch {
	return []branch{
		{"global_index", &b.globalIndex},
		{"pos_x", &b.posX},
		{"pos_y", &b.posY},
		{"pos_z", &b.posZ},
		{"sel8", &b.sel8},
		{"num_contrib", &b.numContrib},
		{"mult_zeq_ft0a", &b.multZeqFT0A},
		{"mult_zeq_ft0c", &b.multZeqFT0C},
		{"cent_ft0c", &b.centFT0C},
		{"cent_ft0m", &b.centFT0M},
	}
}

func (b *collisionBranches) record() Collision {
	return Collision{
		GlobalIndex: b.globalIndex,
		PosX:        float64(b.posX),
		PosY:        float64(b.posY),
		PosZ:        float64(b.posZ),
		Sel8:        b.sel8,
		NumContrib:  int(b.numContrib),
		MultZeqFT0A: float64(b.multZeqFT0A),
		MultZeqFT0C: float64(b.multZeqFT0C),
		CentFT0C:    float64(b.centFT0C),
		CentFT0M:    float64(b.centFT0M),
	}
}

func (b *collisionBranches) set(c Collision) {
	b.globalIndex = c.GlobalIndex
	b.posX, b.posY, b.posZ = float32(c.PosX), float32(c.PosY), float32(c.PosZ)
	b.sel8 = c.Sel8
	b.numContrib = int32(c.NumContrib)
	b.multZeqFT0A, b.multZeqFT0C = float32(c.MultZeqFT0A), float32(c.MultZeqFT0C)
	b.centFT0C, b.centFT0M = float32(c.CentFT0C), float32(c.CentFT0M)
}

type trackBranches struct {
	id, collisionID          int64
	pt, eta, phi             float32
	sign                     int32
	globalTrack              bool
	globalTrackWoDCA         bool
	pvContributor            bool
	itsNCls                  int32
	hasTPC, hasTOF           bool
	tpcNClsFound             int32
	tpcCrossedRows           int32
	tpcRowsOverFind          float32
	dcaXY, dcaZ              float32
	tpcNSigmaPi, tofNSigmaPi float32
}

func (b *trackBranches) branches() []branch {
	return []branch{
		{"id", &b.id},
		{"collision_id", &b.collisionID},
		{"pt", &b.pt},
		{"eta", &b.eta},
		{"phi", &b.phi},
		{"sign", &b.sign},
		{"is_global_track", &b.globalTrack},
		{"is_global_track_wo_dca", &b.globalTrackWoDCA},
		{"is_pv_contributor", &b.pvContributor},
		{"its_ncls", &b.itsNCls},
		{"has_tpc", &b.hasTPC},
		{"has_tof", &b.hasTOF},
		{"tpc_ncls_found", &b.tpcNClsFound},
		{"tpc_ncls_crossed_rows", &b.tpcCrossedRows},
		{"tpc_crossed_rows_over_findable_cls", &b.tpcRowsOverFind},
		{"dca_xy", &b.dcaXY},
		{"dca_z", &b.dcaZ},
		{"tpc_nsigma_pi", &b.tpcNSigmaPi},
		{"tof_nsigma_pi", &b.tofNSigmaPi},
	}
}

func (b *trackBranches) record() Track {
	return Track{
		ID:                            b.id,
		CollisionID:                   b.collisionID,
		Pt:                            float64(b.pt),
		Eta:                           float64(b.eta),
		Phi:                           float64(b.phi),
		Sign:                          int(b.sign),
		IsGlobalTrack:                 b.globalTrack,
		IsGlobalTrackWoDCA:            b.globalTrackWoDCA,
		IsPVContributor:               b.pvContributor,
		ITSNCls:                       int(b.itsNCls),
		HasTPC:                        b.hasTPC,
		HasTOF:                        b.hasTOF,
		TPCNClsFound:                  int(b.tpcNClsFound),
		TPCNClsCrossedRows:            int(b.tpcCrossedRows),
		TPCCrossedRowsOverFindableCls: float64(b.tpcRowsOverFind),
		DCAXY:                         float64(b.dcaXY),
		DCAZ:                          float64(b.dcaZ),
		TPCNSigmaPi:                   float64(b.tpcNSigmaPi),
		TOFNSigmaPi:                   float64(b.tofNSigmaPi),
	}
}

func (b *trackBranches) set(t Track) {
	b.id, b.collisionID = t.ID, t.CollisionID
	b.pt, b.eta, b.phi = float32(t.Pt), float32(t.Eta), float32(t.Phi)
	b.sign = int32(t.Sign)
	b.globalTrack = t.IsGlobalTrack
	b.globalTrackWoDCA = t.IsGlobalTrackWoDCA
	b.pvContributor = t.IsPVContributor
	b.itsNCls = int32(t.ITSNCls)
	b.hasTPC, b.hasTOF = t.HasTPC, t.HasTOF
	b.tpcNClsFound = int32(t.TPCNClsFound)
	b.tpcCrossedRows = int32(t.TPCNClsCrossedRows)
	b.tpcRowsOverFind = float32(t.TPCCrossedRowsOverFindableCls)
	b.dcaXY, b.dcaZ = float32(t.DCAXY), float32(t.DCAZ)
	b.tpcNSigmaPi, b.tofNSigmaPi = float32(t.TPCNSigmaPi), float32(t.TOFNSigmaPi)
}

type v0Branches struct {
	id, collisionID int64
	posID, negID    int64
	pt, eta, phi    float32
	mK0Short        float32
	x, y, z         float32
	dcaToPV         float32
	dcaDaughters    float32
	cosPA           float32
	qtArm, alpha    float32
}

func (b *v0Branches) branches() []branch {
	return []branch{
		{"id", &b.id},
		{"collision_id", &b.collisionID},
		{"pos_track_id", &b.posID},
		{"neg_track_id", &b.negID},
		{"pt", &b.pt},
		{"eta", &b.eta},
		{"phi", &b.phi},
		{"m_k0short", &b.mK0Short},
		{"x", &b.x},
		{"y", &b.y},
		{"z", &b.z},
		{"dca_v0_to_pv", &b.dcaToPV},
		{"dca_v0_daughters", &b.dcaDaughters},
		{"v0_cos_pa", &b.cosPA},
		{"qt_arm", &b.qtArm},
		{"alpha", &b.alpha},
	}
}

func (b *v0Branches) record() V0 {
	return V0{
		ID:             b.id,
		CollisionID:    b.collisionID,
		PosTrackID:     b.posID,
		NegTrackID:     b.negID,
		Pt:             float64(b.pt),
		Eta:            float64(b.eta),
		Phi:            float64(b.phi),
		MK0Short:       float64(b.mK0Short),
		X:              float64(b.x),
		Y:              float64(b.y),
		Z:              float64(b.z),
		DCAV0ToPV:      float64(b.dcaToPV),
		DCAV0Daughters: float64(b.dcaDaughters),
		V0CosPA:        float64(b.cosPA),
		QtArm:          float64(b.qtArm),
		Alpha:          float64(b.alpha),
	}
}

func (b *v0Branches) set(v V0) {
	b.id, b.collisionID = v.ID, v.CollisionID
	b.posID, b.negID = v.PosTrackID, v.NegTrackID
	b.pt, b.eta, b.phi = float32(v.Pt), float32(v.Eta), float32(v.Phi)
	b.mK0Short = float32(v.MK0Short)
	b.x, b.y, b.z = float32(v.X), float32(v.Y), float32(v.Z)
	b.dcaToPV = float32(v.DCAV0ToPV)
	b.dcaDaughters = float32(v.DCAV0Daughters)
	b.cosPA = float32(v.V0CosPA)
	b.qtArm, b.alpha = float32(v.QtArm), float32(v.Alpha)
}

// ReadFile reads the collision, track and V0 trees of a ROOT file and groups
// tracks and V0s by their collision. Events keep the collision tree order.
func ReadFile(fname string) ([]Event, error) {
	f, err := groot.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer f.Close()

	var (
		events []Event
		byID   = make(map[int64]int)
	)

	var cb collisionBranches
	err = scanTree(f, CollisionTree, cb.branches(), func() error {
		c := cb.record()
		if _, dup := byID[c.GlobalIndex]; dup {
			return fmt.Errorf("duplicate collision %d", c.GlobalIndex)
		}
		byID[c.GlobalIndex] = len(events)
		events = append(events, Event{Collision: c, Tracks: NewTracks(), V0s: NewV0s()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	var tb trackBranches
	err = scanTree(f, TrackTree, tb.branches(), func() error {
		t := tb.record()
		i, ok := byID[t.CollisionID]
		if !ok {
			return fmt.Errorf("track %d: unknown collision %d", t.ID, t.CollisionID)
		}
		events[i].Tracks.Append(t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var vb v0Branches
	err = scanTree(f, V0Tree, vb.branches(), func() error {
		v := vb.record()
		i, ok := byID[v.CollisionID]
		if !ok {
			return fmt.Errorf("v0 %d: unknown collision %d", v.ID, v.CollisionID)
		}
		events[i].V0s.Append(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

func scanTree(dir riofs.Directory, name string, bs []branch, fn func() error) error {
	obj, err := dir.Get(name)
	if err != nil {
		return fmt.Errorf("could not find tree %q: %w", name, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return fmt.Errorf("object %q is a %T, not a tree", name, obj)
	}

	r, err := rtree.NewReader(tree, readVars(bs))
	if err != nil {
		return fmt.Errorf("could not create reader for tree %q: %w", name, err)
	}
	defer r.Close()

	err = r.Read(func(ctx rtree.RCtx) error {
		if err := fn(); err != nil {
			return fmt.Errorf("tree %q entry %d: %w", name, ctx.Entry, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not read tree %q: %w", name, err)
	}
	return nil
}

// WriteFile writes events in the layout ReadFile expects.
func WriteFile(fname string, events []Event) error {
	f, err := groot.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", fname, err)
	}

	if err := writeTrees(f, events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTrees(f *riofs.File, events []Event) error {
	var cb collisionBranches
	err := fillTree(f, CollisionTree, cb.branches(), func(yield func() error) error {
		for _, ev := range events {
			cb.set(ev.Collision)
			if err := yield(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	var tb trackBranches
	err = fillTree(f, TrackTree, tb.branches(), func(yield func() error) error {
		for _, ev := range events {
			for i := 0; i < ev.Tracks.Len(); i++ {
				tb.set(ev.Tracks.Record(i))
				if err := yield(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	var vb v0Branches
	return fillTree(f, V0Tree, vb.branches(), func(yield func() error) error {
		for _, ev := range events {
			for i := 0; i < ev.V0s.Len(); i++ {
				vb.set(ev.V0s.Record(i))
				if err := yield(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func fillTree(dir riofs.Directory, name string, bs []branch, rows func(yield func() error) error) error {
	w, err := rtree.NewWriter(dir, name, writeVars(bs))
	if err != nil {
		return fmt.Errorf("could not create tree %q: %w", name, err)
	}

	err = rows(func() error {
		_, err := w.Write()
		return err
	})
	if err != nil {
		w.Close()
		return fmt.Errorf("could not write tree %q: %w", name, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("could not close tree %q: %w", name, err)
	}
	return nil
}
