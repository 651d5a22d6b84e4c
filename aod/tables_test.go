package aod

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"
)

func TestTracksRecordRoundTrip(t *testing.T) {
	trk := Track{
		ID:              7,
		CollisionID:     3,
		Pt:              1.5,
		Eta:             -0.25,
		Phi:             2,
		Sign:            -1,
		IsPVContributor: true,
		ITSNCls:         6,
		HasTPC:          true,
		TPCNClsFound:    120,
		DCAXY:           0.1,
		TPCNSigmaPi:     -1.2,
	}
	tracks := NewTracks(Track{ID: 1}, trk)
	require.Equal(t, 2, tracks.Len())
	assert.Equal(t, trk, tracks.Record(1))

	row := tracks.Row(1)
	assert.Equal(t, int64(7), row.ID())
	assert.Equal(t, int64(3), row.CollisionID())
	assert.Equal(t, -1, row.Sign())
	assert.True(t, row.IsPVContributor())
	assert.False(t, row.IsGlobalTrack())
	assert.Equal(t, 120, row.TPCNClsFound())
	assert.Equal(t, -1.2, row.TPCNSigmaPi())
}

func TestNilTablesAreEmpty(t *testing.T) {
	var tracks *Tracks
	var v0s *V0s
	assert.Zero(t, tracks.Len())
	assert.Zero(t, v0s.Len())
}

func TestV0Derived(t *testing.T) {
	v0s := NewV0s(V0{ID: 1, Pt: 2, Eta: 0, X: 3, Y: 4, Z: 1})
	row := v0s.Row(0)

	assert.InDelta(t, 5, row.V0Radius(), 1e-12)

	// decay vertex (3,4,1) seen from (0,0,1): L = 5, p = pt*cosh(0) = 2
	assert.InDelta(t, 2.5, row.DistOverTotMom(0, 0, 1), 1e-9)

	// at eta = 0 the rapidity vanishes for any mass
	assert.InDelta(t, 0, row.YK0Short(), 1e-12)
}

func TestYK0ShortBelowEta(t *testing.T) {
	row := NewV0s(V0{Pt: 0.5, Eta: 0.6}).Row(0)
	y := row.YK0Short()
	assert.Greater(t, y, 0.0)
	assert.Less(t, y, 0.6)

	pz := 0.5 * math.Sinh(0.6)
	e := math.Sqrt(0.25 + pz*pz + MassK0Short*MassK0Short)
	assert.InDelta(t, 0.5*math.Log((e+pz)/(e-pz)), y, 1e-12)
}

func TestTrackIndex(t *testing.T) {
	tracks := NewTracks(Track{ID: 10, Sign: 1}, Track{ID: 11, Sign: -1})
	idx := NewTrackIndex(tracks)

	row, err := idx.Resolve(11)
	require.NoError(t, err)
	assert.Equal(t, -1, row.Sign())

	_, err = idx.Resolve(12)
	assert.True(t, errors.Is(err, ErrUnresolvedDaughter))

	v0s := NewV0s(
		V0{ID: 1, PosTrackID: 10, NegTrackID: 11},
		V0{ID: 2, PosTrackID: 10, NegTrackID: 99},
	)
	pos, neg, err := idx.Daughters(v0s.Row(0))
	require.NoError(t, err)
	assert.Equal(t, int64(10), pos.ID())
	assert.Equal(t, int64(11), neg.ID())

	_, _, err = idx.Daughters(v0s.Row(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedDaughter)
	assert.Contains(t, err.Error(), "negative daughter")
}

func TestPairSum(t *testing.T) {
	pi := PtEtaPhiM(1, 0, 0, MassPionCharged)
	k0 := PtEtaPhiM(1, 0, math.Pi, MassK0Short)
	sum := fmom.Add(Cartesian(pi), k0)

	assert.InDelta(t, 0, sum.Pt(), 1e-9)
	assert.InDelta(t, 0, sum.Rapidity(), 1e-9)

	want := math.Sqrt(1+MassPionCharged*MassPionCharged) + math.Sqrt(1+MassK0Short*MassK0Short)
	assert.InDelta(t, want, sum.M(), 1e-9)
}

func TestYK0ShortInfiniteMomentum(t *testing.T) {
	v0s := NewV0s(
		V0{ID: 1, Pt: 1, Eta: 800},
		V0{ID: 2, Pt: 1, Eta: -800},
	)
	assert.True(t, math.IsInf(v0s.Row(0).YK0Short(), +1))
	assert.True(t, math.IsInf(v0s.Row(1).YK0Short(), -1))
}
