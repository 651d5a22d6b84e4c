package aod

import (
	"errors"
	"fmt"
)

// ErrUnresolvedDaughter reports a V0 daughter ID missing from the track table
// it is resolved against. It means the input tables are inconsistent.
var ErrUnresolvedDaughter = errors.New("aod: unresolved V0 daughter")

// TrackIndex maps track IDs to rows of one Tracks table.
type TrackIndex struct {
	tracks *Tracks
	rows   map[int64]int
}

func NewTrackIndex(tracks *Tracks) *TrackIndex {
	idx := &TrackIndex{tracks: tracks, rows: make(map[int64]int, tracks.Len())}
	for i := 0; i < tracks.Len(); i++ {
		idx.rows[tracks.id[i]] = i
	}
	return idx
}

func (idx *TrackIndex) Resolve(id int64) (TrackRow, error) {
	i, ok := idx.rows[id]
	if !ok {
		return TrackRow{}, fmt.Errorf("%w: track %d", ErrUnresolvedDaughter, id)
	}
	return idx.tracks.Row(i), nil
}

// Daughters resolves the positive and negative daughters of v0.
func (idx *TrackIndex) Daughters(v0 V0Row) (pos, neg TrackRow, err error) {
	pos, err = idx.Resolve(v0.PosTrackID())
	if err != nil {
		return pos, neg, fmt.Errorf("v0 %d positive daughter: %w", v0.ID(), err)
	}
	neg, err = idx.Resolve(v0.NegTrackID())
	if err != nil {
		return pos, neg, fmt.Errorf("v0 %d negative daughter: %w", v0.ID(), err)
	}
	return pos, neg, nil
}
