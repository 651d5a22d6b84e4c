package hist

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisBin(t *testing.T) {
	a := Axis{N: 10, Lo: 0, Hi: 1}

	tests := []struct {
		x    float64
		want int
	}{
		{-0.1, -1},
		{0, 0},
		{0.05, 0},
		{0.15, 1},
		{0.999, 9},
		{1, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.Bin(tt.x), "x=%v", tt.x)
	}

	lo, hi := a.Edges(3)
	assert.InDelta(t, 0.3, lo, 1e-12)
	assert.InDelta(t, 0.4, hi, 1e-12)
}

func newTestSparse() *Sparse3D {
	return NewSparse3D("h3",
		Axis{N: 200, Lo: 0, Hi: 200},
		Axis{N: 200, Lo: 0, Hi: 20},
		Axis{N: 90, Lo: 0.6, Hi: 1.5},
	)
}

func TestSparse3DFill(t *testing.T) {
	h := newTestSparse()

	h.Fill(12.5, 1.25, 0.892)
	h.Fill(12.7, 3.4, 0.905)
	h.Fill(80, 0.5, 1.1)
	h.Fill(250, 0.5, 1.1)
	h.Fill(-1, 0.5, 1.1)

	assert.Equal(t, int64(3), h.Entries())
	assert.Equal(t, 2, h.Outside())
	assert.Equal(t, []int{12, 80}, h.XBins())

	all := h.ProjectZAll()
	assert.Equal(t, "h3_z", all.Name())
	assert.InDelta(t, 3, all.Integral(), 1e-12)

	low := h.ProjectZ(0, 50)
	assert.InDelta(t, 2, low.Integral(), 1e-12)
	high := h.ProjectZ(50, 200)
	assert.InDelta(t, 1, high.Integral(), 1e-12)

	yz := h.ProjectYZ(0, 50)
	assert.Equal(t, "h3_yz", yz.Name())
	assert.InDelta(t, 2, yz.Integral(), 1e-12)
	grid := yz.GridXYZ()
	nx, ny := grid.Dims()
	assert.Equal(t, 200, nx)
	assert.Equal(t, 90, ny)
	assert.InDelta(t, 1, grid.Z(12, 29), 1e-12)
}

func TestSparse3DConcurrentFill(t *testing.T) {
	h := newTestSparse()

	const (
		workers = 8
		fills   = 500
	)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < fills; i++ {
				h.Fill(float64(w*10), 1, 0.9)
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, int64(workers*fills), h.Entries())
	assert.Len(t, h.XBins(), workers)
	assert.InDelta(t, workers*fills, h.ProjectZAll().Integral(), 1e-9)
}
