// Package hist provides the accumulators the pairing engine fills: a
// multiplicity-sliced 3D mass histogram and the quality-assurance set.
package hist

import (
	"fmt"
	"sort"
	"sync"

	"go-hep.org/x/hep/hbook"
)

// Axis is a uniform binning.
type Axis struct {
	N      int
	Lo, Hi float64
}

func (a Axis) Bin(x float64) int {
	if x < a.Lo || x >= a.Hi {
		return -1
	}
	i := int(float64(a.N) * (x - a.Lo) / (a.Hi - a.Lo))
	if i >= a.N {
		i = a.N - 1
	}
	return i
}

func (a Axis) Edges(i int) (lo, hi float64) {
	w := (a.Hi - a.Lo) / float64(a.N)
	return a.Lo + float64(i)*w, a.Lo + float64(i+1)*w
}

// Sparse3D is a (x, y, z) histogram stored as one hbook.H2D over (y, z) per
// populated x bin. Slices are allocated on first fill. Fill is safe for
// concurrent use.
type Sparse3D struct {
	name    string
	x, y, z Axis

	mu      sync.Mutex
	slices  map[int]*hbook.H2D
	xproj   *hbook.H1D
	yproj   *hbook.H1D
	entries int64
	outside int
}

func NewSparse3D(name string, x, y, z Axis) *Sparse3D {
	xproj := hbook.NewH1D(x.N, x.Lo, x.Hi)
	xproj.Ann["name"] = name + "_x"
	yproj := hbook.NewH1D(y.N, y.Lo, y.Hi)
	yproj.Ann["name"] = name + "_y"
	return &Sparse3D{
		name:   name,
		x:      x,
		y:      y,
		z:      z,
		slices: make(map[int]*hbook.H2D),
		xproj:  xproj,
		yproj:  yproj,
	}
}

func (h *Sparse3D) Name() string { return h.name }

func (h *Sparse3D) Fill(x, y, z float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.x.Bin(x)
	if i < 0 {
		h.outside++
		return
	}
	s, ok := h.slices[i]
	if !ok {
		s = hbook.NewH2D(h.y.N, h.y.Lo, h.y.Hi, h.z.N, h.z.Lo, h.z.Hi)
		s.Ann["name"] = h.sliceName(i)
		h.slices[i] = s
	}
	s.Fill(y, z, 1)
	h.xproj.Fill(x, 1)
	h.yproj.Fill(y, 1)
	h.entries++
}

func (h *Sparse3D) sliceName(i int) string {
	return fmt.Sprintf("%s_x%04d", h.name, i)
}

// Entries is the number of fills stored in the histogram.
func (h *Sparse3D) Entries() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries
}

// Outside is the number of fills dropped because x fell outside the x axis.
func (h *Sparse3D) Outside() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outside
}

// XBins lists the populated x bins in increasing order.
func (h *Sparse3D) XBins() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	bins := make([]int, 0, len(h.slices))
	for i := range h.slices {
		bins = append(bins, i)
	}
	sort.Ints(bins)
	return bins
}

// ProjectZ sums the z distribution of all x bins whose lower edge lies in
// [xlo, xhi).
func (h *Sparse3D) ProjectZ(xlo, xhi float64) *hbook.H1D {
	h.mu.Lock()
	defer h.mu.Unlock()

	proj := hbook.NewH1D(h.z.N, h.z.Lo, h.z.Hi)
	proj.Ann["name"] = h.name + "_z"
	for i, s := range h.slices {
		lo, _ := h.x.Edges(i)
		if lo < xlo || lo >= xhi {
			continue
		}
		grid := s.GridXYZ()
		nx, nz := grid.Dims()
		for c := 0; c < nx; c++ {
			for r := 0; r < nz; r++ {
				if w := grid.Z(c, r); w != 0 {
					proj.Fill(grid.Y(r), w)
				}
			}
		}
	}
	return proj
}

// ProjectZAll is ProjectZ over the full x axis.
func (h *Sparse3D) ProjectZAll() *hbook.H1D {
	return h.ProjectZ(h.x.Lo, h.x.Hi)
}

// ProjectYZ sums the (y, z) slices of all x bins whose lower edge lies in
// [xlo, xhi).
func (h *Sparse3D) ProjectYZ(xlo, xhi float64) *hbook.H2D {
	h.mu.Lock()
	defer h.mu.Unlock()

	proj := hbook.NewH2D(h.y.N, h.y.Lo, h.y.Hi, h.z.N, h.z.Lo, h.z.Hi)
	proj.Ann["name"] = h.name + "_yz"
	for i, s := range h.slices {
		lo, _ := h.x.Edges(i)
		if lo < xlo || lo >= xhi {
			continue
		}
		grid := s.GridXYZ()
		nx, ny := grid.Dims()
		for c := 0; c < nx; c++ {
			for r := 0; r < ny; r++ {
				if w := grid.Z(c, r); w != 0 {
					proj.Fill(grid.X(c), grid.Y(r), w)
				}
			}
		}
	}
	return proj
}
