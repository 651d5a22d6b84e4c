package hist

import (
	"fmt"
	"math"
	"strings"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"
)

// Writer is anything that stores its histograms in a ROOT directory.
type Writer interface {
	WriteTo(dir riofs.Directory) error
}

// WriteFile creates fname and stores every writer in it.
func WriteFile(fname string, ws ...Writer) error {
	f, err := groot.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", fname, err)
	}
	for _, w := range ws {
		if err := w.WriteTo(f); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", fname, err)
	}
	return nil
}

func put(dir riofs.Directory, name string, obj root.Object) error {
	if err := dir.Put(name, obj); err != nil {
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	return nil
}

func putH1D(dir riofs.Directory, h *hbook.H1D) error {
	return put(dir, h.Name(), rhist.NewH1DFrom(h))
}

// WriteTo stores the x, y and z projections as <name>_x, <name>_y and
// <name>_z, and every populated slice as <name>_xNNNN.
func (h *Sparse3D) WriteTo(dir riofs.Directory) error {
	if err := putH1D(dir, h.ProjectZAll()); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := putH1D(dir, h.xproj); err != nil {
		return err
	}
	if err := putH1D(dir, h.yproj); err != nil {
		return err
	}
	for i, s := range h.slices {
		if err := put(dir, h.sliceName(i), rhist.NewH2DFrom(s)); err != nil {
			return err
		}
	}
	return nil
}

// ReadSparse3D rebuilds a Sparse3D written by WriteTo.
func ReadSparse3D(dir riofs.Directory, name string) (*Sparse3D, error) {
	xproj, err := getH1D(dir, name+"_x")
	if err != nil {
		return nil, err
	}
	yproj, err := getH1D(dir, name+"_y")
	if err != nil {
		return nil, err
	}
	zproj, err := getH1D(dir, name+"_z")
	if err != nil {
		return nil, err
	}

	x := Axis{N: xproj.Len(), Lo: xproj.XMin(), Hi: xproj.XMax()}
	y := Axis{N: yproj.Len(), Lo: yproj.XMin(), Hi: yproj.XMax()}
	z := Axis{N: zproj.Len(), Lo: zproj.XMin(), Hi: zproj.XMax()}
	h := NewSparse3D(name, x, y, z)
	h.xproj = xproj
	h.yproj = yproj
	h.entries = int64(math.Round(xproj.Integral()))

	prefix := name + "_x"
	for _, key := range dir.Keys() {
		kname := key.Name()
		if !strings.HasPrefix(kname, prefix) || kname == prefix {
			continue
		}
		var i int
		if _, err := fmt.Sscanf(kname[len(prefix):], "%04d", &i); err != nil {
			continue
		}
		obj, err := dir.Get(kname)
		if err != nil {
			return nil, fmt.Errorf("could not read %q: %w", kname, err)
		}
		h2, ok := obj.(rhist.H2)
		if !ok {
			return nil, fmt.Errorf("object %q is a %T, not a 2D histogram", kname, obj)
		}
		h.slices[i] = rootcnv.H2D(h2)
	}
	return h, nil
}

func getH1D(dir riofs.Directory, name string) (*hbook.H1D, error) {
	obj, err := dir.Get(name)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", name, err)
	}
	h1, ok := obj.(rhist.H1)
	if !ok {
		return nil, fmt.Errorf("object %q is a %T, not a 1D histogram", name, obj)
	}
	return rootcnv.H1D(h1), nil
}

// ReadH1D reads a single 1D histogram from fname.
func ReadH1D(fname, name string) (*hbook.H1D, error) {
	f, err := groot.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer f.Close()
	return getH1D(f, name)
}

// ReadSparse3DFile opens fname and reads the named Sparse3D from it.
func ReadSparse3DFile(fname, name string) (*Sparse3D, error) {
	f, err := groot.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer f.Close()
	return ReadSparse3D(f, name)
}
