package pairing

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/decibelcooper/ckstar/aod"
	"github.com/decibelcooper/ckstar/cuts"
)

// Axis is a mixing axis. It is uniform with N bins on [Lo, Hi) unless Edges
// is set, in which case the bins are [Edges[i], Edges[i+1]).
type Axis struct {
	N     int       `yaml:"n,omitempty"`
	Lo    float64   `yaml:"lo,omitempty"`
	Hi    float64   `yaml:"hi,omitempty"`
	Edges []float64 `yaml:"edges,flow,omitempty"`
}

func Uniform(n int, lo, hi float64) Axis { return Axis{N: n, Lo: lo, Hi: hi} }

func Variable(edges ...float64) Axis { return Axis{Edges: edges} }

// UnmarshalYAML replaces the whole axis, so that a configured axis never
// mixes uniform and variable bins with a default one.
func (a *Axis) UnmarshalYAML(node *yaml.Node) error {
	type plain Axis
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*a = Axis(p)
	return nil
}

// Bin returns the bin holding x, or -1 when x is outside the axis.
func (a Axis) Bin(x float64) int {
	if len(a.Edges) > 0 {
		if x < a.Edges[0] || x >= a.Edges[len(a.Edges)-1] {
			return -1
		}
		i := sort.SearchFloat64s(a.Edges, x)
		if a.Edges[i] == x {
			return i
		}
		return i - 1
	}
	if x < a.Lo || x >= a.Hi {
		return -1
	}
	i := int(float64(a.N) * (x - a.Lo) / (a.Hi - a.Lo))
	if i >= a.N {
		i = a.N - 1
	}
	return i
}

func (a Axis) validate() error {
	if len(a.Edges) > 0 {
		if len(a.Edges) < 2 {
			return fmt.Errorf("need at least 2 edges, got %d", len(a.Edges))
		}
		if !sort.Float64sAreSorted(a.Edges) {
			return fmt.Errorf("edges %v are not sorted", a.Edges)
		}
		for i := 1; i < len(a.Edges); i++ {
			if a.Edges[i] == a.Edges[i-1] {
				return fmt.Errorf("duplicate edge %v", a.Edges[i])
			}
		}
		return nil
	}
	if a.N <= 0 {
		return fmt.Errorf("need a positive number of bins, got %d", a.N)
	}
	if a.Lo >= a.Hi {
		return fmt.Errorf("empty range [%v, %v)", a.Lo, a.Hi)
	}
	return nil
}

// MultVariable selects the collision column binned along the multiplicity
// axis of the mixing binning.
type MultVariable int

const (
	// NumContrib bins on the number of primary-vertex contributors.
	NumContrib MultVariable = iota + 1
	// EstimatorValue bins on the configured multiplicity estimator.
	EstimatorValue
)

func (v MultVariable) String() string {
	switch v {
	case NumContrib:
		return "num-contrib"
	case EstimatorValue:
		return "estimator"
	}
	return fmt.Sprintf("MultVariable(%d)", int(v))
}

func (v MultVariable) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *MultVariable) UnmarshalText(b []byte) error {
	switch string(b) {
	case "num-contrib":
		*v = NumContrib
	case "estimator":
		*v = EstimatorValue
	default:
		return fmt.Errorf("unknown mixing variable %q", b)
	}
	return nil
}

// Binning partitions collisions into mixing classes.
type Binning struct {
	Vertex   Axis         `yaml:"vertex"`
	Mult     Axis         `yaml:"multiplicity"`
	Variable MultVariable `yaml:"variable"`
}

// BinKey identifies a mixing class.
type BinKey struct {
	Vertex, Mult int
}

func (k BinKey) String() string { return fmt.Sprintf("(vz=%d, mult=%d)", k.Vertex, k.Mult) }

// Key returns the mixing class of c. ok is false when c falls outside either
// axis; such collisions never mix.
func (b Binning) Key(c aod.Collision, est cuts.Estimator) (key BinKey, ok bool) {
	var m float64
	switch b.Variable {
	case EstimatorValue:
		m = est.Value(c)
	default:
		m = float64(c.NumContrib)
	}
	key = BinKey{Vertex: b.Vertex.Bin(c.PosZ), Mult: b.Mult.Bin(m)}
	return key, key.Vertex >= 0 && key.Mult >= 0
}

// Mixing configures the mixed-event pass.
type Mixing struct {
	// Depth is the number of partners each anchor collision is paired with.
	Depth   int     `yaml:"depth"`
	Binning Binning `yaml:",inline"`
}

func DefaultMixing() Mixing {
	return Mixing{
		Depth: 5,
		Binning: Binning{
			Vertex:   Uniform(20, -10, 10),
			Mult:     Uniform(2000, 0, 10000),
			Variable: NumContrib,
		},
	}
}

// ErrInvalid is wrapped by every mixing validation failure.
var ErrInvalid = errors.New("invalid mixing")

func (m Mixing) Validate() error {
	var errs []error
	if m.Depth < 1 {
		errs = append(errs, fmt.Errorf("%w: depth must be at least 1, got %d", ErrInvalid, m.Depth))
	}
	if err := m.Binning.Vertex.validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: vertex axis: %w", ErrInvalid, err))
	}
	if err := m.Binning.Mult.validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: multiplicity axis: %w", ErrInvalid, err))
	}
	if m.Binning.Variable != NumContrib && m.Binning.Variable != EstimatorValue {
		errs = append(errs, fmt.Errorf("%w: unknown variable %d", ErrInvalid, m.Binning.Variable))
	}
	return errors.Join(errs...)
}

// Bin is one mixing class with the indices of its collisions in input order.
type Bin struct {
	Key    BinKey
	Events []int
}

// Pair is a mixed-event collision pair. First provides the pions and Second
// the K0S candidates.
type Pair struct {
	First, Second int
}

// Pairs pairs every collision of the bin with the depth collisions following
// it. No collision is paired with itself and no pair appears twice.
func (b Bin) Pairs(depth int) []Pair {
	var ps []Pair
	for i, anchor := range b.Events {
		for j := i + 1; j < len(b.Events) && j <= i+depth; j++ {
			ps = append(ps, Pair{First: anchor, Second: b.Events[j]})
		}
	}
	return ps
}

// Partition groups events by mixing class. Bins are ordered by key and keep
// the input order of their collisions.
func (b Binning) Partition(events []aod.Event, est cuts.Estimator) []Bin {
	idx := make(map[BinKey]int)
	var bins []Bin
	for i, ev := range events {
		key, ok := b.Key(ev.Collision, est)
		if !ok {
			continue
		}
		j, ok := idx[key]
		if !ok {
			j = len(bins)
			idx[key] = j
			bins = append(bins, Bin{Key: key})
		}
		bins[j].Events = append(bins[j].Events, i)
	}
	sort.Slice(bins, func(i, j int) bool {
		ki, kj := bins[i].Key, bins[j].Key
		if ki.Vertex != kj.Vertex {
			return ki.Vertex < kj.Vertex
		}
		return ki.Mult < kj.Mult
	})
	return bins
}

// MixingPairs lists the collision pairs of the mixed-event pass.
func MixingPairs(events []aod.Event, m Mixing, est cuts.Estimator) []Pair {
	var ps []Pair
	for _, bin := range m.Binning.Partition(events, est) {
		ps = append(ps, bin.Pairs(m.Depth)...)
	}
	return ps
}
