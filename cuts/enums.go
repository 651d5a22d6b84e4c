package cuts

import "fmt"

// TrackPolicy selects which primary-track condition SelectTrack evaluates.
type TrackPolicy int

const (
	// CustomDCA accepts global tracks, PV contributors or tracks with enough
	// ITS clusters.
	CustomDCA TrackPolicy = iota + 1
	// ManualDCA accepts global tracks without the DCA requirement, PV
	// contributors, tracks inside either DCA window or with enough ITS clusters.
	ManualDCA
)

func (p TrackPolicy) String() string {
	switch p {
	case CustomDCA:
		return "custom-dca"
	case ManualDCA:
		return "manual-dca"
	}
	return fmt.Sprintf("TrackPolicy(%d)", int(p))
}

func (p TrackPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *TrackPolicy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "custom-dca":
		*p = CustomDCA
	case "manual-dca":
		*p = ManualDCA
	default:
		return fmt.Errorf("unknown track policy %q", b)
	}
	return nil
}

// Estimator selects the collision multiplicity estimator.
type Estimator int

const (
	// FT0Sum is the sum of the z-equalized FT0A and FT0C multiplicities.
	FT0Sum Estimator = iota + 1
	CentFT0C
	CentFT0M
)

// EstimatorFromFlags maps the two boolean switches of the legacy
// configuration onto an Estimator. multFT0 wins over centFT0C.
func EstimatorFromFlags(multFT0, centFT0C bool) Estimator {
	switch {
	case multFT0:
		return FT0Sum
	case centFT0C:
		return CentFT0C
	default:
		return CentFT0M
	}
}

func (e Estimator) valid() bool { return e >= FT0Sum && e <= CentFT0M }

func (e Estimator) String() string {
	switch e {
	case FT0Sum:
		return "ft0-sum"
	case CentFT0C:
		return "cent-ft0c"
	case CentFT0M:
		return "cent-ft0m"
	}
	return fmt.Sprintf("Estimator(%d)", int(e))
}

func (e Estimator) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *Estimator) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ft0-sum":
		*e = FT0Sum
	case "cent-ft0c":
		*e = CentFT0C
	case "cent-ft0m":
		*e = CentFT0M
	default:
		return fmt.Errorf("unknown multiplicity estimator %q", b)
	}
	return nil
}
