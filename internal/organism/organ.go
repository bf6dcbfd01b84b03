package organism

import (
	"fmt"
	"math/rand"

	"geras/internal/cell"
	"geras/internal/genome"
)

// Organ identifies one of the tracked organ systems. Per-organ state
// lives in a fixed array indexed by the Organ ordinal.
type Organ int

const (
	OrganBrain Organ = iota
	OrganHeart
	OrganLiver
	OrganKidney
	OrganLung
	OrganPancreas
	OrganImmune
	OrganVasculature
	OrganMuscle
	OrganBone

	organSentinel
)

// OrganCount is the number of tracked organ systems.
const OrganCount = int(organSentinel)

var organNames = [OrganCount]string{
	"brain", "heart", "liver", "kidney", "lung",
	"pancreas", "immune", "vasculature", "muscle", "bone",
}

func (o Organ) String() string {
	if o < 0 || int(o) >= OrganCount {
		return fmt.Sprintf("Organ(%d)", int(o))
	}
	return organNames[o]
}

func (o Organ) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Organ) UnmarshalText(text []byte) error {
	for i, n := range organNames {
		if n == string(text) {
			*o = Organ(i)
			return nil
		}
	}
	return fmt.Errorf("unknown organ: %q", string(text))
}

// AllOrgans returns every organ in ordinal order.
func AllOrgans() []Organ {
	out := make([]Organ, OrganCount)
	for i := range out {
		out[i] = Organ(i)
	}
	return out
}

// Tissue maps the organ to its dominant tissue.
func (o Organ) Tissue() genome.Tissue {
	switch o {
	case OrganBrain:
		return genome.TissueBrain
	case OrganHeart:
		return genome.TissueHeart
	case OrganLiver:
		return genome.TissueLiver
	case OrganKidney:
		return genome.TissueKidney
	case OrganLung:
		return genome.TissueLung
	case OrganPancreas:
		return genome.TissuePancreas
	case OrganImmune:
		return genome.TissueImmune
	case OrganVasculature:
		return genome.TissueBlood
	case OrganMuscle:
		return genome.TissueMuscle
	case OrganBone:
		return genome.TissueBoneMarrow
	default:
		return genome.TissueBlood
	}
}

func (o Organ) cellCount() uint64 {
	switch o {
	case OrganBrain:
		return 86_000_000_000
	case OrganLiver:
		return 100_000_000_000
	case OrganHeart:
		return 2_000_000_000
	case OrganKidney:
		return 1_000_000_000
	case OrganLung:
		return 480_000_000_000
	default:
		return 10_000_000_000
	}
}

// criticalOrgan reports whether failure of this organ alone is lethal.
func (o Organ) critical() bool {
	switch o {
	case OrganHeart, OrganBrain, OrganLung, OrganLiver, OrganKidney:
		return true
	default:
		return false
	}
}

// OrganState is the aging state of one organ system.
type OrganState struct {
	Function          float64          `json:"function"`
	Damage            float64          `json:"damage"`
	Inflammation      float64          `json:"inflammation"`
	SenescentFraction float64          `json:"senescent_fraction"`
	Fibrosis          float64          `json:"fibrosis"`
	Cells             *cell.Population `json:"cells"`
}

// NewOrganState creates a healthy organ backed by a simulated cell
// sample.
func NewOrganState(cfg *Config, organ Organ, genomeID string, rng *rand.Rand) OrganState {
	return OrganState{
		Function: 1.0,
		Cells: cell.NewPopulation(&cfg.Cell, organ.Tissue(), organ.cellCount(),
			cfg.SampleCellsPerOrgan, genomeID, rng),
	}
}

// ReserveCapacity is the functional headroom above the 30% failure
// floor.
func (s *OrganState) ReserveCapacity() float64 {
	reserve := (s.Function - 0.3) / 0.7
	if reserve < 0 {
		return 0
	}
	return reserve
}

// InFailure reports whether the organ has dropped below the failure
// threshold.
func (s *OrganState) InFailure(cfg *Config) bool {
	return s.Function < cfg.CriticalOrganFunction
}
