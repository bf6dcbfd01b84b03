package cell

import (
	"math/rand"

	"geras/internal/genome"
)

// TypeForTissue maps a tissue to its dominant cell type.
func TypeForTissue(tissue genome.Tissue) Type {
	switch tissue {
	case genome.TissueSkin, genome.TissueIntestine:
		return Epithelial
	case genome.TissueBrain:
		return Neuron
	case genome.TissueHeart:
		return Cardiomyocyte
	case genome.TissueLiver:
		return Hepatocyte
	case genome.TissueMuscle:
		return Myocyte
	case genome.TissueAdipose:
		return Adipocyte
	case genome.TissueBoneMarrow:
		return StemCell
	case genome.TissueImmune:
		return ImmuneCell
	default:
		return Fibroblast
	}
}

// Population represents the cells of one tissue: a small individually
// simulated sample standing in for the full count.
type Population struct {
	Tissue            genome.Tissue `json:"tissue"`
	TotalCells        uint64        `json:"total_cells"`
	SampleCells       []*Cell       `json:"sample_cells"`
	SenescentFraction float64       `json:"senescent_fraction"`
	AverageDamage     float64       `json:"average_damage"`
	StemCells         uint64        `json:"stem_cells"`
	StemCellFunction  float64       `json:"stem_cell_function"`
}

// NewPopulation creates a tissue population with sampleSize simulated
// cells. Roughly 0.1% of the total count is treated as stem cells.
func NewPopulation(cfg *Config, tissue genome.Tissue, totalCells uint64, sampleSize int, genomeID string, rng *rand.Rand) *Population {
	cellType := TypeForTissue(tissue)
	sample := make([]*Cell, sampleSize)
	for i := range sample {
		sample[i] = New(cfg, genomeID, cellType, tissue, rng)
	}
	return &Population{
		Tissue:           tissue,
		TotalCells:       totalCells,
		SampleCells:      sample,
		StemCells:        totalCells / 1000,
		StemCellFunction: 1.0,
	}
}

// UpdateStatistics recomputes the aggregate fractions from the live
// sample.
func (p *Population) UpdateStatistics() {
	alive := 0
	senescent := 0
	damage := 0.0
	for _, c := range p.SampleCells {
		if !c.Alive {
			continue
		}
		alive++
		if c.Senescent {
			senescent++
		}
		damage += c.Damage.Total()
	}
	if alive == 0 {
		return
	}
	p.SenescentFraction = float64(senescent) / float64(alive)
	p.AverageDamage = damage / float64(alive)
}

// SASPOutput is the mean senescence-associated secretion across the
// sample, including dead slots in the denominator.
func (p *Population) SASPOutput() float64 {
	if len(p.SampleCells) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range p.SampleCells {
		if c.Alive && c.Senescent {
			total += c.SASPOutput
		}
	}
	return total / float64(len(p.SampleCells))
}
