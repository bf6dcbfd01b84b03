package genome

import (
	"math"
	"math/rand"
)

// MitochondrialDNA tracks the mutational load and respiratory complex
// function of the mitochondrial genome. mtDNA lacks histone protection
// and accumulates damage roughly an order of magnitude faster than
// nuclear DNA.
type MitochondrialDNA struct {
	CopyNumber       int     `json:"copy_number"`
	DeletionFraction float64 `json:"deletion_fraction"`
	MutationFraction float64 `json:"mutation_fraction"`
	Heteroplasmy     float64 `json:"heteroplasmy"`
	ComplexI         float64 `json:"complex_i_function"`
	ComplexIII       float64 `json:"complex_iii_function"`
	ComplexIV        float64 `json:"complex_iv_function"`
	ComplexV         float64 `json:"complex_v_function"`
}

// DefaultMitochondrialDNA is the undamaged newborn state.
func DefaultMitochondrialDNA() MitochondrialDNA {
	return MitochondrialDNA{
		CopyNumber: 1000,
		ComplexI:   1.0,
		ComplexIII: 1.0,
		ComplexIV:  1.0,
		ComplexV:   1.0,
	}
}

// RespiratoryEfficiency is the geometric mean of the four respiratory
// complex functions.
func (m *MitochondrialDNA) RespiratoryEfficiency() float64 {
	product := m.ComplexI * m.ComplexIII * m.ComplexIV * m.ComplexV
	return math.Sqrt(math.Sqrt(product))
}

// AgeOneYear applies a year of mutational load. Damaged mtDNA gains a
// replicative advantage past the clonal expansion threshold, and
// complex function declines once heteroplasmy crosses the dysfunction
// threshold.
func (m *MitochondrialDNA) AgeOneYear(p Params, oxidativeStress float64, rng *rand.Rand) {
	damageRate := p.MtBaseDamageRate * (1.0 + oxidativeStress)

	m.DeletionFraction += rng.Float64() * damageRate
	m.MutationFraction += rng.Float64() * damageRate * 0.5
	m.Heteroplasmy = m.DeletionFraction + m.MutationFraction

	if m.Heteroplasmy > p.MtClonalExpansionThreshold {
		m.Heteroplasmy *= 1.0 + rng.Float64()*0.05
	}

	if m.Heteroplasmy > p.MtDysfunctionThreshold {
		decline := (m.Heteroplasmy - p.MtDysfunctionThreshold) * 0.1
		m.ComplexI = math.Max(m.ComplexI-decline, 0.1)
		m.ComplexIII = math.Max(m.ComplexIII-decline*0.8, 0.1)
		m.ComplexIV = math.Max(m.ComplexIV-decline*0.6, 0.1)
		m.ComplexV = math.Max(m.ComplexV-decline*0.4, 0.1)
	}
}
