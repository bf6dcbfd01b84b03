package genome

import "math/rand"

// ClockSiteCount is the number of CpG sites in the methylation clock.
const ClockSiteCount = 353

// Epigenome tracks DNA methylation and chromatin state. Global
// methylation declines with age while clock-site methylation rises
// predictably, which is what makes the epigenetic age estimate work.
type Epigenome struct {
	GlobalMethylation float64      `json:"global_methylation"`
	ClockSites        []float64    `json:"clock_sites"`
	EpigeneticNoise   float64      `json:"epigenetic_noise"`
	HistoneMarks      HistoneState `json:"histone_marks"`
}

// DefaultEpigenome is the newborn epigenetic state.
func DefaultEpigenome() Epigenome {
	return Epigenome{
		GlobalMethylation: 0.7,
		ClockSites:        make([]float64, ClockSiteCount),
		HistoneMarks:      DefaultHistoneState(),
	}
}

// EpigeneticAge estimates biological age in years from mean clock-site
// methylation.
func (e *Epigenome) EpigeneticAge(p Params) float64 {
	if len(e.ClockSites) == 0 {
		return 0
	}
	sum := 0.0
	for _, site := range e.ClockSites {
		sum += site
	}
	return sum / float64(len(e.ClockSites)) * p.ClockScaleYears
}

// AgeOneYear applies a year of epigenetic drift: global
// hypomethylation, deterministic plus stochastic clock-site gain, and
// noise accumulation.
func (e *Epigenome) AgeOneYear(p Params, rng *rand.Rand) {
	e.GlobalMethylation -= rng.Float64() * 0.002
	if e.GlobalMethylation < p.GlobalMethylationFloor {
		e.GlobalMethylation = p.GlobalMethylationFloor
	}

	for i := range e.ClockSites {
		e.ClockSites[i] += 1.0 / p.ClockScaleYears
		e.ClockSites[i] += rng.Float64() * 0.005
		e.ClockSites[i] = clamp(e.ClockSites[i], 0, 1)
	}

	e.EpigeneticNoise += rng.Float64() * 0.01

	e.HistoneMarks.ageOneYear(rng)
}

// HistoneState tracks the major histone modification levels.
type HistoneState struct {
	H3K4me3  float64 `json:"h3k4me3"`
	H3K27me3 float64 `json:"h3k27me3"`
	H3K9me3  float64 `json:"h3k9me3"`
	H4K16ac  float64 `json:"h4k16ac"`
}

// DefaultHistoneState is the young chromatin state.
func DefaultHistoneState() HistoneState {
	return HistoneState{H3K4me3: 1, H3K27me3: 1, H3K9me3: 1, H4K16ac: 1}
}

// Active marks and heterochromatin decay; H3K27me3 redistributes
// rather than simply declining.
func (h *HistoneState) ageOneYear(rng *rand.Rand) {
	h.H3K4me3 -= rng.Float64() * 0.003
	h.H3K9me3 -= rng.Float64() * 0.004
	h.H4K16ac -= rng.Float64() * 0.002
	h.H3K27me3 += rng.Float64()*0.001 - 0.0005

	h.H3K4me3 = clamp(h.H3K4me3, 0.3, 1)
	h.H3K27me3 = clamp(h.H3K27me3, 0.3, 1)
	h.H3K9me3 = clamp(h.H3K9me3, 0.2, 1)
	h.H4K16ac = clamp(h.H4K16ac, 0.3, 1)
}
