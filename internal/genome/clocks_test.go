package genome

import (
	"math"
	"math/rand"
	"testing"
)

func TestEpigeneticAgeTracksDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := DefaultParams()
	e := DefaultEpigenome()

	if age := e.EpigeneticAge(p); age != 0 {
		t.Fatalf("newborn epigenetic age = %v, want 0", age)
	}

	for year := 0; year < 50; year++ {
		e.AgeOneYear(p, rng)
	}
	age := e.EpigeneticAge(p)
	// Deterministic drift alone gives 50 years; the stochastic
	// component only adds.
	if age < 50 {
		t.Fatalf("epigenetic age after 50 years = %v, want >= 50", age)
	}
	if age > p.ClockScaleYears {
		t.Fatalf("epigenetic age exceeds clock scale: %v", age)
	}
	if e.GlobalMethylation < p.GlobalMethylationFloor {
		t.Fatalf("global methylation below floor: %v", e.GlobalMethylation)
	}
}

func TestHistoneMarksStayClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := DefaultParams()
	e := DefaultEpigenome()

	for year := 0; year < 200; year++ {
		e.AgeOneYear(p, rng)
	}
	h := e.HistoneMarks
	if h.H3K4me3 < 0.3 || h.H3K27me3 < 0.3 || h.H3K9me3 < 0.2 || h.H4K16ac < 0.3 {
		t.Fatalf("histone marks below floor: %+v", h)
	}
	if h.H3K4me3 > 1 || h.H3K27me3 > 1 || h.H3K9me3 > 1 || h.H4K16ac > 1 {
		t.Fatalf("histone marks above ceiling: %+v", h)
	}
}

func neutralGenome() *Genome {
	g := &Genome{}
	for i := range g.NuclearGenes {
		g.NuclearGenes[i] = DefaultGeneState()
	}
	for i := range g.Telomeres {
		g.Telomeres[i] = DefaultTelomere()
	}
	g.MtDNA = DefaultMitochondrialDNA()
	g.Epigenome = DefaultEpigenome()
	return g
}

func TestOptimalSleepHoursRange(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	p := DefaultParams()
	for trial := 0; trial < 100; trial++ {
		g := NewRandom(p, rng)
		optimal := g.OptimalSleepHours(p)
		if optimal < p.MinSleepHours || optimal > p.MaxSleepHours {
			t.Fatalf("optimal sleep %v outside [%v, %v]", optimal, p.MinSleepHours, p.MaxSleepHours)
		}
	}
}

func TestShortSleepPhenotype(t *testing.T) {
	p := DefaultParams()
	g := neutralGenome()
	baseline := g.OptimalSleepHours(p)

	g.NuclearGenes[DEC2].Variants = []Variant{{Effect: LossOfFunction, LongevityEffect: 0.2}}
	short := g.OptimalSleepHours(p)
	if short >= baseline {
		t.Fatalf("DEC2 loss did not reduce sleep need: %v -> %v", baseline, short)
	}
}

func TestSleepDeviationAgingFactor(t *testing.T) {
	p := DefaultParams()
	g := neutralGenome()
	optimal := g.OptimalSleepHours(p)

	if f := g.SleepDeviationAgingFactor(p, optimal); math.Abs(f-1.0) > 0.01 {
		t.Fatalf("factor at optimum = %v, want ~1.0", f)
	}

	deprived := g.SleepDeviationAgingFactor(p, optimal-3)
	excess := g.SleepDeviationAgingFactor(p, optimal+3)
	if deprived <= 1.0 || excess <= 1.0 {
		t.Fatalf("deviation factors not above 1: short=%v long=%v", deprived, excess)
	}
	// Short sleep carries the asymmetry penalty.
	if deprived <= excess {
		t.Fatalf("short sleep %v not worse than long sleep %v", deprived, excess)
	}
}

func TestCircadianRobustnessRange(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	p := DefaultParams()
	for trial := 0; trial < 100; trial++ {
		g := NewRandom(p, rng)
		r := g.CircadianRobustness(p)
		if r < 0 || r > 1 {
			t.Fatalf("circadian robustness out of range: %v", r)
		}
	}
}
