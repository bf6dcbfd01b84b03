package population

import (
	"context"
	"testing"

	"geras/internal/genome"
	"geras/internal/organism"
)

// testConfig trims the per-organ cell sample so cohort tests stay
// fast.
func testConfig(size int) Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = size
	cfg.Parallel = false
	cfg.SimulateInterventions = false
	cfg.Organism.SampleCellsPerOrgan = 20
	return cfg
}

func TestDetailedTrajectoriesKeepBiomarkerHistory(t *testing.T) {
	cfg := testConfig(5)
	cfg.DetailedTrajectories = true

	sim := NewSimulator(cfg, nil)
	results, err := sim.Run(context.Background(), 3)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for i, l := range results.Lives {
		if len(l.Trajectory) == 0 {
			t.Fatalf("life %d: empty trajectory despite detailed run", i)
		}
		for j := 1; j < len(l.Trajectory); j++ {
			if l.Trajectory[j].Age <= l.Trajectory[j-1].Age {
				t.Fatalf("life %d: trajectory ages not increasing", i)
			}
		}
	}

	plain, err := NewSimulator(testConfig(5), nil).Run(context.Background(), 3)
	if err != nil {
		t.Fatalf("plain run: %v", err)
	}
	for i, l := range plain.Lives {
		if len(l.Trajectory) != 0 {
			t.Fatalf("life %d: trajectory kept without detailed flag", i)
		}
	}
}

func TestRunProducesOneSummaryPerLife(t *testing.T) {
	sim := NewSimulator(testConfig(40), nil)
	results, err := sim.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(results.Lives) != 40 {
		t.Fatalf("got %d lives, want 40", len(results.Lives))
	}
	for i, l := range results.Lives {
		if l.Lifespan <= 0 || l.Lifespan > 150 {
			t.Fatalf("life %d: lifespan %v out of range", i, l.Lifespan)
		}
		if l.DeathCause.String() == "" {
			t.Fatalf("life %d: empty death cause", i)
		}
		if l.LifestyleScore < 0 || l.LifestyleScore > 1 {
			t.Fatalf("life %d: lifestyle score %v out of range", i, l.LifestyleScore)
		}
	}

	s := results.Statistics
	if s.MeanLifespan <= 0 {
		t.Fatalf("mean lifespan %v", s.MeanLifespan)
	}
	if s.CentenarianRate < 0 || s.CentenarianRate > 1 {
		t.Fatalf("centenarian rate %v out of range", s.CentenarianRate)
	}
	if len(s.TopDeathCauses) == 0 || len(s.TopDeathCauses) > 5 {
		t.Fatalf("got %d top death causes", len(s.TopDeathCauses))
	}
	for i := 1; i < len(s.TopDeathCauses); i++ {
		if s.TopDeathCauses[i].Fraction > s.TopDeathCauses[i-1].Fraction {
			t.Fatal("top death causes not sorted by descending fraction")
		}
	}
}

func TestRunRejectsEmptyPopulation(t *testing.T) {
	sim := NewSimulator(testConfig(0), nil)
	if _, err := sim.Run(context.Background(), 1); err == nil {
		t.Fatal("expected an error for an empty population")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	seq := NewSimulator(testConfig(20), nil)
	seqResults, err := seq.Run(context.Background(), 7)
	if err != nil {
		t.Fatalf("sequential run: %v", err)
	}

	cfg := testConfig(20)
	cfg.Parallel = true
	cfg.Workers = 4
	par := NewSimulator(cfg, nil)
	parResults, err := par.Run(context.Background(), 7)
	if err != nil {
		t.Fatalf("parallel run: %v", err)
	}

	for i := range seqResults.Lives {
		if seqResults.Lives[i].Lifespan != parResults.Lives[i].Lifespan {
			t.Fatalf("life %d: sequential lifespan %v != parallel %v",
				i, seqResults.Lives[i].Lifespan, parResults.Lives[i].Lifespan)
		}
		if seqResults.Lives[i].DeathCause.String() != parResults.Lives[i].DeathCause.String() {
			t.Fatalf("life %d: death causes differ", i)
		}
	}
	if seqResults.Statistics.MeanLifespan != parResults.Statistics.MeanLifespan {
		t.Fatal("statistics differ between sequential and parallel runs")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := NewSimulator(testConfig(40), nil)
	if _, err := sim.Run(ctx, 1); err == nil {
		t.Fatal("expected a cancellation error")
	}
}

func TestInterventionComparisons(t *testing.T) {
	cfg := testConfig(10)
	cfg.SimulateInterventions = true
	cfg.InterventionSampleMin = 3

	sim := NewSimulator(cfg, nil)
	results, err := sim.Run(context.Background(), 3)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(results.Interventions) != len(comparedInterventions) {
		t.Fatalf("got %d intervention comparisons, want %d",
			len(results.Interventions), len(comparedInterventions))
	}
	for i, c := range results.Interventions {
		if c.SampleSize != 3 {
			t.Fatalf("comparison %d: sample size %d, want 3", i, c.SampleSize)
		}
		if c.LifespanDelta != c.TreatmentMeanLifespan-c.ControlMeanLifespan {
			t.Fatalf("comparison %d: inconsistent delta", i)
		}
		if i > 0 && c.LifespanDelta > results.Interventions[i-1].LifespanDelta {
			t.Fatal("interventions not sorted by descending delta")
		}
	}
}

func syntheticLives() []LifeSummary {
	lives := make([]LifeSummary, 0, 200)
	for i := 0; i < 200; i++ {
		l := LifeSummary{
			Lifespan:       80,
			DeathCause:     organism.DeathCause{Kind: organism.DeathNatural},
			LifestyleScore: 0.3,
			Midlife: &MidlifeBiomarkers{
				Inflammation:          0.1,
				SenescenceBurden:      0.05,
				MitochondrialFunction: 0.9,
			},
		}
		if i < 50 {
			// Carriers of an enhanced FOXO3 allele with a longer life,
			// a better lifestyle, and an inflamed midlife.
			l.Lifespan = 95
			l.LifestyleScore = 0.8
			l.Variants = []GeneVariantSummary{{
				Gene:            genome.FOXO3,
				Effect:          genome.EnhancedFunction,
				LongevityEffect: 0.4,
			}}
			l.Midlife.Inflammation = 0.5
			l.Diseases = []DiseaseOnset{{Type: organism.Cancer, OnsetAge: 60}}
			l.DeathCause = organism.DeathCause{
				Kind:    organism.DeathDisease,
				Disease: organism.Cancer,
			}
		}
		lives = append(lives, l)
	}
	return lives
}

func TestStatisticsFromSyntheticCohort(t *testing.T) {
	s := calculateStatistics(syntheticLives())

	// 50 lives at 95 and 150 at 80.
	want := (50*95.0 + 150*80.0) / 200.0
	if s.MeanLifespan != want {
		t.Fatalf("mean lifespan = %v, want %v", s.MeanLifespan, want)
	}
	if s.CentenarianRate != 0 {
		t.Fatalf("centenarian rate = %v, want 0", s.CentenarianRate)
	}
	if s.TopDeathCauses[0].Cause != "natural" || s.TopDeathCauses[0].Fraction != 0.75 {
		t.Fatalf("top cause = %+v, want natural at 0.75", s.TopDeathCauses[0])
	}

	r, ok := s.GeneLifespanCorrelations[genome.FOXO3]
	if !ok {
		t.Fatal("FOXO3 correlation missing")
	}
	if r <= 0 {
		t.Fatalf("FOXO3 correlation = %v, want positive", r)
	}
	if s.LifestyleLifespanCorrelation <= 0 {
		t.Fatalf("lifestyle correlation = %v, want positive", s.LifestyleLifespanCorrelation)
	}
}

func TestGenePatternMining(t *testing.T) {
	patterns := mineGenePatterns(syntheticLives())

	var foxo3 *CausalPattern
	for i := range patterns {
		if patterns[i].Cause.Kind == CauseGene && patterns[i].Cause.Gene == genome.FOXO3 {
			foxo3 = &patterns[i]
		}
	}
	if foxo3 == nil {
		t.Fatal("FOXO3 pattern not mined")
	}
	// Carrier mean 95 vs cohort mean 83.75.
	if foxo3.EffectSize != 11.25 {
		t.Fatalf("effect size = %v, want 11.25", foxo3.EffectSize)
	}
	if foxo3.SupportingLives != 50 {
		t.Fatalf("supporting lives = %d, want 50", foxo3.SupportingLives)
	}
	if foxo3.Strength != 1.125 {
		t.Fatalf("strength = %v, want 1.125", foxo3.Strength)
	}
}

func TestBiomarkerPatternMining(t *testing.T) {
	patterns := mineBiomarkerPatterns(syntheticLives())

	var inflammation *CausalPattern
	for i := range patterns {
		if patterns[i].Cause.Kind == CauseBiomarker && patterns[i].Cause.Name == "inflammation" {
			inflammation = &patterns[i]
		}
	}
	if inflammation == nil {
		t.Fatal("inflammation pattern not mined")
	}
	// High inflammation lives at 95, low at 80: the effect is negative
	// because the inflamed group happens to live longer here.
	if inflammation.EffectSize != -15 {
		t.Fatalf("effect size = %v, want -15", inflammation.EffectSize)
	}
	if inflammation.SupportingLives != 200 {
		t.Fatalf("supporting lives = %d, want 200", inflammation.SupportingLives)
	}
	if inflammation.TemporalGapYears != 30 {
		t.Fatalf("temporal gap = %v, want 30", inflammation.TemporalGapYears)
	}
}

func TestBiomarkerMiningNeedsEnoughPanels(t *testing.T) {
	lives := syntheticLives()[:50]
	if patterns := mineBiomarkerPatterns(lives); len(patterns) != 0 {
		t.Fatalf("got %d patterns from an undersized panel set", len(patterns))
	}
}

func TestLifestylePatternMining(t *testing.T) {
	patterns := mineLifestylePatterns(syntheticLives())
	if len(patterns) != 1 {
		t.Fatalf("got %d lifestyle patterns, want 1", len(patterns))
	}
	if patterns[0].EffectSize != 15 {
		t.Fatalf("effect size = %v, want 15", patterns[0].EffectSize)
	}
}

func TestDiseasePatternMining(t *testing.T) {
	patterns := mineDiseasePatterns(syntheticLives())
	if len(patterns) != 1 {
		t.Fatalf("got %d disease patterns, want 1", len(patterns))
	}
	p := patterns[0]
	if p.Effect.Disease != organism.Cancer {
		t.Fatalf("disease = %s, want cancer", p.Effect.Disease)
	}
	if p.Effect.Risk != 0.25 {
		t.Fatalf("risk = %v, want 0.25", p.Effect.Risk)
	}
	// Onset at 60, death at 95.
	if p.TemporalGapYears != 35 {
		t.Fatalf("temporal gap = %v, want 35", p.TemporalGapYears)
	}
}

func TestPatternsSortedByStrength(t *testing.T) {
	patterns := minePatterns(syntheticLives())
	if len(patterns) == 0 {
		t.Fatal("no patterns mined")
	}
	for i := 1; i < len(patterns); i++ {
		if patterns[i].Strength > patterns[i-1].Strength {
			t.Fatal("patterns not sorted by descending strength")
		}
	}
}
