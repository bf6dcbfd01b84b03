package genome

import "math"

// OptimalSleepHours derives the genetically determined sleep need.
// DEC2 and ADRB1 loss variants produce the natural short-sleep
// phenotype, PER3 shifts duration preference, low ADA function raises
// sleep pressure, and CLOCK variants lengthen the preferred period.
func (g *Genome) OptimalSleepHours(p Params) float64 {
	optimal := p.BaseOptimalSleepHours

	if g.GeneFunction(p, DEC2) < 0.5 {
		optimal -= 1.5
	}
	if g.GeneFunction(p, ADRB1) < 0.5 {
		optimal -= 1.0
	}

	per3 := g.GeneFunction(p, PER3)
	if per3 > 0.6 {
		optimal += 0.5
	} else if per3 < 0.4 {
		optimal -= 0.5
	}

	if g.GeneFunction(p, ADA) < 0.4 {
		optimal += 0.5
	}
	if g.GeneFunction(p, CLOCK) > 0.6 {
		optimal += 0.25
	}

	return clamp(optimal, p.MinSleepHours, p.MaxSleepHours)
}

// CircadianRobustness is the mean effective function of the core clock
// genes, clamped to [0, 1].
func (g *Genome) CircadianRobustness(p Params) float64 {
	clockGenes := []Gene{CLOCK, BMAL1, PER1, PER2, PER3, CRY1, CRY2}
	total := 0.0
	for _, gene := range clockGenes {
		total += g.GeneFunction(p, gene)
	}
	return clamp(total/float64(len(clockGenes)), 0, 1)
}

// SleepDeviationAgingFactor converts actual sleep duration into an
// aging rate multiplier. Deviation from the genetic optimum carries a
// quadratic penalty following the U-shaped sleep mortality curve,
// buffered by circadian robustness; short sleep is penalized harder
// than long sleep.
func (g *Genome) SleepDeviationAgingFactor(p Params, actualSleepHours float64) float64 {
	optimal := g.OptimalSleepHours(p)
	deviation := math.Abs(actualSleepHours - optimal)

	basePenalty := math.Pow(deviation/optimal, 2)

	robustness := g.CircadianRobustness(p)
	buffered := basePenalty * (1.5 - robustness*0.5)

	asymmetry := 1.0
	if actualSleepHours < optimal {
		asymmetry = p.ShortSleepAsymmetry
	}

	return 1.0 + buffered*asymmetry*p.SleepPenaltyWeight
}
