package population

import (
	"sort"

	"geras/internal/genome"
	"geras/internal/stats"
)

// CauseFraction is one cause of death and the fraction of the
// population it claimed.
type CauseFraction struct {
	Cause    string  `json:"cause"`
	Fraction float64 `json:"fraction"`
}

// Statistics summarizes the lifespan distribution of a cohort.
type Statistics struct {
	MeanLifespan   float64 `json:"mean_lifespan"`
	MedianLifespan float64 `json:"median_lifespan"`
	StdDevLifespan float64 `json:"std_dev_lifespan"`
	// CentenarianRate is the fraction of lives reaching 100.
	CentenarianRate float64         `json:"centenarian_rate"`
	TopDeathCauses  []CauseFraction `json:"top_death_causes,omitempty"`
	// GeneLifespanCorrelations holds the pearson correlation between
	// carrying a beneficial variant and lifespan, for genes where the
	// signal clears the noise floor.
	GeneLifespanCorrelations     map[genome.Gene]float64 `json:"gene_lifespan_correlations,omitempty"`
	LifestyleLifespanCorrelation float64                 `json:"lifestyle_lifespan_correlation"`
}

// correlationNoiseFloor drops gene correlations indistinguishable from
// sampling noise at typical cohort sizes.
const correlationNoiseFloor = 0.01

const topDeathCauseCount = 5

func calculateStatistics(lives []LifeSummary) Statistics {
	lifespans := make([]float64, len(lives))
	for i, l := range lives {
		lifespans[i] = l.Lifespan
	}
	sorted := append([]float64(nil), lifespans...)
	sort.Float64s(sorted)

	centenarians := 0
	for _, l := range lifespans {
		if l >= 100.0 {
			centenarians++
		}
	}

	causeCounts := make(map[string]int)
	for i := range lives {
		causeCounts[lives[i].DeathCause.String()]++
	}
	causes := make([]CauseFraction, 0, len(causeCounts))
	for cause, count := range causeCounts {
		causes = append(causes, CauseFraction{
			Cause:    cause,
			Fraction: float64(count) / float64(len(lives)),
		})
	}
	sort.Slice(causes, func(i, j int) bool {
		if causes[i].Fraction != causes[j].Fraction {
			return causes[i].Fraction > causes[j].Fraction
		}
		return causes[i].Cause < causes[j].Cause
	})
	if len(causes) > topDeathCauseCount {
		causes = causes[:topDeathCauseCount]
	}

	lifestyleScores := make([]float64, len(lives))
	for i := range lives {
		lifestyleScores[i] = lives[i].LifestyleScore
	}

	return Statistics{
		MeanLifespan:                 stats.Mean(lifespans),
		MedianLifespan:               stats.MedianSorted(sorted),
		StdDevLifespan:               stats.StdDev(lifespans),
		CentenarianRate:              float64(centenarians) / float64(len(lives)),
		TopDeathCauses:               causes,
		GeneLifespanCorrelations:     geneCorrelations(lives, lifespans),
		LifestyleLifespanCorrelation: stats.Pearson(lifestyleScores, lifespans),
	}
}

// geneCorrelations correlates beneficial variant carriage with
// lifespan, gene by gene.
func geneCorrelations(lives []LifeSummary, lifespans []float64) map[genome.Gene]float64 {
	correlations := make(map[genome.Gene]float64)
	carrier := make([]float64, len(lives))

	for _, gene := range genome.AllGenes() {
		for i := range lives {
			if lives[i].beneficialVariant(gene) {
				carrier[i] = 1.0
			} else {
				carrier[i] = 0.0
			}
		}
		r := stats.Pearson(carrier, lifespans)
		if r > correlationNoiseFloor || r < -correlationNoiseFloor {
			correlations[gene] = r
		}
	}
	return correlations
}
