package organism

import (
	"fmt"
	"math/rand"
	"sort"

	"geras/internal/genome"
	"geras/internal/stats"
)

// DiseaseRisk is the lifetime incidence of one disease across the
// prediction cohort.
type DiseaseRisk struct {
	Type         DiseaseType `json:"type"`
	LifetimeRisk float64     `json:"lifetime_risk"`
	MeanOnsetAge float64     `json:"mean_onset_age"`
}

// Prediction is the Monte Carlo lifespan estimate for one genome.
// Lifestyles are redrawn per simulated life, so the spread reflects
// environmental variation around the fixed genetics.
type Prediction struct {
	Simulations       int                       `json:"simulations"`
	MeanLifespan      float64                   `json:"mean_lifespan"`
	MedianLifespan    float64                   `json:"median_lifespan"`
	StdDevLifespan    float64                   `json:"std_dev_lifespan"`
	MinLifespan       float64                   `json:"min_lifespan"`
	MaxLifespan       float64                   `json:"max_lifespan"`
	Percentiles       map[string]float64        `json:"percentiles"`
	DeathCauses       map[string]int            `json:"death_causes"`
	MostLikelyCause   string                    `json:"most_likely_cause"`
	DiseaseRisks      []DiseaseRisk             `json:"disease_risks,omitempty"`
	RiskScore         genome.RiskScore          `json:"risk_score"`
	OptimalSleepHours float64                   `json:"optimal_sleep_hours"`
	RiskFactors       []genome.RiskFactor       `json:"risk_factors,omitempty"`
	ProtectiveFactors []genome.ProtectiveFactor `json:"protective_factors,omitempty"`
}

// Predict simulates n lives sharing the query genome, each with a
// freshly drawn lifestyle, and summarizes the resulting lifespan
// distribution.
func Predict(cfg *Config, g *genome.Genome, n int, rng *rand.Rand) (*Prediction, error) {
	if n <= 0 {
		return nil, fmt.Errorf("predict: simulation count must be positive, got %d", n)
	}

	lifespans := make([]float64, 0, n)
	deathCauses := make(map[string]int)
	onsetAges := make(map[DiseaseType][]float64)

	for i := 0; i < n; i++ {
		o := NewRandom(cfg, rng)
		o.Genome = g.Clone()
		o.SimulateLife(cfg, rng)

		lifespans = append(lifespans, o.Age)
		if o.Death != nil {
			deathCauses[o.Death.Cause.String()]++
		}
		for _, d := range o.Diseases {
			onsetAges[d.Type] = append(onsetAges[d.Type], d.OnsetAge)
		}
	}

	sort.Float64s(lifespans)

	mostLikely := ""
	best := 0
	for cause, count := range deathCauses {
		if count > best || (count == best && cause < mostLikely) {
			mostLikely = cause
			best = count
		}
	}

	risks := make([]DiseaseRisk, 0, len(onsetAges))
	for diseaseType, ages := range onsetAges {
		risks = append(risks, DiseaseRisk{
			Type:         diseaseType,
			LifetimeRisk: float64(len(ages)) / float64(n),
			MeanOnsetAge: stats.Mean(ages),
		})
	}
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].LifetimeRisk != risks[j].LifetimeRisk {
			return risks[i].LifetimeRisk > risks[j].LifetimeRisk
		}
		return risks[i].Type < risks[j].Type
	})

	p := cfg.Cell.Genome
	return &Prediction{
		Simulations:    n,
		MeanLifespan:   stats.Mean(lifespans),
		MedianLifespan: stats.MedianSorted(lifespans),
		StdDevLifespan: stats.StdDev(lifespans),
		MinLifespan:    lifespans[0],
		MaxLifespan:    lifespans[len(lifespans)-1],
		Percentiles: map[string]float64{
			"p10": stats.PercentileSorted(lifespans, 0.10),
			"p25": stats.PercentileSorted(lifespans, 0.25),
			"p75": stats.PercentileSorted(lifespans, 0.75),
			"p90": stats.PercentileSorted(lifespans, 0.90),
		},
		DeathCauses:       deathCauses,
		MostLikelyCause:   mostLikely,
		DiseaseRisks:      risks,
		RiskScore:         g.CalculateRiskScore(p),
		OptimalSleepHours: g.OptimalSleepHours(p),
		RiskFactors:       g.IdentifyRiskFactors(),
		ProtectiveFactors: g.IdentifyProtectiveFactors(),
	}, nil
}
