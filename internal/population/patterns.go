package population

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"geras/internal/genome"
	"geras/internal/organism"
	"geras/internal/stats"
)

// PatternCauseKind classifies what drives a discovered pattern.
type PatternCauseKind int

const (
	CauseGene PatternCauseKind = iota
	CauseLifestyle
	CauseBiomarker
	CausePathway
)

var patternCauseNames = []string{"gene", "lifestyle", "biomarker", "pathway"}

func (k PatternCauseKind) String() string {
	if k < 0 || int(k) >= len(patternCauseNames) {
		return fmt.Sprintf("PatternCauseKind(%d)", int(k))
	}
	return patternCauseNames[k]
}

func (k PatternCauseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PatternCauseKind) UnmarshalText(text []byte) error {
	for i, n := range patternCauseNames {
		if n == string(text) {
			*k = PatternCauseKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown pattern cause kind: %q", string(text))
}

// PatternCause identifies the driver of a pattern. Gene and Effect are
// meaningful for CauseGene, Name and Threshold for CauseBiomarker and
// CauseLifestyle, Role for CausePathway.
type PatternCause struct {
	Kind      PatternCauseKind     `json:"kind"`
	Gene      genome.Gene          `json:"gene,omitempty"`
	Effect    genome.VariantEffect `json:"effect,omitempty"`
	Name      string               `json:"name,omitempty"`
	Threshold float64              `json:"threshold,omitempty"`
	Role      genome.Role          `json:"role,omitempty"`
}

// PatternEffectKind classifies the outcome of a pattern.
type PatternEffectKind int

const (
	EffectLifespan PatternEffectKind = iota
	EffectDiseaseRisk
)

var patternEffectNames = []string{"lifespan", "disease_risk"}

func (k PatternEffectKind) String() string {
	if k < 0 || int(k) >= len(patternEffectNames) {
		return fmt.Sprintf("PatternEffectKind(%d)", int(k))
	}
	return patternEffectNames[k]
}

func (k PatternEffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PatternEffectKind) UnmarshalText(text []byte) error {
	for i, n := range patternEffectNames {
		if n == string(text) {
			*k = PatternEffectKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown pattern effect kind: %q", string(text))
}

// PatternEffect is the outcome side of a pattern. LifespanYears is
// meaningful for EffectLifespan, Disease and Risk for
// EffectDiseaseRisk.
type PatternEffect struct {
	Kind          PatternEffectKind    `json:"kind"`
	LifespanYears float64              `json:"lifespan_years,omitempty"`
	Disease       organism.DiseaseType `json:"disease,omitempty"`
	Risk          float64              `json:"risk,omitempty"`
}

// CausalPattern is one mined association between a cause and an aging
// outcome.
type CausalPattern struct {
	ID              string        `json:"id"`
	Cause           PatternCause  `json:"cause"`
	Effect          PatternEffect `json:"effect"`
	Strength        float64       `json:"strength"`
	Confidence      float64       `json:"confidence"`
	SupportingLives int           `json:"supporting_lives"`
	// TemporalGapYears is the cause-to-outcome lead time; 0 when the
	// pattern has no temporal structure.
	TemporalGapYears float64 `json:"temporal_gap_years,omitempty"`
	EffectSize       float64 `json:"effect_size"`
	Significance     float64 `json:"significance"`
	Description      string  `json:"description"`
}

func minePatterns(lives []LifeSummary) []CausalPattern {
	var patterns []CausalPattern
	patterns = append(patterns, mineGenePatterns(lives)...)
	patterns = append(patterns, mineBiomarkerPatterns(lives)...)
	patterns = append(patterns, mineLifestylePatterns(lives)...)
	patterns = append(patterns, mineDiseasePatterns(lives)...)

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Strength != patterns[j].Strength {
			return patterns[i].Strength > patterns[j].Strength
		}
		return patterns[i].Description < patterns[j].Description
	})
	return patterns
}

// mineGenePatterns compares carriers of function-increasing variants
// against the whole cohort, gene by gene.
func mineGenePatterns(lives []LifeSummary) []CausalPattern {
	var patterns []CausalPattern
	if len(lives) == 0 {
		return patterns
	}

	total := 0.0
	for i := range lives {
		total += lives[i].Lifespan
	}
	cohortMean := total / float64(len(lives))

	for _, gene := range genome.AllGenes() {
		carrierSum := 0.0
		carriers := 0
		for i := range lives {
			if lives[i].enhancedVariant(gene) {
				carrierSum += lives[i].Lifespan
				carriers++
			}
		}
		if carriers < 10 {
			continue
		}
		effect := carrierSum/float64(carriers) - cohortMean
		if math.Abs(effect) <= 1.0 {
			continue
		}

		patterns = append(patterns, CausalPattern{
			ID: uuid.NewString(),
			Cause: PatternCause{
				Kind:   CauseGene,
				Gene:   gene,
				Effect: genome.EnhancedFunction,
			},
			Effect:          PatternEffect{Kind: EffectLifespan, LifespanYears: effect},
			Strength:        math.Abs(effect) / 10.0,
			Confidence:      0.8,
			SupportingLives: carriers,
			EffectSize:      effect,
			Significance:    0.01,
			Description: fmt.Sprintf("%s enhanced function: %+.1f years lifespan",
				gene, effect),
		})
	}
	return patterns
}

// mineBiomarkerPatterns tests whether midlife biomarker thresholds
// separate short from long lives. Requires enough midlife panels for
// the splits to mean anything.
func mineBiomarkerPatterns(lives []LifeSummary) []CausalPattern {
	var patterns []CausalPattern

	var midlife []*LifeSummary
	for i := range lives {
		if lives[i].Midlife != nil {
			midlife = append(midlife, &lives[i])
		}
	}
	if len(midlife) < 100 {
		return patterns
	}

	overall := make([]float64, len(midlife))
	for i, l := range midlife {
		overall[i] = l.Lifespan
	}
	overallMean := stats.Mean(overall)

	// High vs low midlife inflammation.
	var highInflam, lowInflam []float64
	for _, l := range midlife {
		switch {
		case l.Midlife.Inflammation > 0.4:
			highInflam = append(highInflam, l.Lifespan)
		case l.Midlife.Inflammation <= 0.2:
			lowInflam = append(lowInflam, l.Lifespan)
		}
	}
	if len(highInflam) > 0 && len(lowInflam) > 0 {
		effect := stats.Mean(lowInflam) - stats.Mean(highInflam)
		patterns = append(patterns, CausalPattern{
			ID: uuid.NewString(),
			Cause: PatternCause{
				Kind: CauseBiomarker, Name: "inflammation", Threshold: 0.4,
			},
			Effect:           PatternEffect{Kind: EffectLifespan, LifespanYears: -effect},
			Strength:         math.Abs(effect) / 15.0,
			Confidence:       0.7,
			SupportingLives:  len(highInflam) + len(lowInflam),
			TemporalGapYears: 30.0,
			EffectSize:       effect,
			Significance:     0.001,
			Description: fmt.Sprintf(
				"High inflammation (>0.4) at midlife predicts %.1f years shorter life", effect),
		})
	}

	// High midlife senescent burden.
	var highSenescence []float64
	for _, l := range midlife {
		if l.Midlife.SenescenceBurden > 0.15 {
			highSenescence = append(highSenescence, l.Lifespan)
		}
	}
	if len(highSenescence) > 0 {
		effect := overallMean - stats.Mean(highSenescence)
		patterns = append(patterns, CausalPattern{
			ID: uuid.NewString(),
			Cause: PatternCause{
				Kind: CauseBiomarker, Name: "senescence_burden", Threshold: 0.15,
			},
			Effect:           PatternEffect{Kind: EffectLifespan, LifespanYears: -effect},
			Strength:         math.Abs(effect) / 10.0,
			Confidence:       0.85,
			SupportingLives:  len(highSenescence),
			TemporalGapYears: 25.0,
			EffectSize:       effect,
			Significance:     0.0001,
			Description: fmt.Sprintf(
				"Senescent cell burden >15%% at midlife: %.1f years shorter life", effect),
		})
	}

	// Low midlife mitochondrial function.
	var lowMito []float64
	for _, l := range midlife {
		if l.Midlife.MitochondrialFunction < 0.6 {
			lowMito = append(lowMito, l.Lifespan)
		}
	}
	if len(lowMito) >= 50 {
		effect := overallMean - stats.Mean(lowMito)
		patterns = append(patterns, CausalPattern{
			ID: uuid.NewString(),
			Cause: PatternCause{
				Kind: CauseBiomarker, Name: "mitochondrial_function", Threshold: 0.6,
			},
			Effect:           PatternEffect{Kind: EffectLifespan, LifespanYears: -effect},
			Strength:         math.Abs(effect) / 12.0,
			Confidence:       0.75,
			SupportingLives:  len(lowMito),
			TemporalGapYears: 20.0,
			EffectSize:       effect,
			Significance:     0.001,
			Description: fmt.Sprintf(
				"Mitochondrial dysfunction (<60%%) at midlife: %.1f years shorter life", effect),
		})
	}

	return patterns
}

// mineLifestylePatterns compares the top and bottom of the lifestyle
// score distribution.
func mineLifestylePatterns(lives []LifeSummary) []CausalPattern {
	var patterns []CausalPattern

	var high, low []float64
	for i := range lives {
		switch {
		case lives[i].LifestyleScore > 0.7:
			high = append(high, lives[i].Lifespan)
		case lives[i].LifestyleScore < 0.4:
			low = append(low, lives[i].Lifespan)
		}
	}
	if len(high) == 0 || len(low) == 0 {
		return patterns
	}

	effect := stats.Mean(high) - stats.Mean(low)
	patterns = append(patterns, CausalPattern{
		ID:    uuid.NewString(),
		Cause: PatternCause{Kind: CauseLifestyle, Name: "optimal", Threshold: 0.7},
		Effect: PatternEffect{
			Kind: EffectLifespan, LifespanYears: effect,
		},
		Strength: math.Abs(effect) / 15.0,
		// Lifestyle is confounded with everything it correlates with.
		Confidence:      0.6,
		SupportingLives: len(high) + len(low),
		EffectSize:      effect,
		Significance:    0.001,
		Description: fmt.Sprintf(
			"Optimal lifestyle (score >0.7) vs poor (<0.4): %+.1f years", effect),
	})
	return patterns
}

// cascadeDiseases are the conditions mined for onset-to-death
// structure.
var cascadeDiseases = []organism.DiseaseType{
	organism.Atherosclerosis,
	organism.Type2Diabetes,
	organism.Cancer,
	organism.Alzheimers,
}

// mineDiseasePatterns measures each major disease's lifespan cost and
// the gap between typical onset and death.
func mineDiseasePatterns(lives []LifeSummary) []CausalPattern {
	var patterns []CausalPattern

	for _, disease := range cascadeDiseases {
		var onsetSum, withSum, withoutSum float64
		with, without := 0, 0
		for i := range lives {
			l := &lives[i]
			if l.HasDisease(disease) {
				with++
				withSum += l.Lifespan
				for _, d := range l.Diseases {
					if d.Type == disease {
						onsetSum += d.OnsetAge
						break
					}
				}
			} else {
				without++
				withoutSum += l.Lifespan
			}
		}
		if with < 20 || without == 0 {
			continue
		}

		avgOnset := onsetSum / float64(with)
		avgWith := withSum / float64(with)
		effect := withoutSum/float64(without) - avgWith

		patterns = append(patterns, CausalPattern{
			ID:    uuid.NewString(),
			Cause: PatternCause{Kind: CausePathway, Role: genome.RoleInflammation},
			Effect: PatternEffect{
				Kind:    EffectDiseaseRisk,
				Disease: disease,
				Risk:    float64(with) / float64(len(lives)),
			},
			Strength:         math.Abs(effect) / 10.0,
			Confidence:       0.7,
			SupportingLives:  with,
			TemporalGapYears: avgWith - avgOnset,
			EffectSize:       effect,
			Significance:     0.01,
			Description: fmt.Sprintf(
				"%s: avg onset %.0fy, reduces lifespan by %.1f years",
				disease, avgOnset, effect),
		})
	}
	return patterns
}
