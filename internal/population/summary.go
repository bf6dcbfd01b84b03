package population

import (
	"math/rand"

	"geras/internal/genome"
	"geras/internal/organism"
)

// GeneVariantSummary is the first inherited variant of one gene,
// flattened for mining.
type GeneVariantSummary struct {
	Gene            genome.Gene          `json:"gene"`
	Effect          genome.VariantEffect `json:"effect"`
	LongevityEffect float64              `json:"longevity_effect"`
}

// DiseaseOnset is one diagnosis and when it happened.
type DiseaseOnset struct {
	Type     organism.DiseaseType `json:"type"`
	OnsetAge float64              `json:"onset_age"`
}

// MidlifeBiomarkers is the predictive panel captured at the midlife
// checkpoint.
type MidlifeBiomarkers struct {
	EpigeneticAge         float64 `json:"epigenetic_age"`
	Inflammation          float64 `json:"inflammation"`
	SenescenceBurden      float64 `json:"senescence_burden"`
	MitochondrialFunction float64 `json:"mitochondrial_function"`
	TelomereLengthBP      int     `json:"telomere_length_bp"`
}

// LifeSummary is the mined record of one completed life.
type LifeSummary struct {
	ID                   string                  `json:"id"`
	Lifespan             float64                 `json:"lifespan"`
	DeathCause           organism.DeathCause     `json:"death_cause"`
	Variants             []GeneVariantSummary    `json:"variants,omitempty"`
	LifestyleScore       float64                 `json:"lifestyle_score"`
	Diseases             []DiseaseOnset          `json:"diseases,omitempty"`
	Midlife              *MidlifeBiomarkers      `json:"midlife_biomarkers,omitempty"`
	DeathFactors         []organism.CausalFactor `json:"death_factors,omitempty"`
	FinalAgeAcceleration float64                 `json:"final_age_acceleration"`
	// Trajectory is the full biomarker history, kept only when
	// DetailedTrajectories is set.
	Trajectory []organism.BiomarkerSnapshot `json:"trajectory,omitempty"`
}

// HasDisease reports whether the life developed the given disease.
func (l *LifeSummary) HasDisease(diseaseType organism.DiseaseType) bool {
	for _, d := range l.Diseases {
		if d.Type == diseaseType {
			return true
		}
	}
	return false
}

// beneficialVariant reports whether the life carries a first variant of
// the gene with a positive longevity effect.
func (l *LifeSummary) beneficialVariant(gene genome.Gene) bool {
	for _, v := range l.Variants {
		if v.Gene == gene {
			return v.LongevityEffect > 0
		}
	}
	return false
}

func (l *LifeSummary) enhancedVariant(gene genome.Gene) bool {
	for _, v := range l.Variants {
		if v.Gene == gene &&
			(v.Effect == genome.EnhancedFunction || v.Effect == genome.GainOfFunction) {
			return true
		}
	}
	return false
}

// simulateOneLife runs a full life and condenses it into a summary.
// The midlife panel is captured in-flight since the genome keeps aging
// after the checkpoint.
func simulateOneLife(cfg *Config, rng *rand.Rand) LifeSummary {
	o := organism.NewRandom(&cfg.Organism, rng)
	if !cfg.LifestyleVariation {
		o.Lifestyle = organism.DefaultLifestyle()
	}

	var midlife *MidlifeBiomarkers
	for o.Alive && o.Age < cfg.Organism.MaxAge {
		o.AgeOneYear(&cfg.Organism, rng)

		if midlife == nil && o.Age >= cfg.MidlifeAge {
			senescence := 0.0
			for i := range o.Organs {
				senescence += o.Organs[i].SenescentFraction
			}
			senescence /= float64(organism.OrganCount)

			midlife = &MidlifeBiomarkers{
				EpigeneticAge:         o.Genome.Epigenome.EpigeneticAge(cfg.Organism.Cell.Genome),
				Inflammation:          o.Systemic.Inflammation,
				SenescenceBurden:      senescence,
				MitochondrialFunction: o.Genome.MtDNA.RespiratoryEfficiency(),
				TelomereLengthBP:      o.Genome.ShortestTelomere(),
			}
		}
	}
	// Past the horizon SimulateLife only closes out the record.
	o.SimulateLife(&cfg.Organism, rng)

	var variants []GeneVariantSummary
	for i := range o.Genome.NuclearGenes {
		vs := o.Genome.NuclearGenes[i].Variants
		if len(vs) > 0 {
			variants = append(variants, GeneVariantSummary{
				Gene:            genome.Gene(i),
				Effect:          vs[0].Effect,
				LongevityEffect: vs[0].LongevityEffect,
			})
		}
	}

	diseases := make([]DiseaseOnset, 0, len(o.Diseases))
	for _, d := range o.Diseases {
		diseases = append(diseases, DiseaseOnset{Type: d.Type, OnsetAge: d.OnsetAge})
	}

	summary := LifeSummary{
		ID:                   o.ID,
		Lifespan:             o.Age,
		DeathCause:           o.Death.Cause,
		Variants:             variants,
		LifestyleScore:       o.Lifestyle.Score(),
		Diseases:             diseases,
		Midlife:              midlife,
		DeathFactors:         o.Death.ContributingFactors,
		FinalAgeAcceleration: o.Death.FinalBiomarkers.BiologicalAge - o.Age,
	}
	if cfg.DetailedTrajectories {
		summary.Trajectory = append([]organism.BiomarkerSnapshot(nil), o.BiomarkerHistory...)
	}
	return summary
}
