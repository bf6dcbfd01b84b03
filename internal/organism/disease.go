package organism

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"geras/internal/genome"
)

// DiseaseType identifies an age-related disease.
type DiseaseType int

const (
	Atherosclerosis DiseaseType = iota
	HeartFailure
	Stroke
	Hypertension
	Cancer
	Alzheimers
	Parkinsons
	Dementia
	Type2Diabetes
	MetabolicSyndrome
	Obesity
	COPD
	KidneyDisease
	LiverDisease
	Sarcopenia
	Osteoporosis
	Frailty
)

var diseaseTypeNames = []string{
	"atherosclerosis", "heart_failure", "stroke", "hypertension",
	"cancer", "alzheimers", "parkinsons", "dementia",
	"type_2_diabetes", "metabolic_syndrome", "obesity",
	"copd", "kidney_disease", "liver_disease",
	"sarcopenia", "osteoporosis", "frailty",
}

func (d DiseaseType) String() string {
	if d < 0 || int(d) >= len(diseaseTypeNames) {
		return fmt.Sprintf("DiseaseType(%d)", int(d))
	}
	return diseaseTypeNames[d]
}

func (d DiseaseType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DiseaseType) UnmarshalText(text []byte) error {
	for i, n := range diseaseTypeNames {
		if n == string(text) {
			*d = DiseaseType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown disease type: %q", string(text))
}

// CausalFactorType classifies what contributed to a disease or death.
type CausalFactorType int

const (
	FactorGenetic CausalFactorType = iota
	FactorEpigenetic
	FactorEnvironmental
	FactorStochastic
	FactorSenescence
	FactorInflammation
	FactorMetabolic
	FactorDNARepairDeficit
	FactorMitochondrialDysfunction
	FactorProteostasisFailure
)

var causalFactorNames = []string{
	"genetic", "epigenetic", "environmental", "stochastic", "senescence",
	"inflammation", "metabolic", "dna_repair_deficit",
	"mitochondrial_dysfunction", "proteostasis_failure",
}

func (f CausalFactorType) String() string {
	if f < 0 || int(f) >= len(causalFactorNames) {
		return fmt.Sprintf("CausalFactorType(%d)", int(f))
	}
	return causalFactorNames[f]
}

func (f CausalFactorType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *CausalFactorType) UnmarshalText(text []byte) error {
	for i, n := range causalFactorNames {
		if n == string(text) {
			*f = CausalFactorType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown causal factor type: %q", string(text))
}

// CausalFactor records one contribution to a disease or death.
type CausalFactor struct {
	Type         CausalFactorType `json:"type"`
	Description  string           `json:"description"`
	Contribution float64          `json:"contribution"`
}

// Disease is a diagnosed condition progressing over time.
type Disease struct {
	ID            string         `json:"id"`
	Type          DiseaseType    `json:"type"`
	OnsetAge      float64        `json:"onset_age"`
	Severity      float64        `json:"severity"`
	OrganAffected Organ          `json:"organ_affected"`
	Fatal         bool           `json:"fatal"`
	CausalFactors []CausalFactor `json:"causal_factors,omitempty"`
}

// onsetRule is one guarded disease onset check. Rules run in order
// every year; each fires at most once per life since an existing
// diagnosis blocks re-onset.
type onsetRule struct {
	disease DiseaseType
	organ   Organ
	// probability returns the annual onset probability, 0 when the
	// rule's gates do not hold.
	probability func(o *Organism, cfg *Config) float64
}

var onsetRules = []onsetRule{
	{
		disease: Atherosclerosis,
		organ:   OrganHeart,
		probability: func(o *Organism, cfg *Config) float64 {
			if o.Age <= cfg.AtherosclerosisMinAge {
				return 0
			}
			return o.cardiovascularRisk() * cfg.AtherosclerosisRiskScale
		},
	},
	{
		disease: Type2Diabetes,
		organ:   OrganPancreas,
		probability: func(o *Organism, cfg *Config) float64 {
			if o.Systemic.InsulinSensitivity >= cfg.DiabetesInsulinThreshold {
				return 0
			}
			return cfg.DiabetesChance
		},
	},
	{
		disease: Cancer,
		organ:   OrganImmune,
		probability: func(o *Organism, cfg *Config) float64 {
			if o.Age <= cfg.CancerMinAge {
				return 0
			}
			mutationBurden := float64(len(o.Genome.SomaticMuts)) / 100.0
			surveillance := o.Systemic.ImmuneFunction
			risk := mutationBurden * (1.0 - surveillance*0.8) * o.Age / 100.0
			return risk * cfg.CancerRiskScale
		},
	},
	{
		disease: Alzheimers,
		organ:   OrganBrain,
		probability: func(o *Organism, cfg *Config) float64 {
			if o.Age <= cfg.AlzheimersMinAge {
				return 0
			}
			p := cfg.Cell.Genome
			brainDamage := o.Organs[OrganBrain].Damage
			sirtuinProtection := (o.Genome.GeneFunction(p, genome.SIRT1) +
				o.Genome.GeneFunction(p, genome.SIRT3) +
				o.Genome.GeneFunction(p, genome.SIRT6)) / 3.0
			inflammatoryRisk := (o.Genome.GeneFunction(p, genome.NFKB1) +
				o.Genome.GeneFunction(p, genome.IL6) +
				o.Genome.GeneFunction(p, genome.TNF)) / 3.0
			repairProtection := o.Genome.GeneFunction(p, genome.ATM) * 0.5

			geneticRisk := clamp(inflammatoryRisk*0.4+
				(1.0-sirtuinProtection)*0.4+
				(1.0-repairProtection)*0.2, 0, 1)

			risk := (brainDamage + geneticRisk + o.Systemic.Inflammation) / 3.0
			return risk * cfg.AlzheimersRiskScale
		},
	},
	{
		disease: Sarcopenia,
		organ:   OrganMuscle,
		probability: func(o *Organism, cfg *Config) float64 {
			if o.Age <= cfg.SarcopeniaMinAge {
				return 0
			}
			if o.Organs[OrganMuscle].Function >= cfg.SarcopeniaMuscleThreshold {
				return 0
			}
			if o.Lifestyle.ExerciseHours >= cfg.SarcopeniaExerciseThreshold {
				return 0
			}
			return cfg.SarcopeniaChance
		},
	},
	{
		disease: Frailty,
		organ:   OrganMuscle,
		probability: func(o *Organism, cfg *Config) float64 {
			if o.Age <= cfg.FrailtyMinAge {
				return 0
			}
			if o.averageOrganFunction() >= cfg.FrailtyFunctionThreshold {
				return 0
			}
			if o.Systemic.Inflammation <= cfg.FrailtyInflammationThreshold {
				return 0
			}
			return cfg.FrailtyChance
		},
	},
}

func (o *Organism) checkDiseaseOnset(cfg *Config, rng *rand.Rand) {
	for _, rule := range onsetRules {
		if o.HasDisease(rule.disease) {
			continue
		}
		p := rule.probability(o, cfg)
		if p > 0 && rng.Float64() < p {
			o.onsetDisease(cfg, rule.disease, rule.organ, rng)
		}
	}
}

func (o *Organism) cardiovascularRisk() float64 {
	bpRisk := (o.Systemic.BloodPressure - 120.0) / 80.0
	glucoseRisk := (o.Systemic.Glucose - 100.0) / 100.0
	inflammationRisk := o.Systemic.Inflammation
	smokingRisk := float64(o.Lifestyle.Smoking) / 20.0
	exerciseProtection := o.Lifestyle.ExerciseHours / 5.0
	if exerciseProtection > 0.3 {
		exerciseProtection = 0.3
	}
	return clamp((bpRisk+glucoseRisk+inflammationRisk+smokingRisk-exerciseProtection)/4.0, 0, 1)
}

func (o *Organism) onsetDisease(cfg *Config, diseaseType DiseaseType, organ Organ, rng *rand.Rand) {
	o.Diseases = append(o.Diseases, Disease{
		ID:            uuid.NewString(),
		Type:          diseaseType,
		OnsetAge:      o.Age,
		Severity:      0.1,
		OrganAffected: organ,
		CausalFactors: o.identifyCausalFactors(cfg),
	})

	o.LifeEvents = append(o.LifeEvents, LifeEvent{
		Age:         o.Age,
		Type:        EventDiseaseOnset,
		Description: fmt.Sprintf("%s diagnosed", diseaseType),
	})
}

// identifyCausalFactors snapshots the states that plausibly drove a
// diagnosis, for downstream causal mining.
func (o *Organism) identifyCausalFactors(cfg *Config) []CausalFactor {
	var factors []CausalFactor
	p := cfg.Cell.Genome

	if o.Genome.GeneFunction(p, genome.TP53) < 0.5 {
		factors = append(factors, CausalFactor{
			Type:         FactorGenetic,
			Description:  "TP53 dysfunction",
			Contribution: 0.3,
		})
	}

	if o.Systemic.Inflammation > 0.4 {
		factors = append(factors, CausalFactor{
			Type:         FactorInflammation,
			Description:  "chronic inflammation",
			Contribution: o.Systemic.Inflammation,
		})
	}

	avgSenescence := o.averageSenescentFraction()
	if avgSenescence > 0.1 {
		factors = append(factors, CausalFactor{
			Type:         FactorSenescence,
			Description:  fmt.Sprintf("senescent cell burden: %.1f%%", avgSenescence*100.0),
			Contribution: avgSenescence,
		})
	}

	if o.Lifestyle.Score() < 0.4 {
		factors = append(factors, CausalFactor{
			Type:         FactorEnvironmental,
			Description:  "poor lifestyle factors",
			Contribution: 1.0 - o.Lifestyle.Score(),
		})
	}

	if o.Genome.MtDNA.RespiratoryEfficiency() < 0.7 {
		factors = append(factors, CausalFactor{
			Type:         FactorMitochondrialDysfunction,
			Description:  "mitochondrial dysfunction",
			Contribution: 1.0 - o.Genome.MtDNA.RespiratoryEfficiency(),
		})
	}

	return factors
}

func (o *Organism) progressDiseases(cfg *Config, rng *rand.Rand) {
	for i := range o.Diseases {
		d := &o.Diseases[i]

		d.Severity += rng.Float64() * 0.05
		if d.Severity > 1.0 {
			d.Severity = 1.0
		}

		state := &o.Organs[d.OrganAffected]
		state.Function -= d.Severity * 0.02 * rng.Float64()
		if state.Function < 0.1 {
			state.Function = 0.1
		}

		if d.Severity > cfg.FatalSeverityThreshold && rng.Float64() < cfg.FatalChance {
			d.Fatal = true
		}
	}
}

// HasDisease reports whether a diagnosis of the given type exists.
func (o *Organism) HasDisease(diseaseType DiseaseType) bool {
	for _, d := range o.Diseases {
		if d.Type == diseaseType {
			return true
		}
	}
	return false
}
