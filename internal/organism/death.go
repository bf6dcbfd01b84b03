package organism

import (
	"fmt"
	"math/rand"
)

// DeathCauseKind classifies how an organism died.
type DeathCauseKind int

const (
	DeathDisease DeathCauseKind = iota
	DeathOrganFailure
	DeathMultiOrganFailure
	DeathNatural
)

// DeathCause is the recorded cause of death. Disease is meaningful for
// DeathDisease, Organ for DeathOrganFailure.
type DeathCause struct {
	Kind    DeathCauseKind `json:"kind"`
	Disease DiseaseType    `json:"disease,omitempty"`
	Organ   Organ          `json:"organ,omitempty"`
}

func (c DeathCause) String() string {
	switch c.Kind {
	case DeathDisease:
		return fmt.Sprintf("disease:%s", c.Disease)
	case DeathOrganFailure:
		return fmt.Sprintf("organ_failure:%s", c.Organ)
	case DeathMultiOrganFailure:
		return "multi_organ_failure"
	case DeathNatural:
		return "natural"
	default:
		return fmt.Sprintf("DeathCause(%d)", int(c.Kind))
	}
}

// DeathRecord captures the organism's state at death.
type DeathRecord struct {
	Age                 float64              `json:"age"`
	Cause               DeathCause           `json:"cause"`
	ContributingFactors []CausalFactor       `json:"contributing_factors,omitempty"`
	OrganFunction       [OrganCount]float64  `json:"organ_function"`
	FinalBiomarkers     BiomarkerSnapshot    `json:"final_biomarkers"`
}

// deathRule is one guarded mortality check. Rules run in order every
// year; the first rule that fires kills the organism.
type deathRule struct {
	name string
	eval func(o *Organism, cfg *Config, rng *rand.Rand) (DeathCause, bool)
}

var deathRules = []deathRule{
	{
		name: "fatal_disease",
		eval: func(o *Organism, cfg *Config, rng *rand.Rand) (DeathCause, bool) {
			for _, d := range o.Diseases {
				if d.Fatal {
					return DeathCause{Kind: DeathDisease, Disease: d.Type}, true
				}
			}
			return DeathCause{}, false
		},
	},
	{
		name: "critical_organ_failure",
		eval: func(o *Organism, cfg *Config, rng *rand.Rand) (DeathCause, bool) {
			for i := range o.Organs {
				organ := Organ(i)
				if organ.critical() && o.Organs[i].InFailure(cfg) {
					return DeathCause{Kind: DeathOrganFailure, Organ: organ}, true
				}
			}
			return DeathCause{}, false
		},
	},
	{
		name: "multi_organ_failure",
		eval: func(o *Organism, cfg *Config, rng *rand.Rand) (DeathCause, bool) {
			failed := 0
			for i := range o.Organs {
				if o.Organs[i].Function < cfg.MultiOrganFunctionThreshold {
					failed++
				}
			}
			if failed >= cfg.MultiOrganFailureCount {
				return DeathCause{Kind: DeathMultiOrganFailure}, true
			}
			return DeathCause{}, false
		},
	},
	{
		name: "natural_mortality",
		eval: func(o *Organism, cfg *Config, rng *rand.Rand) (DeathCause, bool) {
			if o.Age <= cfg.NaturalDeathAge {
				return DeathCause{}, false
			}
			base := cfg.BaseNaturalMortality
			if o.HasDisease(Frailty) {
				base = cfg.FrailNaturalMortality
			}
			ageFactor := (o.Age - cfg.NaturalDeathAge) / cfg.NaturalMortalitySpanYears
			if rng.Float64() < base*ageFactor {
				return DeathCause{Kind: DeathNatural}, true
			}
			return DeathCause{}, false
		},
	},
}

func (o *Organism) checkDeath(cfg *Config, rng *rand.Rand) {
	for _, rule := range deathRules {
		if cause, ok := rule.eval(o, cfg, rng); ok {
			o.die(cfg, cause)
			return
		}
	}
}

func (o *Organism) die(cfg *Config, cause DeathCause) {
	o.Alive = false

	var organFunction [OrganCount]float64
	for i := range o.Organs {
		organFunction[i] = o.Organs[i].Function
	}

	factors := []CausalFactor{{
		Type:         FactorStochastic,
		Description:  fmt.Sprintf("age: %.1f years", o.Age),
		Contribution: o.Age / 120.0,
	}}
	seen := map[string]bool{factors[0].Description: true}
	for _, d := range o.Diseases {
		for _, f := range d.CausalFactors {
			if !seen[f.Description] {
				seen[f.Description] = true
				factors = append(factors, f)
			}
		}
	}

	o.Death = &DeathRecord{
		Age:                 o.Age,
		Cause:               cause,
		ContributingFactors: factors,
		OrganFunction:       organFunction,
		FinalBiomarkers:     o.calculateBiomarkers(cfg),
	}

	o.LifeEvents = append(o.LifeEvents, LifeEvent{
		Age:         o.Age,
		Type:        EventDeath,
		Description: fmt.Sprintf("died: %s", cause),
	})
}
