package cell

import (
	"fmt"
	"math/rand"

	"geras/internal/genome"
)

// Fate is the outcome of one fate decision.
type Fate int

const (
	FateContinue Fate = iota
	FateDivide
	FateSenesce
	FateApoptosis
	FateNecrosis
	FateTransform
)

var fateNames = []string{
	"continue", "divide", "senesce", "apoptosis", "necrosis", "transform",
}

func (f Fate) String() string {
	if f < 0 || int(f) >= len(fateNames) {
		return fmt.Sprintf("Fate(%d)", int(f))
	}
	return fateNames[f]
}

// fateRule is one guarded transition. Rules are evaluated in order and
// the first rule that fires decides the fate.
type fateRule struct {
	name string
	eval func(c *Cell, cfg *Config, g *genome.Genome, env *Environment, rng *rand.Rand) (Fate, bool)
}

var fateRules = []fateRule{
	{
		// Severe damage triggers p53-gated apoptosis. A failed
		// apoptosis roll on a heavily damaged cell can instead
		// transform it.
		name: "apoptosis",
		eval: func(c *Cell, cfg *Config, g *genome.Genome, env *Environment, rng *rand.Rand) (Fate, bool) {
			if !c.Damage.ShouldApoptose(cfg) {
				return 0, false
			}
			if rng.Float64() < g.GeneFunction(cfg.Genome, genome.TP53) {
				return FateApoptosis, true
			}
			if rng.Float64() < cfg.TransformChance {
				return FateTransform, true
			}
			return 0, false
		},
	},
	{
		name: "necrosis",
		eval: func(c *Cell, cfg *Config, g *genome.Genome, env *Environment, rng *rand.Rand) (Fate, bool) {
			if c.Damage.Total() > cfg.NecrosisTotalDamage {
				return FateNecrosis, true
			}
			return 0, false
		},
	},
	{
		name: "telomere_senescence",
		eval: func(c *Cell, cfg *Config, g *genome.Genome, env *Environment, rng *rand.Rand) (Fate, bool) {
			if !c.Senescent && c.TelomereLengthBP < cfg.SenescenceTelomereBP {
				return FateSenesce, true
			}
			return 0, false
		},
	},
	{
		name: "damage_senescence",
		eval: func(c *Cell, cfg *Config, g *genome.Genome, env *Environment, rng *rand.Rand) (Fate, bool) {
			if c.Senescent || !c.Damage.ShouldSenesce(cfg) {
				return 0, false
			}
			if rng.Float64() < g.SenescencePropensity(cfg.Genome) {
				return FateSenesce, true
			}
			return 0, false
		},
	},
	{
		name: "replicative_senescence",
		eval: func(c *Cell, cfg *Config, g *genome.Genome, env *Environment, rng *rand.Rand) (Fate, bool) {
			if !c.Senescent && c.ReplicativeCapacity == 0 && !c.Type.PostMitotic() {
				return FateSenesce, true
			}
			return 0, false
		},
	},
	{
		// Division requires passing the damage checkpoints and a rate
		// roll scaled by growth factor signaling.
		name: "division",
		eval: func(c *Cell, cfg *Config, g *genome.Genome, env *Environment, rng *rand.Rand) (Fate, bool) {
			if c.Senescent || c.Type.PostMitotic() || c.ReplicativeCapacity <= 0 {
				return 0, false
			}
			if c.Damage.DNA >= cfg.CheckpointDNADamage || c.Damage.Total() >= cfg.CheckpointTotal {
				return 0, false
			}
			prob := c.Type.DivisionRate() * cfg.DivisionStepYears * env.GrowthFactors
			if rng.Float64() < prob {
				return FateDivide, true
			}
			return 0, false
		},
	},
}

func (c *Cell) decideFate(cfg *Config, g *genome.Genome, env *Environment, rng *rand.Rand) Fate {
	for _, rule := range fateRules {
		if fate, ok := rule.eval(c, cfg, g, env, rng); ok {
			return fate
		}
	}
	return FateContinue
}
