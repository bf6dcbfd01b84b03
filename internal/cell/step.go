package cell

import (
	"math/rand"

	"github.com/google/uuid"

	"geras/internal/genome"
)

// Step advances the cell by dtYears: generate damage, attempt repair,
// age the machinery, then decide and execute a fate. Dead cells are
// inert. Returns the fate chosen this step.
func (c *Cell) Step(cfg *Config, g *genome.Genome, env *Environment, dtYears float64, rng *rand.Rand) Fate {
	if !c.Alive {
		return FateContinue
	}

	c.Age += dtYears

	c.generateDamage(cfg, g, env, dtYears, rng)
	c.attemptRepair(cfg, g, dtYears, rng)
	c.ageMachinery(dtYears, rng)

	fate := c.decideFate(cfg, g, env, rng)
	switch fate {
	case FateDivide:
		c.divide(cfg, g, rng)
	case FateSenesce:
		c.enterSenescence(cfg)
	case FateApoptosis:
		c.Alive = false
		c.DeathCause = DeathApoptosis
	case FateNecrosis:
		c.Alive = false
		c.DeathCause = DeathNecrosis
	case FateTransform:
		// Transformation marks the cell; tumor growth is modeled at
		// the organism layer through disease onset.
	}
	return fate
}

func (c *Cell) generateDamage(cfg *Config, g *genome.Genome, env *Environment, dtYears float64, rng *rand.Rand) {
	days := dtYears * 365.0

	// DNA damage from metabolism and environment, net of repair.
	endogenous := 0.00001 * days * c.Machinery.Mitochondria.ROSProduction
	exogenous := 0.00001 * days * env.OxidativeStress
	repairEfficiency := g.DNARepairCapacity(cfg.Genome) * c.Machinery.DNARepair
	netDNA := (endogenous + exogenous) * (1.0 - repairEfficiency*0.9)
	c.Damage.DNA += netDNA * rng.Float64()
	if c.Damage.DNA > 1.0 {
		c.Damage.DNA = 1.0
	}

	// Oxidative damage net of antioxidant protection.
	rosDamage := 0.00002 * days * c.Machinery.Mitochondria.ROSProduction
	protection := c.Machinery.Antioxidants * g.GeneFunction(cfg.Genome, genome.NFE2L2)
	c.Damage.Oxidative += rosDamage * (1.0 - protection*0.8) * rng.Float64()
	if c.Damage.Oxidative > 1.0 {
		c.Damage.Oxidative = 1.0
	}

	// Protein aggregates: misfolding minus clearance.
	misfolding := 0.00001 * days * (1.0 - c.Machinery.TranslationFidelity)
	clearance := c.Machinery.Proteasome * c.Machinery.Autophagy
	c.Damage.ProteinAggregates += (misfolding - clearance*0.00001*days) * rng.Float64()
	c.Damage.ProteinAggregates = clampUnit(c.Damage.ProteinAggregates)

	// Lipofuscin is undegradable and only accumulates.
	c.Damage.Lipofuscin += 0.000005 * days * rng.Float64()
	if c.Damage.Lipofuscin > 1.0 {
		c.Damage.Lipofuscin = 1.0
	}

	c.Damage.ERStress = c.Damage.ProteinAggregates * 0.8

	if env.SASPExposure > 0 {
		c.Damage.DNA += env.SASPExposure * 0.001 * days * rng.Float64()
		c.Damage.Oxidative += env.SASPExposure * 0.002 * days * rng.Float64()
		c.Damage.DNA = clampUnit(c.Damage.DNA)
		c.Damage.Oxidative = clampUnit(c.Damage.Oxidative)
	}
}

// attemptRepair removes damage but is error-prone: repairing a heavily
// damaged genome can fix in a somatic mutation, rarely a driver.
func (c *Cell) attemptRepair(cfg *Config, g *genome.Genome, dtYears float64, rng *rand.Rand) {
	days := dtYears * 365.0

	repairCapacity := g.DNARepairCapacity(cfg.Genome) * c.Machinery.DNARepair
	c.Damage.DNA -= repairCapacity * 0.001 * days * rng.Float64()
	if c.Damage.DNA < 0 {
		c.Damage.DNA = 0
	}

	if rng.Float64() < c.Damage.DNA*0.01*days {
		c.LocalMutations = append(c.LocalMutations, genome.SomaticMutation{
			ID:              uuid.NewString(),
			Gene:            genome.Intergenic,
			Type:            genome.PointMutation,
			AgeAcquired:     c.Age,
			TissueOrigin:    c.Tissue,
			ClonalExpansion: 0.01,
			Driver:          rng.Float64() < cfg.DriverMutationChance,
		})
	}

	c.Damage.ProteinAggregates -= c.Machinery.Autophagy * 0.0005 * days * rng.Float64()
	if c.Damage.ProteinAggregates < 0 {
		c.Damage.ProteinAggregates = 0
	}

	c.Damage.Oxidative -= c.Machinery.Antioxidants * 0.0005 * days * rng.Float64()
	if c.Damage.Oxidative < 0 {
		c.Damage.Oxidative = 0
	}
}

func (c *Cell) ageMachinery(dtYears float64, rng *rand.Rand) {
	years := dtYears

	c.Machinery.DNARepair -= 0.002 * years * rng.Float64()
	if c.Machinery.DNARepair < 0.2 {
		c.Machinery.DNARepair = 0.2
	}

	c.Machinery.Proteasome -= 0.003 * years * rng.Float64()
	if c.Machinery.Proteasome < 0.2 {
		c.Machinery.Proteasome = 0.2
	}

	c.Machinery.Autophagy -= 0.002 * years * rng.Float64()
	if c.Machinery.Autophagy < 0.2 {
		c.Machinery.Autophagy = 0.2
	}

	c.Machinery.TranslationFidelity -= 0.001 * years * rng.Float64()
	if c.Machinery.TranslationFidelity < 0.7 {
		c.Machinery.TranslationFidelity = 0.7
	}

	c.Machinery.Chaperones -= 0.002 * years * rng.Float64()
	if c.Machinery.Chaperones < 0.3 {
		c.Machinery.Chaperones = 0.3
	}

	c.Machinery.Antioxidants -= 0.002 * years * rng.Float64()
	if c.Machinery.Antioxidants < 0.3 {
		c.Machinery.Antioxidants = 0.3
	}

	c.Machinery.Mitochondria.AgeStep(rng)

	if c.Senescent {
		c.SASPOutput += 0.01 * years
		if c.SASPOutput > 1.0 {
			c.SASPOutput = 1.0
		}
	}
}

func (c *Cell) divide(cfg *Config, g *genome.Genome, rng *rand.Rand) {
	shortening := cfg.DivisionTelomereLossMinBP +
		rng.Intn(cfg.DivisionTelomereLossMaxBP-cfg.DivisionTelomereLossMinBP)
	c.TelomereLengthBP -= shortening
	if c.TelomereLengthBP < 0 {
		c.TelomereLengthBP = 0
	}

	if c.ReplicativeCapacity > 0 {
		c.ReplicativeCapacity--
	}
	c.DivisionCount++

	// Replication errors slip past weak repair.
	if rng.Float64() < 0.0001*(1.0-g.DNARepairCapacity(cfg.Genome)) {
		c.LocalMutations = append(c.LocalMutations, genome.SomaticMutation{
			ID:              uuid.NewString(),
			Gene:            genome.Intergenic,
			Type:            genome.PointMutation,
			AgeAcquired:     c.Age,
			TissueOrigin:    c.Tissue,
			ClonalExpansion: 0.01,
		})
	}

	// Division dilutes some damage into the daughter.
	c.Damage.ProteinAggregates *= 0.5
	c.Damage.Oxidative *= 0.7
}

func (c *Cell) enterSenescence(cfg *Config) {
	c.Senescent = true
	c.CyclePhase = PhaseSenescent
	c.SASPOutput = cfg.InitialSASPOutput
	c.Machinery.Mitochondria.ROSProduction *= cfg.SenescentROSFactor
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
