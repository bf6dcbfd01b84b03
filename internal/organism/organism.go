// Package organism simulates one individual from birth to death: the
// genome drives cellular aging inside organ systems, systemic state
// couples the organs, and diseases and death emerge from accumulated
// damage rather than from a programmed schedule.
package organism

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"geras/internal/cell"
	"geras/internal/genome"
)

// SystemicState holds the circulating factors that couple the organ
// systems.
type SystemicState struct {
	Inflammation       float64 `json:"inflammation"`
	OxidativeStress    float64 `json:"oxidative_stress"`
	InsulinSensitivity float64 `json:"insulin_sensitivity"`
	NADLevel           float64 `json:"nad_level"`
	IGF1Signaling      float64 `json:"igf1_signaling"`
	MTORActivity       float64 `json:"mtor_activity"`
	AMPKActivity       float64 `json:"ampk_activity"`
	SASPLevel          float64 `json:"sasp_level"`
	ImmuneFunction     float64 `json:"immune_function"`
	BloodPressure      float64 `json:"blood_pressure"`
	Glucose            float64 `json:"glucose"`
}

// DefaultSystemicState is the young adult baseline.
func DefaultSystemicState() SystemicState {
	return SystemicState{
		Inflammation:       0.1,
		OxidativeStress:    0.1,
		InsulinSensitivity: 1.0,
		NADLevel:           1.0,
		IGF1Signaling:      1.0,
		MTORActivity:       1.0,
		AMPKActivity:       0.5,
		ImmuneFunction:     1.0,
		BloodPressure:      120.0,
		Glucose:            90.0,
	}
}

// LifeEventType classifies notable events during a life.
type LifeEventType int

const (
	EventBirth LifeEventType = iota
	EventDiseaseOnset
	EventDiseaseProgression
	EventOrganDamage
	EventSenescenceSpike
	EventLifestyleChange
	EventTreatment
	EventDeath
)

var lifeEventNames = []string{
	"birth", "disease_onset", "disease_progression", "organ_damage",
	"senescence_spike", "lifestyle_change", "treatment", "death",
}

func (e LifeEventType) String() string {
	if e < 0 || int(e) >= len(lifeEventNames) {
		return fmt.Sprintf("LifeEventType(%d)", int(e))
	}
	return lifeEventNames[e]
}

// LifeEvent is one recorded event with the age it happened.
type LifeEvent struct {
	Age         float64       `json:"age"`
	Type        LifeEventType `json:"type"`
	Description string        `json:"description"`
}

// BiomarkerSnapshot is a panel of measurable aging markers at one age.
type BiomarkerSnapshot struct {
	Age                float64             `json:"age"`
	EpigeneticAge      float64             `json:"epigenetic_age"`
	TelomereLengthBP   int                 `json:"telomere_length_bp"`
	InflammationScore  float64             `json:"inflammation_score"`
	NADLevel           float64             `json:"nad_level"`
	SenescenceBurden   float64             `json:"senescence_burden"`
	Glucose            float64             `json:"glucose"`
	InsulinSensitivity float64             `json:"insulin_sensitivity"`
	OxidativeDamage    float64             `json:"oxidative_damage"`
	OrganFunction      [OrganCount]float64 `json:"organ_function"`
	BiologicalAge      float64             `json:"biological_age"`
}

// Organism is one simulated individual.
type Organism struct {
	ID               string                 `json:"id"`
	Genome           *genome.Genome         `json:"genome"`
	Age              float64                `json:"age"`
	Organs           [OrganCount]OrganState `json:"organs"`
	Systemic         SystemicState          `json:"systemic"`
	Lifestyle        Lifestyle              `json:"lifestyle"`
	Diseases         []Disease              `json:"diseases,omitempty"`
	BiomarkerHistory []BiomarkerSnapshot    `json:"biomarker_history,omitempty"`
	Alive            bool                   `json:"alive"`
	Death            *DeathRecord           `json:"death,omitempty"`
	LifeEvents       []LifeEvent            `json:"life_events,omitempty"`
}

// NewRandom creates an organism with a freshly drawn genome and a
// randomized lifestyle.
func NewRandom(cfg *Config, rng *rand.Rand) *Organism {
	g := genome.NewRandom(cfg.Cell.Genome, rng)
	lifestyle := RandomLifestyle(cfg.Cell.Genome, g, rng)
	return New(cfg, g, lifestyle, rng)
}

// New creates an organism around a specific genome and lifestyle.
func New(cfg *Config, g *genome.Genome, lifestyle Lifestyle, rng *rand.Rand) *Organism {
	o := &Organism{
		ID:        uuid.NewString(),
		Genome:    g,
		Systemic:  DefaultSystemicState(),
		Lifestyle: lifestyle,
		Alive:     true,
		LifeEvents: []LifeEvent{{
			Type:        EventBirth,
			Description: "born",
		}},
	}
	for i := range o.Organs {
		o.Organs[i] = NewOrganState(cfg, Organ(i), g.ID, rng)
	}
	return o
}

// AgeOneYear advances the organism through the annual pipeline: genome
// aging, systemic update, organ aging, disease onset, disease
// progression, death evaluation, and biomarker recording.
func (o *Organism) AgeOneYear(cfg *Config, rng *rand.Rand) {
	if !o.Alive {
		return
	}

	o.Age += 1.0

	o.ageGenome(cfg, rng)
	o.updateSystemicState(cfg, rng)
	o.ageOrgans(cfg, rng)
	o.checkDiseaseOnset(cfg, rng)
	o.progressDiseases(cfg, rng)
	o.checkDeath(cfg, rng)

	if int(o.Age)%cfg.BiomarkerIntervalYears == 0 || o.Age >= cfg.BiomarkerAnnualFromAge {
		o.BiomarkerHistory = append(o.BiomarkerHistory, o.calculateBiomarkers(cfg))
	}
}

// SimulateLife runs annual steps until death or the maximum age. At
// the horizon the organism is closed out with a natural death record
// so every life ends with one.
func (o *Organism) SimulateLife(cfg *Config, rng *rand.Rand) {
	for o.Alive && o.Age < cfg.MaxAge {
		o.AgeOneYear(cfg, rng)
	}
	if o.Alive {
		o.die(cfg, DeathCause{Kind: DeathNatural})
	}
}

func (o *Organism) ageGenome(cfg *Config, rng *rand.Rand) {
	p := cfg.Cell.Genome

	o.Genome.Epigenome.AgeOneYear(p, rng)

	oxidativeStress := o.Lifestyle.OxidativeStressFactor() + o.Systemic.OxidativeStress
	o.Genome.MtDNA.AgeOneYear(p, oxidativeStress, rng)

	for i := range o.Genome.Telomeres {
		if rng.Float64() < cfg.StochasticTelomereDivideChance {
			o.Genome.Telomeres[i].Divide(p, rng)
		}
	}

	mutationRate := cfg.SomaticMutationBaseRate * (1.0 + o.Systemic.OxidativeStress)
	repairEfficiency := o.Genome.DNARepairCapacity(p)
	netRate := mutationRate * (1.0 - repairEfficiency*0.9)

	if rng.Float64() < netRate*o.Age {
		o.Genome.SomaticMuts = append(o.Genome.SomaticMuts, genome.SomaticMutation{
			ID:              uuid.NewString(),
			Gene:            genome.Intergenic,
			Type:            genome.PointMutation,
			AgeAcquired:     o.Age,
			TissueOrigin:    rollMutationTissue(rng),
			ClonalExpansion: 0.001,
			Driver:          rng.Float64() < cfg.SomaticDriverChance,
		})
	}
}

// rollMutationTissue weights mutation origin by tissue turnover:
// hematopoietic and gut epithelium accumulate fastest, heart and brain
// slowest.
func rollMutationTissue(rng *rand.Rand) genome.Tissue {
	roll := rng.Float64()
	switch {
	case roll < 0.25:
		return genome.TissueBlood
	case roll < 0.40:
		return genome.TissueIntestine
	case roll < 0.52:
		return genome.TissueSkin
	case roll < 0.62:
		return genome.TissueLung
	case roll < 0.70:
		return genome.TissueLiver
	case roll < 0.77:
		return genome.TissueBoneMarrow
	case roll < 0.84:
		return genome.TissuePancreas
	case roll < 0.90:
		return genome.TissueKidney
	case roll < 0.95:
		return genome.TissueBrain
	default:
		return genome.TissueHeart
	}
}

func (o *Organism) updateSystemicState(cfg *Config, rng *rand.Rand) {
	p := cfg.Cell.Genome

	// Sleep deviation modulates inflammation and oxidative stress.
	sleepFactor := o.Genome.SleepDeviationAgingFactor(p, o.Lifestyle.SleepHours)

	lifestyleInflammation := o.Lifestyle.InflammationFactor()
	organInflammation := 0.0
	for i := range o.Organs {
		organInflammation += o.Organs[i].Inflammation
	}
	organInflammation /= float64(OrganCount)
	saspInflammation := o.Systemic.SASPLevel * 0.3
	sleepInflammation := (sleepFactor - 1.0) * 0.2

	o.Systemic.Inflammation = clamp(
		lifestyleInflammation+organInflammation+saspInflammation+sleepInflammation, 0, 1)

	sleepOxidativePenalty := (sleepFactor - 1.0) * 0.15
	o.Systemic.OxidativeStress = clamp(
		o.Lifestyle.OxidativeStressFactor()+
			(1.0-o.Genome.MtDNA.RespiratoryEfficiency())*0.3+
			sleepOxidativePenalty, 0, 1)

	o.Systemic.NADLevel -= rng.Float64() * 0.01
	if o.Systemic.NADLevel < 0.3 {
		o.Systemic.NADLevel = 0.3
	}

	if o.Lifestyle.CaloricIntake > 1.1 || o.Lifestyle.ExerciseHours < 1.0 {
		o.Systemic.InsulinSensitivity -= rng.Float64() * 0.01
	}
	if o.Systemic.InsulinSensitivity < 0.3 {
		o.Systemic.InsulinSensitivity = 0.3
	}

	o.Systemic.MTORActivity = o.Lifestyle.CaloricIntake * o.Genome.GeneFunction(p, genome.MTOR)

	exerciseEffect := o.Lifestyle.ExerciseHours / 7.0
	if exerciseEffect > 1.0 {
		exerciseEffect = 1.0
	}
	crEffect := o.Lifestyle.CaloricRestrictionEffect() * 0.2
	o.Systemic.AMPKActivity = clamp(0.5+exerciseEffect*0.3+crEffect-o.Age*0.002, 0.2, 1.0)

	totalSenescence := 0.0
	for i := range o.Organs {
		totalSenescence += o.Organs[i].SenescentFraction * o.Organs[i].Cells.SASPOutput()
	}
	o.Systemic.SASPLevel = totalSenescence / float64(OrganCount)

	o.Systemic.ImmuneFunction = clamp(
		o.Organs[OrganImmune].Function-o.Age*0.005, 0.2, 1.0)

	o.Systemic.BloodPressure += rng.Float64() * 0.5
	if o.Lifestyle.ExerciseHours > 3.0 {
		o.Systemic.BloodPressure -= 0.3
	}
	o.Systemic.BloodPressure = clamp(o.Systemic.BloodPressure, 100, 200)

	o.Systemic.Glucose = 90.0 / o.Systemic.InsulinSensitivity
	if o.Lifestyle.CaloricIntake > 1.2 {
		o.Systemic.Glucose += 10.0
	}
}

func (o *Organism) ageOrgans(cfg *Config, rng *rand.Rand) {
	nutrients := o.Lifestyle.CaloricIntake
	if nutrients > 1.0 {
		nutrients = 1.0
	}
	env := cell.Environment{
		Oxygen:                1.0 - (1.0-o.Organs[OrganLung].Function)*0.3,
		Nutrients:             nutrients,
		GrowthFactors:         o.Systemic.IGF1Signaling,
		InflammatoryCytokines: o.Systemic.Inflammation,
		SASPExposure:          o.Systemic.SASPLevel,
		OxidativeStress:       o.Systemic.OxidativeStress,
		Temperature:           37.0,
		PH:                    7.4,
	}

	for i := range o.Organs {
		state := &o.Organs[i]

		for _, c := range state.Cells.SampleCells {
			c.Step(&cfg.Cell, o.Genome, &env, 1.0, rng)
		}

		state.Cells.UpdateStatistics()
		state.SenescentFraction = state.Cells.SenescentFraction

		senescenceDamage := state.SenescentFraction * 0.02
		inflammationDamage := o.Systemic.Inflammation * 0.01
		oxidativeDamage := o.Systemic.OxidativeStress * 0.005
		state.Damage += (senescenceDamage + inflammationDamage + oxidativeDamage) * rng.Float64()
		if state.Damage > 1.0 {
			state.Damage = 1.0
		}

		state.Inflammation = o.Systemic.Inflammation + state.Cells.SASPOutput()
		if state.Inflammation > 1.0 {
			state.Inflammation = 1.0
		}

		if state.Damage > 0.3 {
			state.Fibrosis += 0.005 * rng.Float64()
			if state.Fibrosis > 1.0 {
				state.Fibrosis = 1.0
			}
		}

		state.Function = clamp(1.0-state.Damage*0.5-state.Fibrosis*0.4, 0.1, 1.0)

		state.Cells.StemCellFunction -= 0.005 * rng.Float64()
		if state.Cells.StemCellFunction < 0.1 {
			state.Cells.StemCellFunction = 0.1
		}
	}
}

func (o *Organism) averageOrganFunction() float64 {
	total := 0.0
	for i := range o.Organs {
		total += o.Organs[i].Function
	}
	return total / float64(OrganCount)
}

func (o *Organism) averageSenescentFraction() float64 {
	total := 0.0
	for i := range o.Organs {
		total += o.Organs[i].SenescentFraction
	}
	return total / float64(OrganCount)
}

func (o *Organism) averageOrganDamage() float64 {
	total := 0.0
	for i := range o.Organs {
		total += o.Organs[i].Damage
	}
	return total / float64(OrganCount)
}

func (o *Organism) calculateBiomarkers(cfg *Config) BiomarkerSnapshot {
	p := cfg.Cell.Genome
	epigeneticAge := o.Genome.Epigenome.EpigeneticAge(p)

	var organFunction [OrganCount]float64
	for i := range o.Organs {
		organFunction[i] = o.Organs[i].Function
	}

	damageComponent := o.averageOrganDamage()
	machineryComponent := 1.0 - o.Genome.MtDNA.RespiratoryEfficiency()
	biologicalAge := (epigeneticAge + o.Age*(1.0+damageComponent+machineryComponent)) / 2.0

	return BiomarkerSnapshot{
		Age:                o.Age,
		EpigeneticAge:      epigeneticAge,
		TelomereLengthBP:   o.Genome.ShortestTelomere(),
		InflammationScore:  o.Systemic.Inflammation,
		NADLevel:           o.Systemic.NADLevel,
		SenescenceBurden:   o.averageSenescentFraction(),
		Glucose:            o.Systemic.Glucose,
		InsulinSensitivity: o.Systemic.InsulinSensitivity,
		OxidativeDamage:    o.Systemic.OxidativeStress,
		OrganFunction:      organFunction,
		BiologicalAge:      biologicalAge,
	}
}

// BiologicalAge estimates biological age from the current biomarker
// panel.
func (o *Organism) BiologicalAge(cfg *Config) float64 {
	return o.calculateBiomarkers(cfg).BiologicalAge
}
