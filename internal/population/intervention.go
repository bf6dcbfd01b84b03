package population

import (
	"fmt"
	"math/rand"
	"sort"

	"geras/internal/genome"
	"geras/internal/organism"
	"geras/internal/stats"
)

// InterventionType identifies a simulated longevity intervention.
type InterventionType int

const (
	CaloricRestriction InterventionType = iota
	Rapamycin
	Senolytic
	NADBooster
	Exercise
	MetforminAnalog
)

var interventionNames = []string{
	"caloric_restriction", "rapamycin", "senolytic",
	"nad_booster", "exercise", "metformin_analog",
}

func (t InterventionType) String() string {
	if t < 0 || int(t) >= len(interventionNames) {
		return fmt.Sprintf("InterventionType(%d)", int(t))
	}
	return interventionNames[t]
}

func (t InterventionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *InterventionType) UnmarshalText(text []byte) error {
	for i, n := range interventionNames {
		if n == string(text) {
			*t = InterventionType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown intervention type: %q", string(text))
}

// Intervention is one named treatment arm.
type Intervention struct {
	Name     string           `json:"name"`
	Type     InterventionType `json:"type"`
	StartAge float64          `json:"start_age"`
}

// InterventionComparison is the outcome of one paired control vs
// treatment cohort.
type InterventionComparison struct {
	Intervention          Intervention `json:"intervention"`
	ControlMeanLifespan   float64      `json:"control_mean_lifespan"`
	TreatmentMeanLifespan float64      `json:"treatment_mean_lifespan"`
	LifespanDelta         float64      `json:"lifespan_delta"`
	SampleSize            int          `json:"sample_size"`
}

var comparedInterventions = []Intervention{
	{Name: "Caloric Restriction (20%)", Type: CaloricRestriction, StartAge: 40},
	{Name: "Rapamycin", Type: Rapamycin, StartAge: 40},
	{Name: "Senolytic (D+Q)", Type: Senolytic, StartAge: 40},
	{Name: "NAD+ Booster (NMN)", Type: NADBooster, StartAge: 40},
	{Name: "Regular Exercise", Type: Exercise, StartAge: 40},
}

// applyIntervention shifts the organism's lifestyle or systemic state
// to model the treatment's primary mechanism.
func applyIntervention(o *organism.Organism, t InterventionType) {
	switch t {
	case CaloricRestriction:
		o.Lifestyle.CaloricIntake = 0.75
		o.Lifestyle.DietQuality = 0.9
	case Rapamycin:
		o.Systemic.MTORActivity = 0.5
		o.Systemic.AMPKActivity = 0.8
	case Senolytic:
		for i := range o.Organs {
			o.Organs[i].SenescentFraction *= 0.3
		}
		o.Systemic.SASPLevel *= 0.3
		o.Systemic.Inflammation *= 0.7
	case NADBooster:
		o.Systemic.NADLevel = 0.9
	case Exercise:
		o.Lifestyle.ExerciseHours = 5.0
	case MetforminAnalog:
		o.Systemic.AMPKActivity = 0.7
		o.Systemic.InsulinSensitivity = 0.9
	}
}

// compareInterventions runs paired cohorts per treatment arm: control
// and treatment share a genome, so the delta isolates the
// intervention.
func compareInterventions(cfg *Config, rng *rand.Rand) []InterventionComparison {
	sampleSize := cfg.interventionSampleSize()
	comparisons := make([]InterventionComparison, 0, len(comparedInterventions))

	for _, intervention := range comparedInterventions {
		controlLifespans := make([]float64, 0, sampleSize)
		treatmentLifespans := make([]float64, 0, sampleSize)

		for i := 0; i < sampleSize; i++ {
			g := genome.NewRandom(cfg.Organism.Cell.Genome, rng)

			control := organism.New(&cfg.Organism, g.Clone(), organism.DefaultLifestyle(), rng)
			control.SimulateLife(&cfg.Organism, rng)
			controlLifespans = append(controlLifespans, control.Age)

			treatment := organism.New(&cfg.Organism, g, organism.DefaultLifestyle(), rng)
			applyIntervention(treatment, intervention.Type)
			treatment.SimulateLife(&cfg.Organism, rng)
			treatmentLifespans = append(treatmentLifespans, treatment.Age)
		}

		controlMean := stats.Mean(controlLifespans)
		treatmentMean := stats.Mean(treatmentLifespans)
		comparisons = append(comparisons, InterventionComparison{
			Intervention:          intervention,
			ControlMeanLifespan:   controlMean,
			TreatmentMeanLifespan: treatmentMean,
			LifespanDelta:         treatmentMean - controlMean,
			SampleSize:            sampleSize,
		})
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].LifespanDelta > comparisons[j].LifespanDelta
	})
	return comparisons
}
