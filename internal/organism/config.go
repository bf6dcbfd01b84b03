package organism

import "geras/internal/cell"

// Config collects the organism layer thresholds and rates, embedding
// the cellular configuration (which in turn carries the molecular
// parameters). Start from DefaultConfig.
type Config struct {
	Cell cell.Config `json:"cell"`

	SampleCellsPerOrgan int `json:"sample_cells_per_organ"`

	// Annual genome aging.
	StochasticTelomereDivideChance float64 `json:"stochastic_telomere_divide_chance"`
	SomaticMutationBaseRate        float64 `json:"somatic_mutation_base_rate"`
	SomaticDriverChance            float64 `json:"somatic_driver_chance"`

	// Disease onset gates.
	AtherosclerosisMinAge       float64 `json:"atherosclerosis_min_age"`
	AtherosclerosisRiskScale    float64 `json:"atherosclerosis_risk_scale"`
	DiabetesInsulinThreshold    float64 `json:"diabetes_insulin_threshold"`
	DiabetesChance              float64 `json:"diabetes_chance"`
	CancerMinAge                float64 `json:"cancer_min_age"`
	CancerRiskScale             float64 `json:"cancer_risk_scale"`
	AlzheimersMinAge            float64 `json:"alzheimers_min_age"`
	AlzheimersRiskScale         float64 `json:"alzheimers_risk_scale"`
	SarcopeniaMinAge            float64 `json:"sarcopenia_min_age"`
	SarcopeniaMuscleThreshold   float64 `json:"sarcopenia_muscle_threshold"`
	SarcopeniaExerciseThreshold float64 `json:"sarcopenia_exercise_threshold"`
	SarcopeniaChance            float64 `json:"sarcopenia_chance"`
	FrailtyMinAge               float64 `json:"frailty_min_age"`
	FrailtyFunctionThreshold    float64 `json:"frailty_function_threshold"`
	FrailtyInflammationThreshold float64 `json:"frailty_inflammation_threshold"`
	FrailtyChance               float64 `json:"frailty_chance"`

	// Disease progression.
	FatalSeverityThreshold float64 `json:"fatal_severity_threshold"`
	FatalChance            float64 `json:"fatal_chance"`

	// Death evaluation.
	CriticalOrganFunction       float64 `json:"critical_organ_function"`
	MultiOrganFunctionThreshold float64 `json:"multi_organ_function_threshold"`
	MultiOrganFailureCount      int     `json:"multi_organ_failure_count"`
	NaturalDeathAge             float64 `json:"natural_death_age"`
	BaseNaturalMortality        float64 `json:"base_natural_mortality"`
	FrailNaturalMortality       float64 `json:"frail_natural_mortality"`
	NaturalMortalitySpanYears   float64 `json:"natural_mortality_span_years"`

	// Simulation horizon and biomarker cadence.
	MaxAge                 float64 `json:"max_age"`
	BiomarkerIntervalYears int     `json:"biomarker_interval_years"`
	BiomarkerAnnualFromAge float64 `json:"biomarker_annual_from_age"`
}

// DefaultConfig returns the baseline organism parameters.
func DefaultConfig() Config {
	return Config{
		Cell: cell.DefaultConfig(),

		SampleCellsPerOrgan: 100,

		StochasticTelomereDivideChance: 0.1,
		SomaticMutationBaseRate:        0.00001,
		SomaticDriverChance:            0.0001,

		AtherosclerosisMinAge:        40,
		AtherosclerosisRiskScale:     0.02,
		DiabetesInsulinThreshold:     0.5,
		DiabetesChance:               0.1,
		CancerMinAge:                 30,
		CancerRiskScale:              0.01,
		AlzheimersMinAge:             60,
		AlzheimersRiskScale:          0.02,
		SarcopeniaMinAge:             50,
		SarcopeniaMuscleThreshold:    0.7,
		SarcopeniaExerciseThreshold:  2.0,
		SarcopeniaChance:             0.05,
		FrailtyMinAge:                70,
		FrailtyFunctionThreshold:     0.6,
		FrailtyInflammationThreshold: 0.4,
		FrailtyChance:                0.1,

		FatalSeverityThreshold: 0.9,
		FatalChance:            0.1,

		CriticalOrganFunction:       0.3,
		MultiOrganFunctionThreshold: 0.5,
		MultiOrganFailureCount:      3,
		NaturalDeathAge:             80,
		BaseNaturalMortality:        0.05,
		FrailNaturalMortality:       0.15,
		NaturalMortalitySpanYears:   40,

		MaxAge:                 150,
		BiomarkerIntervalYears: 5,
		BiomarkerAnnualFromAge: 60,
	}
}
