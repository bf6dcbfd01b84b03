package cell

import "geras/internal/genome"

// Config collects the cellular layer thresholds and rates. Start from
// DefaultConfig.
type Config struct {
	// Molecular parameters used when reading gene function.
	Genome genome.Params `json:"genome"`

	// Replicative capacity at birth: base plus a uniform jitter.
	HayflickBase   int `json:"hayflick_base"`
	HayflickJitter int `json:"hayflick_jitter"`

	BirthTelomereBP int `json:"birth_telomere_bp"`

	// Fate thresholds.
	ApoptosisDNADamage   float64 `json:"apoptosis_dna_damage"`
	ApoptosisTotalDamage float64 `json:"apoptosis_total_damage"`
	NecrosisTotalDamage  float64 `json:"necrosis_total_damage"`
	SenescenceDNADamage  float64 `json:"senescence_dna_damage"`
	SenescenceOxidative  float64 `json:"senescence_oxidative"`
	SenescenceTotal      float64 `json:"senescence_total"`
	SenescenceTelomereBP int     `json:"senescence_telomere_bp"`
	CheckpointDNADamage  float64 `json:"checkpoint_dna_damage"`
	CheckpointTotal      float64 `json:"checkpoint_total"`

	// Stochastic event rates.
	TransformChance      float64 `json:"transform_chance"`
	DriverMutationChance float64 `json:"driver_mutation_chance"`

	// Division effects.
	DivisionTelomereLossMinBP int     `json:"division_telomere_loss_min_bp"`
	DivisionTelomereLossMaxBP int     `json:"division_telomere_loss_max_bp"`
	DivisionStepYears         float64 `json:"division_step_years"`

	// Senescence effects.
	InitialSASPOutput  float64 `json:"initial_sasp_output"`
	SenescentROSFactor float64 `json:"senescent_ros_factor"`
}

// DefaultConfig returns the baseline cellular parameters.
func DefaultConfig() Config {
	return Config{
		Genome: genome.DefaultParams(),

		HayflickBase:   50,
		HayflickJitter: 20,

		BirthTelomereBP: 12000,

		ApoptosisDNADamage:   0.8,
		ApoptosisTotalDamage: 0.7,
		NecrosisTotalDamage:  0.9,
		SenescenceDNADamage:  0.4,
		SenescenceOxidative:  0.5,
		SenescenceTotal:      0.5,
		SenescenceTelomereBP: 5000,
		CheckpointDNADamage:  0.2,
		CheckpointTotal:      0.3,

		TransformChance:      0.001,
		DriverMutationChance: 0.001,

		DivisionTelomereLossMinBP: 50,
		DivisionTelomereLossMaxBP: 200,
		DivisionStepYears:         1.0 / 365.0,

		InitialSASPOutput:  0.1,
		SenescentROSFactor: 1.5,
	}
}
