package genome

// Params collects the tunable thresholds and rates of the molecular
// layer. Zero values are not meaningful; start from DefaultParams.
type Params struct {
	// Construction.
	VariantCarrierChance        float64 `json:"variant_carrier_chance"`
	TelomereBirthMinBP          int     `json:"telomere_birth_min_bp"`
	TelomereBirthMaxBP          int     `json:"telomere_birth_max_bp"`
	InheritedTelomeraseActivity float64 `json:"inherited_telomerase_activity"`

	// Effective gene function.
	MethylationSilencingLevel  float64 `json:"methylation_silencing_level"`
	MethylationSilencingFactor float64 `json:"methylation_silencing_factor"`
	DriverFunctionFactor       float64 `json:"driver_function_factor"`
	GeneFunctionMax            float64 `json:"gene_function_max"`

	// Telomere dynamics.
	TelomereLossMinBP    int     `json:"telomere_loss_min_bp"`
	TelomereLossMaxBP    int     `json:"telomere_loss_max_bp"`
	TelomeraseRescueBP   float64 `json:"telomerase_rescue_bp"`
	CriticalTelomereBP   int     `json:"critical_telomere_bp"`
	TelomereYoungSpanBP  float64 `json:"telomere_young_span_bp"`
	TelomereBaselineAgeBP float64 `json:"telomere_baseline_age_bp"`

	// Mitochondrial DNA dynamics.
	MtBaseDamageRate           float64 `json:"mt_base_damage_rate"`
	MtClonalExpansionThreshold float64 `json:"mt_clonal_expansion_threshold"`
	MtDysfunctionThreshold     float64 `json:"mt_dysfunction_threshold"`

	// Epigenetic drift.
	ClockScaleYears        float64 `json:"clock_scale_years"`
	GlobalMethylationFloor float64 `json:"global_methylation_floor"`

	// Sleep genetics.
	BaseOptimalSleepHours float64 `json:"base_optimal_sleep_hours"`
	MinSleepHours         float64 `json:"min_sleep_hours"`
	MaxSleepHours         float64 `json:"max_sleep_hours"`
	SleepPenaltyWeight    float64 `json:"sleep_penalty_weight"`
	ShortSleepAsymmetry   float64 `json:"short_sleep_asymmetry"`
}

// DefaultParams returns the baseline molecular parameters.
func DefaultParams() Params {
	return Params{
		VariantCarrierChance:        0.3,
		TelomereBirthMinBP:          10000,
		TelomereBirthMaxBP:          14000,
		InheritedTelomeraseActivity: 0.1,

		MethylationSilencingLevel:  0.8,
		MethylationSilencingFactor: 0.3,
		DriverFunctionFactor:       0.5,
		GeneFunctionMax:            2.0,

		TelomereLossMinBP:     50,
		TelomereLossMaxBP:     200,
		TelomeraseRescueBP:    100,
		CriticalTelomereBP:    5000,
		TelomereYoungSpanBP:   6000,
		TelomereBaselineAgeBP: 12000,

		MtBaseDamageRate:           0.002,
		MtClonalExpansionThreshold: 0.1,
		MtDysfunctionThreshold:     0.6,

		ClockScaleYears:        120,
		GlobalMethylationFloor: 0.3,

		BaseOptimalSleepHours: 7.5,
		MinSleepHours:         4,
		MaxSleepHours:         10,
		SleepPenaltyWeight:    0.3,
		ShortSleepAsymmetry:   1.2,
	}
}
