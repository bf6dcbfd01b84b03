package genome

import "math/rand"

// Telomere is the protective cap state of one chromosome.
type Telomere struct {
	LengthBP           int     `json:"length_bp"`
	TelomeraseActivity float64 `json:"telomerase_activity"`
	CriticallyShort    bool    `json:"critically_short"`
}

// DefaultTelomere is a newborn telomere with no somatic telomerase.
func DefaultTelomere() Telomere {
	return Telomere{LengthBP: 12000}
}

// Divide shortens the telomere by one cell division. The end
// replication problem removes a random span; telomerase, where active,
// adds some length back.
func (t *Telomere) Divide(p Params, rng *rand.Rand) {
	loss := p.TelomereLossMinBP + rng.Intn(p.TelomereLossMaxBP-p.TelomereLossMinBP)

	t.LengthBP -= loss
	if t.TelomeraseActivity > 0 {
		t.LengthBP += int(t.TelomeraseActivity * p.TelomeraseRescueBP)
	}
	if t.LengthBP < 0 {
		t.LengthBP = 0
	}

	t.CriticallyShort = t.LengthBP < p.CriticalTelomereBP
}

// BiologicalAgeSignal maps telomere length to a 0-1 aging signal,
// young baseline to fully eroded.
func (t Telomere) BiologicalAgeSignal(p Params) float64 {
	normalized := (p.TelomereBaselineAgeBP - float64(t.LengthBP)) / p.TelomereYoungSpanBP
	return clamp(normalized, 0, 1)
}
