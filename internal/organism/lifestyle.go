package organism

import (
	"math/rand"

	"geras/internal/genome"
)

// Lifestyle captures the modifiable exposures of an organism.
type Lifestyle struct {
	// CaloricIntake is relative to need; 1.0 is balanced.
	CaloricIntake float64 `json:"caloric_intake"`
	DietQuality   float64 `json:"diet_quality"`
	ExerciseHours float64 `json:"exercise_hours"`
	SleepQuality  float64 `json:"sleep_quality"`
	SleepHours    float64 `json:"sleep_hours"`
	Stress        float64 `json:"stress"`
	// Smoking is cigarettes per day, Alcohol drinks per week.
	Smoking     int     `json:"smoking"`
	Alcohol     int     `json:"alcohol"`
	SunExposure float64 `json:"sun_exposure"`
	Pollution   float64 `json:"pollution"`
	Social      float64 `json:"social"`
}

// DefaultLifestyle is an average modern lifestyle.
func DefaultLifestyle() Lifestyle {
	return Lifestyle{
		CaloricIntake: 1.0,
		DietQuality:   0.6,
		ExerciseHours: 2.0,
		SleepQuality:  0.7,
		SleepHours:    7.5,
		Stress:        0.3,
		Alcohol:       3,
		SunExposure:   0.3,
		Pollution:     0.2,
		Social:        0.6,
	}
}

// RandomLifestyle draws a lifestyle. Sleep hours vary around the
// genome's optimum, since actual sleep correlates with but deviates
// from genetic need.
func RandomLifestyle(p genome.Params, g *genome.Genome, rng *rand.Rand) Lifestyle {
	optimal := g.OptimalSleepHours(p)
	deviation := -2.5 + rng.Float64()*4.5
	actualSleep := optimal + deviation
	if actualSleep < 4.0 {
		actualSleep = 4.0
	}
	if actualSleep > 11.0 {
		actualSleep = 11.0
	}

	smoking := 0
	if rng.Float64() < 0.2 {
		smoking = rng.Intn(30)
	}

	return Lifestyle{
		CaloricIntake: 0.8 + rng.Float64()*0.6,
		DietQuality:   0.2 + rng.Float64()*0.75,
		ExerciseHours: rng.Float64() * 10.0,
		SleepQuality:  0.3 + rng.Float64()*0.65,
		SleepHours:    actualSleep,
		Stress:        0.1 + rng.Float64()*0.7,
		Smoking:       smoking,
		Alcohol:       rng.Intn(30),
		SunExposure:   0.1 + rng.Float64()*0.7,
		Pollution:     rng.Float64() * 0.6,
		Social:        0.2 + rng.Float64()*0.7,
	}
}

// Score summarizes lifestyle health in [0, 1].
func (l Lifestyle) Score() float64 {
	diet := l.DietQuality
	exercise := l.ExerciseHours / 7.0
	if exercise > 1.0 {
		exercise = 1.0
	}
	sleep := l.SleepQuality
	stressPenalty := l.Stress * 0.3
	smokingPenalty := float64(l.Smoking) / 20.0
	if smokingPenalty > 0.5 {
		smokingPenalty = 0.5
	}
	alcoholPenalty := 0.0
	if l.Alcohol > 14 {
		alcoholPenalty = 0.2
	}
	social := l.Social * 0.5

	score := (diet+exercise+sleep+social)/4.0 - stressPenalty - smokingPenalty - alcoholPenalty
	return clamp(score, 0, 1)
}

// OxidativeStressFactor converts exposures into an oxidative load.
func (l Lifestyle) OxidativeStressFactor() float64 {
	base := 0.1
	smoking := float64(l.Smoking) * 0.02
	exerciseProtection := l.ExerciseHours * 0.01
	dietProtection := l.DietQuality * 0.1
	pollution := l.Pollution * 0.15

	return clamp(base+smoking+pollution-exerciseProtection-dietProtection, 0.05, 1.0)
}

// InflammationFactor converts exposures into an inflammatory load.
func (l Lifestyle) InflammationFactor() float64 {
	base := 0.1
	diet := 0.0
	if l.DietQuality < 0.4 {
		diet = 0.2
	}
	obesity := 0.0
	if l.CaloricIntake > 1.3 {
		obesity = 0.15
	}
	stress := l.Stress * 0.2
	exerciseProtection := l.ExerciseHours * 0.02
	if exerciseProtection > 0.15 {
		exerciseProtection = 0.15
	}
	sleepImpact := (1.0 - l.SleepQuality) * 0.1

	return clamp(base+diet+obesity+stress+sleepImpact-exerciseProtection, 0.05, 1.0)
}

// CaloricRestrictionEffect returns the longevity multiplier for
// moderate caloric restriction; intake outside the effective window is
// neutral.
func (l Lifestyle) CaloricRestrictionEffect() float64 {
	if l.CaloricIntake < 0.85 && l.CaloricIntake > 0.6 {
		return 1.0 + (0.85-l.CaloricIntake)*0.5
	}
	return 1.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
