package organism

import (
	"math/rand"
	"testing"
)

func TestNewRandomOrganism(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))

	o := NewRandom(&cfg, rng)

	if !o.Alive {
		t.Fatal("newborn organism should be alive")
	}
	if o.Age != 0 {
		t.Fatalf("newborn age = %v, want 0", o.Age)
	}
	if o.Genome == nil {
		t.Fatal("organism has no genome")
	}
	for i := range o.Organs {
		if o.Organs[i].Function != 1.0 {
			t.Fatalf("organ %s function = %v, want 1.0", Organ(i), o.Organs[i].Function)
		}
		if o.Organs[i].Cells == nil {
			t.Fatalf("organ %s has no cell sample", Organ(i))
		}
	}
	if len(o.LifeEvents) != 1 || o.LifeEvents[0].Type != EventBirth {
		t.Fatalf("expected a single birth event, got %v", o.LifeEvents)
	}
	if o.Lifestyle.SleepHours < 4.0 || o.Lifestyle.SleepHours > 11.0 {
		t.Fatalf("sleep hours %v out of range", o.Lifestyle.SleepHours)
	}
	if o.Lifestyle.CaloricIntake < 0.8 || o.Lifestyle.CaloricIntake > 1.4 {
		t.Fatalf("caloric intake %v out of range", o.Lifestyle.CaloricIntake)
	}
}

func TestSystemicStateDefaults(t *testing.T) {
	s := DefaultSystemicState()
	if s.InsulinSensitivity != 1.0 || s.NADLevel != 1.0 {
		t.Fatalf("unexpected metabolic baseline: %+v", s)
	}
	if s.BloodPressure != 120.0 || s.Glucose != 90.0 {
		t.Fatalf("unexpected clinical baseline: %+v", s)
	}
	if s.AMPKActivity != 0.5 {
		t.Fatalf("AMPK baseline = %v, want 0.5", s.AMPKActivity)
	}
}

func TestBiomarkerCadence(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(7))
	o := NewRandom(&cfg, rng)

	for i := 0; i < 12 && o.Alive; i++ {
		o.AgeOneYear(&cfg, rng)
	}
	if !o.Alive {
		t.Fatalf("organism died at age %v, before the test window", o.Age)
	}

	// Snapshots land on the five year cadence: ages 5 and 10.
	if len(o.BiomarkerHistory) != 2 {
		t.Fatalf("got %d biomarker snapshots, want 2", len(o.BiomarkerHistory))
	}
	if o.BiomarkerHistory[0].Age != 5 || o.BiomarkerHistory[1].Age != 10 {
		t.Fatalf("snapshot ages = %v, %v, want 5, 10",
			o.BiomarkerHistory[0].Age, o.BiomarkerHistory[1].Age)
	}
	for _, b := range o.BiomarkerHistory {
		if b.TelomereLengthBP <= 0 {
			t.Fatalf("telomere length %d at age %v", b.TelomereLengthBP, b.Age)
		}
		if b.BiologicalAge <= 0 {
			t.Fatalf("biological age %v at age %v", b.BiologicalAge, b.Age)
		}
	}
}

func TestSystemicStateStaysBounded(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(11))
	o := NewRandom(&cfg, rng)

	for i := 0; i < 60 && o.Alive; i++ {
		o.AgeOneYear(&cfg, rng)

		s := o.Systemic
		if s.Inflammation < 0 || s.Inflammation > 1 {
			t.Fatalf("inflammation %v out of range at age %v", s.Inflammation, o.Age)
		}
		if s.OxidativeStress < 0 || s.OxidativeStress > 1 {
			t.Fatalf("oxidative stress %v out of range at age %v", s.OxidativeStress, o.Age)
		}
		if s.NADLevel < 0.3 {
			t.Fatalf("NAD %v below floor at age %v", s.NADLevel, o.Age)
		}
		if s.InsulinSensitivity < 0.3 {
			t.Fatalf("insulin sensitivity %v below floor at age %v", s.InsulinSensitivity, o.Age)
		}
		if s.BloodPressure < 100 || s.BloodPressure > 200 {
			t.Fatalf("blood pressure %v out of range at age %v", s.BloodPressure, o.Age)
		}
		for j := range o.Organs {
			if o.Organs[j].Function < 0.1 || o.Organs[j].Function > 1.0 {
				t.Fatalf("organ %s function %v out of range at age %v",
					Organ(j), o.Organs[j].Function, o.Age)
			}
		}
	}
}

func TestSimulateLifeTerminates(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(0); seed < 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		o := NewRandom(&cfg, rng)
		o.SimulateLife(&cfg, rng)

		if o.Alive {
			t.Fatalf("seed %d: organism still alive at age %v", seed, o.Age)
		}
		if o.Age > cfg.MaxAge {
			t.Fatalf("seed %d: age %v exceeds horizon %v", seed, o.Age, cfg.MaxAge)
		}
		if o.Death == nil {
			t.Fatalf("seed %d: no death record", seed)
		}
		if o.Death.Age != o.Age {
			t.Fatalf("seed %d: death age %v != final age %v", seed, o.Death.Age, o.Age)
		}
		if len(o.Death.ContributingFactors) == 0 {
			t.Fatalf("seed %d: death record has no contributing factors", seed)
		}
		last := o.LifeEvents[len(o.LifeEvents)-1]
		if last.Type != EventDeath {
			t.Fatalf("seed %d: final life event is %s, want death", seed, last.Type)
		}
	}
}

func TestSimulateLifeDeterministicPerSeed(t *testing.T) {
	cfg := DefaultConfig()

	run := func(seed int64) *Organism {
		rng := rand.New(rand.NewSource(seed))
		o := NewRandom(&cfg, rng)
		o.SimulateLife(&cfg, rng)
		return o
	}

	a, b := run(42), run(42)
	if a.Age != b.Age {
		t.Fatalf("lifespans differ for same seed: %v vs %v", a.Age, b.Age)
	}
	if a.Death.Cause.String() != b.Death.Cause.String() {
		t.Fatalf("death causes differ for same seed: %s vs %s",
			a.Death.Cause, b.Death.Cause)
	}
	if len(a.Diseases) != len(b.Diseases) {
		t.Fatalf("disease counts differ for same seed: %d vs %d",
			len(a.Diseases), len(b.Diseases))
	}
}

func TestFatalDiseaseDeathRule(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(3))
	o := NewRandom(&cfg, rng)
	o.Age = 65
	o.Diseases = append(o.Diseases, Disease{
		Type:          Cancer,
		OnsetAge:      60,
		Severity:      0.95,
		OrganAffected: OrganImmune,
		Fatal:         true,
	})

	o.checkDeath(&cfg, rng)

	if o.Alive {
		t.Fatal("fatal disease did not kill the organism")
	}
	if o.Death.Cause.Kind != DeathDisease || o.Death.Cause.Disease != Cancer {
		t.Fatalf("death cause = %s, want disease:cancer", o.Death.Cause)
	}
	if o.Death.Cause.String() != "disease:cancer" {
		t.Fatalf("cause string = %q", o.Death.Cause.String())
	}
}

func TestCriticalOrganFailureRule(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(3))
	o := NewRandom(&cfg, rng)
	o.Age = 70
	o.Organs[OrganHeart].Function = 0.2

	o.checkDeath(&cfg, rng)

	if o.Alive {
		t.Fatal("critical organ failure did not kill the organism")
	}
	if o.Death.Cause.Kind != DeathOrganFailure || o.Death.Cause.Organ != OrganHeart {
		t.Fatalf("death cause = %s, want organ_failure:heart", o.Death.Cause)
	}
}

func TestMultiOrganFailureRule(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(3))
	o := NewRandom(&cfg, rng)
	o.Age = 75
	o.Organs[OrganMuscle].Function = 0.45
	o.Organs[OrganBone].Function = 0.45
	o.Organs[OrganImmune].Function = 0.45

	o.checkDeath(&cfg, rng)

	if o.Alive {
		t.Fatal("multi organ failure did not kill the organism")
	}
	if o.Death.Cause.Kind != DeathMultiOrganFailure {
		t.Fatalf("death cause = %s, want multi_organ_failure", o.Death.Cause)
	}
}

func TestNaturalMortalityGatedByAge(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(3))
	o := NewRandom(&cfg, rng)
	o.Age = 50

	for i := 0; i < 1000; i++ {
		o.checkDeath(&cfg, rng)
	}
	if !o.Alive {
		t.Fatalf("healthy organism at age 50 died of %s", o.Death.Cause)
	}
}

func TestDiseaseOnsetBlockedByExistingDiagnosis(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(9))
	o := NewRandom(&cfg, rng)
	o.Age = 60
	o.Systemic.InsulinSensitivity = 0.2

	for i := 0; i < 500; i++ {
		o.checkDiseaseOnset(&cfg, rng)
	}

	count := 0
	for _, d := range o.Diseases {
		if d.Type == Type2Diabetes {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d diabetes diagnoses, want exactly 1", count)
	}
	if !o.HasDisease(Type2Diabetes) {
		t.Fatal("HasDisease missed the diagnosis")
	}
}

func TestDiseaseProgressionCapsAndFatality(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(5))
	o := NewRandom(&cfg, rng)
	o.Diseases = append(o.Diseases, Disease{
		Type:          HeartFailure,
		OrganAffected: OrganHeart,
		Severity:      0.1,
	})

	for i := 0; i < 200; i++ {
		o.progressDiseases(&cfg, rng)
	}

	d := o.Diseases[0]
	if d.Severity > 1.0 {
		t.Fatalf("severity %v exceeds 1.0", d.Severity)
	}
	if d.Severity < cfg.FatalSeverityThreshold {
		t.Fatalf("severity %v never reached the fatal threshold after 200 years", d.Severity)
	}
	if o.Organs[OrganHeart].Function < 0.1 {
		t.Fatalf("heart function %v below floor", o.Organs[OrganHeart].Function)
	}
}

func TestLifestyleScoreBounds(t *testing.T) {
	best := Lifestyle{
		CaloricIntake: 0.8, DietQuality: 0.95, ExerciseHours: 7,
		SleepQuality: 0.95, SleepHours: 7.5, Stress: 0.1, Social: 0.9,
	}
	worst := Lifestyle{
		CaloricIntake: 1.4, DietQuality: 0.2, ExerciseHours: 0,
		SleepQuality: 0.3, SleepHours: 5, Stress: 0.8,
		Smoking: 30, Alcohol: 28, Pollution: 0.6, Social: 0.2,
	}
	if s := best.Score(); s < 0.7 || s > 1.0 {
		t.Fatalf("healthy lifestyle score = %v", s)
	}
	if s := worst.Score(); s > 0.2 {
		t.Fatalf("unhealthy lifestyle score = %v", s)
	}
	if best.Score() <= worst.Score() {
		t.Fatal("healthy lifestyle does not outscore unhealthy one")
	}
}

func TestCaloricRestrictionWindow(t *testing.T) {
	l := DefaultLifestyle()

	l.CaloricIntake = 0.7
	if e := l.CaloricRestrictionEffect(); e <= 1.0 {
		t.Fatalf("moderate restriction effect = %v, want > 1", e)
	}
	l.CaloricIntake = 0.5
	if e := l.CaloricRestrictionEffect(); e != 1.0 {
		t.Fatalf("severe restriction effect = %v, want neutral 1.0", e)
	}
	l.CaloricIntake = 1.0
	if e := l.CaloricRestrictionEffect(); e != 1.0 {
		t.Fatalf("balanced intake effect = %v, want neutral 1.0", e)
	}
}

func TestOrganReserveCapacity(t *testing.T) {
	s := OrganState{Function: 1.0}
	if r := s.ReserveCapacity(); r != 1.0 {
		t.Fatalf("full function reserve = %v, want 1.0", r)
	}
	s.Function = 0.3
	if r := s.ReserveCapacity(); r != 0.0 {
		t.Fatalf("failure threshold reserve = %v, want 0", r)
	}
	s.Function = 0.1
	if r := s.ReserveCapacity(); r != 0.0 {
		t.Fatalf("below threshold reserve = %v, want 0", r)
	}
}
