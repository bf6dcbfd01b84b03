package stats

import "testing"

func TestSurvivalCurve(t *testing.T) {
	lifespans := []float64{2.5, 4.0, 4.0, 1.0}

	points := SurvivalCurve(lifespans)
	if len(points) != 5 {
		t.Fatalf("got %d points, want ages 0 through 4", len(points))
	}
	if points[0].Survival != 1.0 {
		t.Fatalf("everyone should be alive at age 0: %+v", points[0])
	}
	if points[2].Survival != 0.75 {
		t.Fatalf("expected 3/4 surviving to age 2: %+v", points[2])
	}
	if points[3].Survival != 0.5 {
		t.Fatalf("expected 2/4 surviving to age 3: %+v", points[3])
	}
	if points[4].Survival != 0.5 {
		t.Fatalf("lifespan 4.0 should survive to age 4: %+v", points[4])
	}
}

func TestSurvivalCurveEmpty(t *testing.T) {
	if points := SurvivalCurve(nil); points != nil {
		t.Fatalf("expected nil for empty cohort, got %v", points)
	}
}

func TestHistogram(t *testing.T) {
	values := []float64{71.2, 74.9, 75.0, 82.3, 84.9}

	bins := Histogram(values, 5)
	if len(bins) != 3 {
		t.Fatalf("got %d bins, want 3: %+v", len(bins), bins)
	}
	if bins[0].Low != 70 || bins[0].Count != 2 {
		t.Fatalf("unexpected first bin: %+v", bins[0])
	}
	if bins[1].Low != 75 || bins[1].Count != 1 {
		t.Fatalf("unexpected second bin: %+v", bins[1])
	}
	if bins[2].Low != 80 || bins[2].Count != 2 {
		t.Fatalf("unexpected third bin: %+v", bins[2])
	}
}

func TestHistogramUpperBoundLandsInLastBin(t *testing.T) {
	bins := Histogram([]float64{10, 20}, 5)
	if len(bins) != 3 {
		t.Fatalf("got %d bins, want 3", len(bins))
	}
	if bins[2].Count != 1 {
		t.Fatalf("max value should land in last bin: %+v", bins)
	}
}

func TestHistogramRejectsBadWidth(t *testing.T) {
	if bins := Histogram([]float64{1, 2}, 0); bins != nil {
		t.Fatalf("expected nil for zero width, got %v", bins)
	}
}
