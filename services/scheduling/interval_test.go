package scheduling

import (
	"testing"
	"time"

	"calendra/models"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func iv(t *testing.T, startHour, startMin, endHour, endMin int) models.Interval {
	t.Helper()
	return models.Interval{Start: at(t, startHour, startMin), End: at(t, endHour, endMin)}
}

func equalIntervals(a, b []models.Interval) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Start.Equal(b[i].Start) || !a[i].End.Equal(b[i].End) {
			return false
		}
	}
	return true
}

func TestMerge_CombinesOverlapAndTouch(t *testing.T) {
	got := Merge([]models.Interval{
		iv(t, 13, 0, 14, 0),
		iv(t, 9, 0, 10, 0),
		iv(t, 10, 0, 11, 0), // touching 9-10: no zero-width gap is free
		iv(t, 9, 30, 9, 45), // contained
	})
	want := []models.Interval{iv(t, 9, 0, 11, 0), iv(t, 13, 0, 14, 0)}
	if !equalIntervals(got, want) {
		t.Fatalf("Merge = %v, want %v", got, want)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	input := []models.Interval{
		iv(t, 11, 0, 12, 30),
		iv(t, 9, 0, 10, 0),
		iv(t, 12, 0, 13, 0),
		iv(t, 9, 15, 9, 20),
	}
	once := Merge(input)
	twice := Merge(once)
	if !equalIntervals(once, twice) {
		t.Fatalf("Merge not idempotent: %v vs %v", once, twice)
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge(nil); got != nil {
		t.Fatalf("Merge(nil) = %v, want nil", got)
	}
}

func TestIntersect(t *testing.T) {
	a := []models.Interval{iv(t, 9, 0, 11, 0), iv(t, 13, 0, 15, 0)}
	b := []models.Interval{iv(t, 10, 0, 13, 30), iv(t, 14, 0, 16, 0)}
	want := []models.Interval{iv(t, 10, 0, 11, 0), iv(t, 13, 0, 13, 30), iv(t, 14, 0, 15, 0)}
	if got := Intersect(a, b); !equalIntervals(got, want) {
		t.Fatalf("Intersect = %v, want %v", got, want)
	}
}

func TestIntersect_TouchingIsEmpty(t *testing.T) {
	a := []models.Interval{iv(t, 9, 0, 10, 0)}
	b := []models.Interval{iv(t, 10, 0, 11, 0)}
	if got := Intersect(a, b); len(got) != 0 {
		t.Fatalf("Intersect of touching intervals = %v, want empty", got)
	}
}

func TestComplement_Degenerate(t *testing.T) {
	bound := iv(t, 9, 0, 17, 0)

	if got := Complement(nil, bound); !equalIntervals(got, []models.Interval{bound}) {
		t.Fatalf("Complement(empty) = %v, want [%v]", got, bound)
	}
	if got := Complement([]models.Interval{iv(t, 8, 0, 18, 0)}, bound); len(got) != 0 {
		t.Fatalf("Complement(full cover) = %v, want empty", got)
	}
}

func TestComplement_Gaps(t *testing.T) {
	bound := iv(t, 9, 0, 17, 0)
	busy := []models.Interval{iv(t, 9, 0, 9, 30), iv(t, 12, 0, 13, 0)}
	want := []models.Interval{iv(t, 9, 30, 12, 0), iv(t, 13, 0, 17, 0)}
	if got := Complement(busy, bound); !equalIntervals(got, want) {
		t.Fatalf("Complement = %v, want %v", got, want)
	}
}

// Complement(A, W) together with A clipped to W must cover W exactly with no
// overlaps.
func TestComplement_CoversBoundExactly(t *testing.T) {
	bound := iv(t, 8, 0, 18, 0)
	busy := Merge([]models.Interval{
		iv(t, 7, 0, 8, 30),
		iv(t, 10, 0, 11, 0),
		iv(t, 11, 0, 11, 15),
		iv(t, 17, 45, 19, 0),
	})

	pieces := append(Clip(busy, bound), Complement(busy, bound)...)
	covered := Merge(pieces)
	if !equalIntervals(covered, []models.Interval{bound}) {
		t.Fatalf("busy+free = %v, does not cover %v exactly", covered, bound)
	}

	var total time.Duration
	for _, p := range pieces {
		total += p.Duration()
	}
	if total != bound.Duration() {
		t.Fatalf("busy+free total %v, want %v (overlap or gap)", total, bound.Duration())
	}
}

func TestClip(t *testing.T) {
	bound := iv(t, 9, 0, 17, 0)
	got := Clip([]models.Interval{
		iv(t, 8, 0, 9, 30),
		iv(t, 12, 0, 13, 0),
		iv(t, 16, 0, 18, 0),
		iv(t, 18, 0, 19, 0),
	}, bound)
	want := []models.Interval{iv(t, 9, 0, 9, 30), iv(t, 12, 0, 13, 0), iv(t, 16, 0, 17, 0)}
	if !equalIntervals(got, want) {
		t.Fatalf("Clip = %v, want %v", got, want)
	}
}
