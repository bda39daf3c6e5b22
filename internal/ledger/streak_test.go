package ledger

import (
	"testing"
	"time"
)

func TestDaysBetweenUsesCalendarDays(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	late := time.Date(2024, 1, 1, 23, 30, 0, 0, loc)
	early := time.Date(2024, 1, 2, 0, 15, 0, 0, loc)
	if got := DaysBetween(late, early, loc); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if got := DaysBetween(early, late, loc); got != -1 {
		t.Fatalf("expected -1 day, got %d", got)
	}
	// Same instants read in UTC fall on the same day.
	if got := DaysBetween(late, early, time.UTC); got != 0 {
		t.Fatalf("expected 0 days in UTC, got %d", got)
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	before := time.Date(2024, 3, 30, 12, 0, 0, 0, loc)
	after := time.Date(2024, 3, 31, 12, 0, 0, 0, loc)
	if got := DaysBetween(before, after, loc); got != 1 {
		t.Fatalf("expected 1 day across DST, got %d", got)
	}
}

func TestNextStreak(t *testing.T) {
	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		streak int
		last   time.Time
		now    time.Time
		want   int
	}{
		{"first activity", 0, time.Time{}, day, 1},
		{"same day", 4, day, day.Add(3 * time.Hour), 4},
		{"next day", 4, day, day.AddDate(0, 0, 1), 5},
		{"three day gap", 4, day, day.AddDate(0, 0, 3), 1},
		{"backwards", 4, day, day.AddDate(0, 0, -1), 1},
	}
	for _, tc := range cases {
		if got := NextStreak(tc.streak, tc.last, tc.now, time.UTC); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestLevelFor(t *testing.T) {
	for completed, want := range map[int]int{0: 1, 4: 1, 5: 2, 9: 2, 10: 3, 26: 6} {
		if got := LevelFor(completed); got != want {
			t.Fatalf("LevelFor(%d): expected %d, got %d", completed, want, got)
		}
	}
}
