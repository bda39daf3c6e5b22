// Package stats contains progress calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/lingua/internal/model"
)

const (
	sparkChars = " .:-=+*#%@"
	// XPPerLevel is the XP needed for each overall level.
	XPPerLevel = 100
	// WeekDays is the length of the weekly series.
	WeekDays = 7
)

// OverallLevel returns the account level derived from total XP.
func OverallLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// LevelProgress returns the XP earned toward the next overall level.
func LevelProgress(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp % XPPerLevel
}

// WeeklyXP sums activity XP per calendar day for the WeekDays days ending
// on now's day in loc. Days without activity are reported as zero.
func WeeklyXP(acts []model.Activity, now time.Time, loc *time.Location) []model.DailyXP {
	if loc == nil {
		loc = time.Local
	}
	today := dayStart(now, loc)
	out := make([]model.DailyXP, WeekDays)
	for i := range out {
		out[i].Day = today.AddDate(0, 0, i-(WeekDays-1))
	}
	for _, a := range acts {
		day := dayStart(a.At, loc)
		for i := range out {
			if out[i].Day.Equal(day) {
				out[i].XP += a.XP
				break
			}
		}
	}
	return out
}

// WeekStart returns the first instant covered by WeeklyXP for now.
func WeekStart(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return dayStart(now, loc).AddDate(0, 0, -(WeekDays - 1))
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// TotalXP sums the series.
func TotalXP(days []model.DailyXP) int {
	total := 0
	for _, d := range days {
		total += d.XP
	}
	return total
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the overall progress block.
func RenderSummary(w io.Writer, r Report) error {
	p := r.Progress
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Level: %d (%d/%d XP to next)\n", OverallLevel(p.XP), LevelProgress(p.XP), XPPerLevel); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total XP: %d\n", p.XP); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Streak: %d day(s)\n", p.Streak); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Lessons completed: %d\n", len(p.CompletedLessons)); err != nil {
		return err
	}
	if len(r.Weekly) > 0 {
		values := make([]float64, len(r.Weekly))
		for i, d := range r.Weekly {
			values[i] = float64(d.XP)
		}
		if _, err := fmt.Fprintf(w, "This week: %d XP [%s]\n", TotalXP(r.Weekly), Sparkline(values)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderLanguageTable prints per-language progress, highest XP first.
func RenderLanguageTable(w io.Writer, r Report) error {
	rows := LanguageRows(r)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No languages started yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Languages"); err != nil {
		return err
	}
	headers := []string{"Language", "Level", "Lessons", "XP"}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// LanguageRows returns the language table cells in display order.
func LanguageRows(r Report) [][]string {
	codes := TopLanguagesByXP(r.Progress.Languages, 0)
	rows := make([][]string, 0, len(codes))
	for _, code := range codes {
		stat := r.Progress.Languages[code]
		name := code
		if n, ok := r.Names[code]; ok && n != "" {
			name = n
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", stat.Level),
			fmt.Sprintf("%d", stat.LessonsCompleted),
			fmt.Sprintf("%d", stat.XPEarned),
		})
	}
	return rows
}

// RenderReport prints the full plain-text progress report.
func RenderReport(w io.Writer, r Report, width int) error {
	if err := RenderSummary(w, r); err != nil {
		return err
	}
	if err := RenderWeeklyBars(w, r.Weekly, width); err != nil {
		return err
	}
	return RenderLanguageTable(w, r)
}
