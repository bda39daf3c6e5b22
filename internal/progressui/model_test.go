package progressui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lingua/internal/model"
	"github.com/verte-zerg/lingua/internal/stats"
)

func sampleReport() stats.Report {
	p := model.NewProgress()
	p.XP = 130
	p.Streak = 4
	p.CompletedLessons["fr-basics-1"] = struct{}{}
	p.Languages["fr"] = model.LanguageStat{Level: 1, LessonsCompleted: 1, XPEarned: 12}
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	weekly := make([]model.DailyXP, stats.WeekDays)
	for i := range weekly {
		weekly[i] = model.DailyXP{Day: day.AddDate(0, 0, i-6), XP: i * 5}
	}
	return stats.Report{Progress: p, Weekly: weekly, Names: map[string]string{"fr": "French"}}
}

func newTestModel(t *testing.T, load Loader) *Model {
	t.Helper()
	m := NewModel(load, "ann", map[string]string{"fr-basics-1": "Salutations"})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestOverviewShowsCards(t *testing.T) {
	m := newTestModel(t, func(context.Context) (stats.Report, error) { return sampleReport(), nil })
	view := m.View()
	for _, want := range []string{"Level", "130", "4 days", "30/100 XP", "Weekly XP", "Learner: ann"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestTabsCycle(t *testing.T) {
	m := newTestModel(t, func(context.Context) (stats.Report, error) { return sampleReport(), nil })
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabLanguages {
		t.Fatalf("expected languages tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "French") {
		t.Fatalf("expected language row in view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(m.View(), "Salutations") {
		t.Fatalf("expected lesson title in view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected wrap to overview, got %d", m.activeTab)
	}
}

func TestLoadErrorShown(t *testing.T) {
	m := newTestModel(t, func(context.Context) (stats.Report, error) { return stats.Report{}, errors.New("db locked") })
	if !strings.Contains(m.View(), "db locked") {
		t.Fatalf("expected error in footer")
	}
}
