package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBuildAnswerRunesMarksMismatches(t *testing.T) {
	runes := buildAnswerRunes([]rune("Thank"), []rune("thing"))
	if len(runes) != 5 {
		t.Fatalf("expected 5 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("T") {
		t.Fatalf("expected case-insensitive match for first rune")
	}
	if runes[2].s != incorrectStyle.Render("a") {
		t.Fatalf("expected incorrect style for third rune")
	}
	if runes[4].s != incorrectStyle.Render("k") {
		t.Fatalf("expected incorrect style for last rune")
	}
}

func TestBuildAnswerRunesShortInput(t *testing.T) {
	runes := buildAnswerRunes([]rune("ab"), []rune("a"))
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected missing rune to be incorrect")
	}
}

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	plain := lipgloss.NewStyle()
	got := wrapText("one two three", 8, plain)
	if got != "one two\nthree" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextCountsWideRunes(t *testing.T) {
	plain := lipgloss.NewStyle()
	got := wrapText("こんにちは", 4, plain)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 || lines[0] != "こん" || lines[2] != "は" {
		t.Fatalf("unexpected wide wrap: %q", got)
	}
}

func TestDigitIndex(t *testing.T) {
	if idx, ok := digitIndex("2", 4); !ok || idx != 1 {
		t.Fatalf("expected index 1, got %d %v", idx, ok)
	}
	if _, ok := digitIndex("5", 4); ok {
		t.Fatalf("expected out of range digit to be rejected")
	}
	if _, ok := digitIndex("a", 4); ok {
		t.Fatalf("expected letter to be rejected")
	}
}
