package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/games"
	"github.com/verte-zerg/lingua/internal/generator"
	"github.com/verte-zerg/lingua/internal/store"
)

func testPairs(t *testing.T) []content.Pair {
	t.Helper()
	c, err := content.Builtin()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c.Pairs()
}

func newTestGame(t *testing.T, id string, now func() time.Time) *GameModel {
	t.Helper()
	gen := generator.NewWithRand(rand.New(rand.NewSource(5)))
	m, err := NewGameModel(context.Background(), id, testPairs(t), gen, newTestLedger(t), nil, "acct-1", now, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return m
}

func TestGameModelUnknownGame(t *testing.T) {
	gen := generator.NewWithRand(rand.New(rand.NewSource(5)))
	if _, err := NewGameModel(context.Background(), "listening", testPairs(t), gen, newTestLedger(t), nil, "acct-1", nil, nil); err == nil {
		t.Fatalf("expected error for unknown game")
	}
}

func TestGameModelSpeedQuizWin(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	m := newTestGame(t, games.SpeedQuizID, func() time.Time { return now })
	for !m.quiz.Done() {
		q, _ := m.quiz.Current()
		for i, opt := range q.Options {
			if opt == q.Answer {
				m.quizCursor = i
			}
		}
		send(m, key(tea.KeyEnter))
	}
	if !m.Rewarded() {
		t.Fatalf("expected reward after winning")
	}
	if m.Progress().XP != 25 {
		t.Fatalf("expected 25 xp, got %d", m.Progress().XP)
	}
	if !strings.Contains(m.View(), "+25 XP") {
		t.Fatalf("expected reward in view")
	}
}

func TestGameModelSpeedQuizRecordsMisses(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	tracker := store.NewMemory()
	gen := generator.NewWithRand(rand.New(rand.NewSource(5)))
	m, err := NewGameModel(context.Background(), games.SpeedQuizID, testPairs(t), gen, newTestLedger(t), tracker, "acct-1", func() time.Time { return now }, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	q, _ := m.quiz.Current()
	for i, opt := range q.Options {
		if opt != q.Answer {
			m.quizCursor = i
			break
		}
	}
	send(m, key(tea.KeyEnter))

	misses, err := tracker.WordMisses(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("word misses: %v", err)
	}
	if misses[q.Word] != 1 || len(misses) != 1 {
		t.Fatalf("expected one miss for %q, got %v", q.Word, misses)
	}
	if m.Rewarded() {
		t.Fatalf("quiz should still be running")
	}
}

func TestGameModelSpeedQuizTimeout(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	now := start
	m := newTestGame(t, games.SpeedQuizID, func() time.Time { return now })
	now = start.Add(games.SpeedQuizLimit + time.Second)
	send(m, tickMsg(now))
	if !m.quiz.Done() || m.Rewarded() {
		t.Fatalf("expected timed out quiz without reward")
	}
	if !strings.Contains(m.View(), "Time's up!") {
		t.Fatalf("expected timeout message")
	}
}

func TestGameModelMemoryWin(t *testing.T) {
	m := newTestGame(t, games.MemoryCardsID, nil)
	cards := m.memory.Cards()
	done := map[int]bool{}
	for i, c := range cards {
		if done[c.Pair] {
			continue
		}
		for j, other := range cards {
			if j != i && other.Pair == c.Pair {
				m.cardCursor = i
				send(m, key(tea.KeyEnter))
				m.cardCursor = j
				send(m, key(tea.KeyEnter))
			}
		}
		done[c.Pair] = true
	}
	if !m.memory.Done() || !m.Rewarded() || m.Progress().XP != 20 {
		t.Fatalf("expected won memory game, done=%v rewarded=%v xp=%d", m.memory.Done(), m.Rewarded(), m.Progress().XP)
	}
}

func TestGameModelWordMatchWin(t *testing.T) {
	m := newTestGame(t, games.WordMatchID, nil)
	pairs := testPairs(t)
	rights := m.match.Rights()
	for i, left := range m.match.Lefts() {
		var want string
		for _, p := range pairs {
			if p.Left == left {
				want = p.Right
			}
		}
		m.column = 0
		m.cursors[0] = i
		send(m, key(tea.KeyEnter))
		for j, r := range rights {
			if r == want {
				m.cursors[1] = j
			}
		}
		send(m, key(tea.KeyEnter))
	}
	if !m.Rewarded() || m.Progress().XP != 15 {
		t.Fatalf("expected won word match, rewarded=%v xp=%d", m.Rewarded(), m.Progress().XP)
	}
}
