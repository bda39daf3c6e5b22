package games

import (
	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/generator"
)

// MemoryPairs is the number of pairs laid out face down.
const MemoryPairs = 4

// Card is one face of a pair.
type Card struct {
	Text        string
	Pair        int
	Translation bool
	Matched     bool
}

// Flip is the outcome of turning a card.
type Flip int

// Flip outcomes.
const (
	FlipIgnored Flip = iota
	FlipFirst
	FlipMatch
	FlipMismatch
)

// MemoryCards is a concentration game over word/translation cards.
type MemoryCards struct {
	cards   []Card
	open    int
	moves   int
	matches int
}

// NewMemoryCards lays out MemoryPairs pairs in random order.
func NewMemoryCards(gen *generator.Generator, pairs []content.Pair) (*MemoryCards, error) {
	if len(pairs) < MemoryPairs {
		return nil, ErrNotEnoughPairs
	}
	board := gen.Sample(pairs, MemoryPairs)
	cards := make([]Card, 0, 2*len(board))
	for i, p := range board {
		cards = append(cards,
			Card{Text: p.Left, Pair: i},
			Card{Text: p.Right, Pair: i, Translation: true},
		)
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := gen.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return &MemoryCards{cards: cards, open: -1}, nil
}

// Cards returns the layout.
func (m *MemoryCards) Cards() []Card {
	return append([]Card(nil), m.cards...)
}

// Open returns the index of the card waiting for its partner, or -1.
func (m *MemoryCards) Open() int { return m.open }

// Turn flips card i. A second flip completes a move: the two cards stay
// up on a match and are turned back otherwise.
func (m *MemoryCards) Turn(i int) (Flip, error) {
	if m.Done() {
		return FlipIgnored, ErrGameOver
	}
	if i < 0 || i >= len(m.cards) || m.cards[i].Matched || i == m.open {
		return FlipIgnored, nil
	}
	if m.open < 0 {
		m.open = i
		return FlipFirst, nil
	}
	first := m.open
	m.open = -1
	m.moves++
	a, b := m.cards[first], m.cards[i]
	if a.Pair == b.Pair && a.Translation != b.Translation {
		m.cards[first].Matched = true
		m.cards[i].Matched = true
		m.matches++
		return FlipMatch, nil
	}
	return FlipMismatch, nil
}

// Moves returns the number of completed moves.
func (m *MemoryCards) Moves() int { return m.moves }

// Matches returns the number of found pairs.
func (m *MemoryCards) Matches() int { return m.matches }

// Done reports whether every pair is found.
func (m *MemoryCards) Done() bool { return m.matches == len(m.cards)/2 }
