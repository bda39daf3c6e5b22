package games

import (
	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/generator"
)

// WordMatchPairs is the number of pairs on the board.
const WordMatchPairs = 4

// WordMatch pairs a column of words with a shuffled column of translations.
type WordMatch struct {
	pairs   []content.Pair
	rights  []string
	matched map[string]bool
	misses  int
}

// NewWordMatch draws a board from pairs.
func NewWordMatch(gen *generator.Generator, pairs []content.Pair) (*WordMatch, error) {
	if len(pairs) < WordMatchPairs {
		return nil, ErrNotEnoughPairs
	}
	board := gen.Sample(pairs, WordMatchPairs)
	rights := make([]string, len(board))
	for i, p := range board {
		rights[i] = p.Right
	}
	return &WordMatch{
		pairs:   board,
		rights:  gen.Shuffle(rights),
		matched: map[string]bool{},
	}, nil
}

// Lefts returns the word column.
func (w *WordMatch) Lefts() []string {
	out := make([]string, len(w.pairs))
	for i, p := range w.pairs {
		out[i] = p.Left
	}
	return out
}

// Rights returns the shuffled translation column.
func (w *WordMatch) Rights() []string {
	return append([]string(nil), w.rights...)
}

// Matched reports whether the left word has been matched.
func (w *WordMatch) Matched(left string) bool {
	return w.matched[left]
}

// RightMatched reports whether the translation has been used.
func (w *WordMatch) RightMatched(right string) bool {
	for _, p := range w.pairs {
		if p.Right == right {
			return w.matched[p.Left]
		}
	}
	return false
}

// Try attempts to pair the left item at li with the right item at ri.
func (w *WordMatch) Try(li, ri int) (bool, error) {
	if w.Done() {
		return false, ErrGameOver
	}
	if li < 0 || li >= len(w.pairs) || ri < 0 || ri >= len(w.rights) {
		return false, nil
	}
	p := w.pairs[li]
	if w.matched[p.Left] {
		return false, nil
	}
	if p.Right != w.rights[ri] {
		w.misses++
		return false, nil
	}
	w.matched[p.Left] = true
	return true, nil
}

// Matches returns the number of matched pairs.
func (w *WordMatch) Matches() int { return len(w.matched) }

// Misses returns the number of wrong attempts.
func (w *WordMatch) Misses() int { return w.misses }

// Done reports whether every pair is matched.
func (w *WordMatch) Done() bool { return len(w.matched) == len(w.pairs) }
