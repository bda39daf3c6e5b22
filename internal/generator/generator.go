// Package generator builds randomized rounds of word pairs for games.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/lingua/internal/content"
)

// Generator draws pairs and options from a random source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithRand returns a Generator drawing from rnd.
func NewWithRand(rnd *rand.Rand) *Generator {
	if rnd == nil {
		return New()
	}
	return &Generator{rnd: rnd}
}

// Intn returns a number in [0, n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Sample returns up to count distinct pairs in random order.
func (g *Generator) Sample(pairs []content.Pair, count int) []content.Pair {
	if count > len(pairs) || count <= 0 {
		count = len(pairs)
	}
	idx := g.rnd.Perm(len(pairs))[:count]
	out := make([]content.Pair, count)
	for i, j := range idx {
		out[i] = pairs[j]
	}
	return out
}

// Shuffle returns a shuffled copy of items.
func (g *Generator) Shuffle(items []string) []string {
	out := append([]string(nil), items...)
	g.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Options returns answer plus up to count-1 distinct distractors from pool,
// shuffled.
func (g *Generator) Options(answer string, pool []string, count int) []string {
	opts := []string{answer}
	seen := map[string]struct{}{answer: {}}
	for _, i := range g.rnd.Perm(len(pool)) {
		if len(opts) >= count {
			break
		}
		if _, ok := seen[pool[i]]; ok {
			continue
		}
		seen[pool[i]] = struct{}{}
		opts = append(opts, pool[i])
	}
	return g.Shuffle(opts)
}

// Weighted draws count pairs with replacement, favouring pairs whose left
// word has been missed. Each miss adds factor to a base weight of 1.
func (g *Generator) Weighted(pairs []content.Pair, count int, misses map[string]int, factor float64) []content.Pair {
	if len(pairs) == 0 {
		return nil
	}
	weights := make([]float64, len(pairs))
	total := 0.0
	for i, p := range pairs {
		w := 1.0 + float64(misses[p.Left])*factor
		weights[i] = w
		total += w
	}

	result := make([]content.Pair, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(pairs) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, pairs[idx])
	}
	return result
}
