package generator

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/verte-zerg/lingua/internal/content"
)

var pairs = []content.Pair{
	{Left: "Hello", Right: "Bonjour"},
	{Left: "Goodbye", Right: "Au revoir"},
	{Left: "Yes", Right: "Oui"},
	{Left: "No", Right: "Non"},
}

func TestSampleDistinct(t *testing.T) {
	g := NewWithRand(rand.New(rand.NewSource(1)))
	got := g.Sample(pairs, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, p := range got {
		if seen[p.Left] {
			t.Fatalf("duplicate pair %q", p.Left)
		}
		seen[p.Left] = true
	}
	if all := g.Sample(pairs, 10); len(all) != len(pairs) {
		t.Fatalf("expected sample capped at %d, got %d", len(pairs), len(all))
	}
}

func TestOptionsContainAnswer(t *testing.T) {
	g := NewWithRand(rand.New(rand.NewSource(7)))
	pool := []string{"Bonjour", "Au revoir", "Oui", "Non", "Oui"}
	opts := g.Options("Bonjour", pool, 4)
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %v", opts)
	}
	sorted := append([]string(nil), opts...)
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			t.Fatalf("duplicate option in %v", opts)
		}
	}
	found := false
	for _, o := range opts {
		if o == "Bonjour" {
			found = true
		}
	}
	if !found {
		t.Fatalf("answer missing from %v", opts)
	}
}

func TestWeightedFavoursMisses(t *testing.T) {
	g := NewWithRand(rand.New(rand.NewSource(3)))
	got := g.Weighted(pairs, 400, map[string]int{"No": 10}, 3)
	counts := map[string]int{}
	for _, p := range got {
		counts[p.Left]++
	}
	if counts["No"] <= counts["Hello"] {
		t.Fatalf("expected missed word to dominate, got %v", counts)
	}
}
