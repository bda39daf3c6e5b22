package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/lingua/internal/content"
)

func TestReadPairs(t *testing.T) {
	input := strings.Join([]string{
		"# greetings",
		"Hello\tHola",
		"",
		"Goodbye = Adiós",
		"Cat=Gato",
		"hello\tSaludos",
	}, "\n")
	pairs, err := ReadPairs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read pairs: %v", err)
	}
	want := []content.Pair{
		{Left: "Hello", Right: "Hola"},
		{Left: "Goodbye", Right: "Adiós"},
		{Left: "Cat", Right: "Gato"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %d: %v", len(want), len(pairs), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pair %d: expected %v, got %v", i, want[i], pairs[i])
		}
	}
}

func TestReadPairsRejectsMalformedLine(t *testing.T) {
	if _, err := ReadPairs(strings.NewReader("Hello\tHola\nlonely\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}
	if _, err := ReadPairs(strings.NewReader("# only comments\n")); err == nil {
		t.Fatalf("expected empty list error")
	}
}

func TestLoadPairsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")
	if err := os.WriteFile(path, []byte("Dog\tPerro\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	pairs, err := LoadPairs(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Right != "Perro" {
		t.Fatalf("unexpected pairs %v", pairs)
	}
	if _, err := LoadPairs(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected missing file error")
	}
}
