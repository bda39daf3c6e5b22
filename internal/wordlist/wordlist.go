// Package wordlist loads custom word pairs for the mini-games.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/lingua/internal/content"
)

// Separators accepted between a word and its translation, in priority order.
var separators = []string{"\t", " = ", "="}

// LoadPairs reads one "word<TAB>translation" pair per line from path.
// Blank lines and lines starting with # are skipped.
func LoadPairs(path string) ([]content.Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return ReadPairs(file)
}

// ReadPairs parses pairs from r. Duplicate words keep their first translation.
func ReadPairs(r io.Reader) ([]content.Pair, error) {
	var pairs []content.Pair
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pair, ok := splitPair(line)
		if !ok {
			return nil, fmt.Errorf("line %d: expected word and translation", lineNo)
		}
		key := strings.ToLower(pair.Left)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return pairs, nil
}

func splitPair(line string) (content.Pair, bool) {
	for _, sep := range separators {
		left, right, ok := strings.Cut(line, sep)
		if !ok {
			continue
		}
		left = strings.TrimSpace(left)
		right = strings.TrimSpace(right)
		if left == "" || right == "" {
			return content.Pair{}, false
		}
		return content.Pair{Left: left, Right: right}, true
	}
	return content.Pair{}, false
}
