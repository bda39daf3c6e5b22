package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Language", "Level", "XP"}
	rows := [][]string{
		{"French", "2", "150"},
		{"Italian", "10", "7"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Language Level  XP" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "French       2 150" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Italian     10   7" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesCellWidth(t *testing.T) {
	lines := formatTable([]string{"Name", "XP"}, [][]string{{"日本語", "5"}, {"en", "12"}}, map[int]bool{1: true})
	if lines[1] != "日本語  5" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "en     12" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}
