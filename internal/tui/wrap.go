package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildAnswerRunes renders expected with each rune styled by whether the
// learner typed the same rune at that position, ignoring case.
func buildAnswerRunes(expected, typed []rune) []styledRune {
	out := make([]styledRune, 0, len(expected))
	for i, target := range expected {
		style := incorrectStyle
		if i < len(typed) && unicode.ToLower(typed[i]) == unicode.ToLower(target) {
			style = correctStyle
		}
		if target == ' ' {
			style = pendingStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(target)),
			width:   runewidth.RuneWidth(target),
			isSpace: target == ' ',
		})
	}
	return out
}

func plainRunes(text string, style lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

// wrapText wraps text at spaces so no line exceeds width cells. Lines
// without spaces, as in Japanese or Chinese, break at the cell limit.
func wrapText(text string, width int, style lipgloss.Style) string {
	paragraphs := strings.Split(text, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapStyledRunes(plainRunes(p, style), width)
	}
	return strings.Join(paragraphs, "\n")
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
