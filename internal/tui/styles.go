// Package tui provides the Bubble Tea lesson and game screens.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	textStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	accentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle        = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	activeCardStyle  = cardStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	matchedCardStyle = cardStyle.BorderForeground(lipgloss.Color("#52C41A"))
)

const contentRatio = 0.70

// layout centers body in a width x height frame with footer on the last line.
func layout(width, height int, body, footer string) string {
	if width == 0 || height == 0 {
		if footer == "" {
			return body
		}
		return body + "\n" + footer
	}
	if footer == "" || height < 3 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}
	main := lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, footer)
	return main + "\n" + footerLine
}

func contentWidth(width int) int {
	if width <= 0 {
		return 60
	}
	w := int(float64(width) * contentRatio)
	if w < 1 {
		w = 1
	}
	return w
}

func optionList(options []string, cursor int) string {
	lines := make([]string, len(options))
	for i, opt := range options {
		label := optionLabel(i) + " " + opt
		if i == cursor {
			lines[i] = selectedStyle.Render("> " + label)
		} else {
			lines[i] = textStyle.Render("  " + label)
		}
	}
	return strings.Join(lines, "\n")
}

func optionLabel(i int) string {
	return string(rune('1'+i)) + "."
}

// digitIndex maps "1".."9" to 0..8.
func digitIndex(key string, count int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0] - '1')
	if idx >= count {
		return 0, false
	}
	return idx, true
}
