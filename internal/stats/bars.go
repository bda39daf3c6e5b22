package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/lingua/internal/model"
)

const (
	minBarWidth         = 10
	barChar             = "█"
	barLabelWidth       = 4
	barSeparator        = " │ "
	terminalWidthBackup = 80
)

// BarWidthFor computes the longest bar that fits within totalWidth next to
// the day label and value.
func BarWidthFor(totalWidth, valueWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	barWidth := totalWidth - barLabelWidth - displayWidth(barSeparator) - 1 - valueWidth
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	return barWidth
}

// RenderWeeklyBars prints one horizontal bar per day. A non-positive width
// uses the terminal width.
func RenderWeeklyBars(w io.Writer, days []model.DailyXP, width int) error {
	if len(days) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth()
	}
	maxXP := 0
	for _, d := range days {
		if d.XP > maxXP {
			maxXP = d.XP
		}
	}
	valueWidth := len(fmt.Sprintf("%d", maxXP))
	barWidth := BarWidthFor(width, valueWidth)

	if _, err := fmt.Fprintln(w, "Weekly XP"); err != nil {
		return err
	}
	for _, d := range days {
		n := 0
		if maxXP > 0 {
			n = d.XP * barWidth / maxXP
		}
		if d.XP > 0 && n == 0 {
			n = 1
		}
		label := padCell(d.Day.Format("Mon"), barLabelWidth, false)
		bar := padCell(strings.Repeat(barChar, n), barWidth, false)
		if _, err := fmt.Fprintf(w, "%s%s%s %*d\n", label, barSeparator, bar, valueWidth, d.XP); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
