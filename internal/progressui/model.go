// Package progressui provides the Bubble Tea progress dashboard.
package progressui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lingua/internal/stats"
)

const (
	tabOverview = iota
	tabLanguages
	tabLessons
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Loader builds a fresh report.
type Loader func(ctx context.Context) (stats.Report, error)

// Model implements the Bubble Tea progress dashboard.
type Model struct {
	load    Loader
	user    string
	lessons map[string]string

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	langTable table.Model

	width  int
	height int
}

// NewModel constructs the dashboard. lessons maps lesson ids to titles.
func NewModel(load Loader, user string, lessons map[string]string) *Model {
	m := &Model{
		load:    load,
		user:    user,
		lessons: lessons,
		tabs:    []string{"Overview", "Languages", "Lessons"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.langTable = buildLangTable(nil, 0, 1)
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refreshReport()
			return m, nil
		case "g", "home":
			if m.activeTab == tabLanguages {
				m.langTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabLanguages {
				m.langTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabLanguages {
				var cmd tea.Cmd
				m.langTable, cmd = m.langTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.langTable.SetWidth(m.width)
	m.langTable.SetHeight(maxInt(1, vpHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	if m.activeTab == tabLanguages {
		m.langTable.Focus()
	} else {
		m.langTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := fmt.Sprintf("Learner: %s", m.user)
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Refresh: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabLanguages {
		if len(m.report.Progress.Languages) == 0 {
			return fitLines("No languages started yet.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.langTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := m.load(context.Background())
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load progress.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.langTable = buildLangTable(stats.LanguageRows(report), width, bodyHeight)
	if m.activeTab == tabLanguages {
		m.langTable.Focus()
	}
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabLessons].SetContent(renderLessons(m.report, m.lessons))
}

func renderOverview(r stats.Report, width int) string {
	cards := renderSummaryCards(r, width)
	var buf bytes.Buffer
	if err := stats.RenderWeeklyBars(&buf, r.Weekly, minInt(width, 80)); err != nil {
		return cards + "\n\n" + fmt.Sprintf("Failed to render weekly chart: %v", err)
	}
	return strings.TrimRight(cards+"\n\n"+buf.String(), "\n")
}

func renderSummaryCards(r stats.Report, width int) string {
	p := r.Progress
	cards := []string{
		metricCard("Level", fmt.Sprintf("%d", stats.OverallLevel(p.XP))),
		metricCard("Total XP", fmt.Sprintf("%d", p.XP)),
		metricCard("Streak", fmt.Sprintf("%d days", p.Streak)),
		metricCard("Lessons", fmt.Sprintf("%d", len(p.CompletedLessons))),
		metricCard("Next level", fmt.Sprintf("%d/%d XP", stats.LevelProgress(p.XP), stats.XPPerLevel)),
		metricCard("This week", fmt.Sprintf("%d XP", stats.TotalXP(r.Weekly))),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderLessons(r stats.Report, titles map[string]string) string {
	ids := r.Progress.CompletedLessons.Sorted()
	if len(ids) == 0 {
		return "No lessons completed yet."
	}
	lines := make([]string, 0, len(ids)+1)
	lines = append(lines, headerStyle.Render(fmt.Sprintf("Completed lessons (%d)", len(ids))))
	for _, id := range ids {
		title := titles[id]
		if title == "" {
			lines = append(lines, "✓ "+id)
			continue
		}
		lines = append(lines, fmt.Sprintf("✓ %s  %s", title, headerStyle.Render(id)))
	}
	return strings.Join(lines, "\n")
}

func buildLangTable(rows [][]string, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Language", Width: 14},
		{Title: "Level", Width: 6},
		{Title: "Lessons", Width: 8},
		{Title: "XP", Width: 8},
	}
	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row(r))
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(langTableStyles())
	return t
}

func langTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
