package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/games"
	"github.com/verte-zerg/lingua/internal/generator"
	"github.com/verte-zerg/lingua/internal/model"
)

const memoryColumns = 4

type tickMsg time.Time

// GameModel implements the Bubble Tea mini-game screen.
type GameModel struct {
	ctx       context.Context
	info      games.Info
	awarder   games.Awarder
	misses    games.MissTracker
	accountID string
	now       func() time.Time
	log       *zap.Logger

	width  int
	height int

	match  *games.WordMatch
	memory *games.MemoryCards
	quiz   *games.SpeedQuiz

	// word match selection
	column  int
	leftSel int
	cursors [2]int

	// memory cards
	cardCursor int
	shown      []int

	// speed quiz
	quizCursor int
	lastRight  *bool

	rewarded bool
	progress model.Progress
	status   string
	err      error
}

// NewGameModel builds the screen for the game with id over pairs. misses
// may be nil; when set, speed quiz answers feed it and earlier misses are
// asked more often.
func NewGameModel(ctx context.Context, id string, pairs []content.Pair, gen *generator.Generator, awarder games.Awarder, misses games.MissTracker, accountID string, now func() time.Time, log *zap.Logger) (*GameModel, error) {
	info, err := games.Lookup(id)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	m := &GameModel{
		ctx:       ctx,
		info:      info,
		awarder:   awarder,
		misses:    misses,
		accountID: accountID,
		now:       now,
		log:       log,
		leftSel:   -1,
	}
	switch id {
	case games.WordMatchID:
		m.match, err = games.NewWordMatch(gen, pairs)
	case games.MemoryCardsID:
		m.memory, err = games.NewMemoryCards(gen, pairs)
	case games.SpeedQuizID:
		m.quiz, err = games.NewSpeedQuiz(gen, pairs, m.loadMisses(), now())
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *GameModel) loadMisses() map[string]int {
	if m.misses == nil {
		return nil
	}
	counts, err := m.misses.WordMisses(m.ctx, m.accountID)
	if err != nil {
		m.log.Warn("failed to load word misses", zap.Error(err))
		return nil
	}
	return counts
}

func (m *GameModel) recordMiss(word string) {
	if m.misses == nil {
		return
	}
	if err := m.misses.RecordMiss(m.ctx, m.accountID, word); err != nil {
		m.log.Warn("failed to record miss", zap.String("word", word), zap.Error(err))
	}
}

// Rewarded reports whether the game was won and credited.
func (m *GameModel) Rewarded() bool { return m.rewarded }

// Progress returns the ledger record after the reward.
func (m *GameModel) Progress() model.Progress { return m.progress }

// Err returns the error from crediting the reward, if any.
func (m *GameModel) Err() error { return m.err }

// Init implements tea.Model.
func (m *GameModel) Init() tea.Cmd {
	if m.quiz != nil {
		return tick()
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.quiz == nil || m.quiz.Done() {
			return m, nil
		}
		if m.quiz.Expired(m.now()) {
			m.status = "Time's up!"
			return m, nil
		}
		return m, tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if m.done() {
			if msg.Type == tea.KeyEnter || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch {
		case m.match != nil:
			m.updateWordMatch(msg)
		case m.memory != nil:
			m.updateMemory(msg)
		case m.quiz != nil:
			m.updateQuiz(msg)
		}
		m.finishIfWon()
	}
	return m, nil
}

func (m *GameModel) done() bool {
	switch {
	case m.match != nil:
		return m.match.Done()
	case m.memory != nil:
		return m.memory.Done()
	case m.quiz != nil:
		return m.quiz.Done()
	}
	return true
}

func (m *GameModel) won() bool {
	switch {
	case m.match != nil:
		return m.match.Done()
	case m.memory != nil:
		return m.memory.Done()
	case m.quiz != nil:
		return m.quiz.Won()
	}
	return false
}

func (m *GameModel) finishIfWon() {
	if m.rewarded || m.err != nil || !m.won() {
		return
	}
	p, err := games.Reward(m.ctx, m.awarder, m.accountID, m.info)
	if err != nil {
		m.err = err
		m.log.Error("game reward failed", zap.String("game", m.info.ID), zap.Error(err))
		return
	}
	m.rewarded = true
	m.progress = p
	m.log.Info("game won", zap.String("game", m.info.ID), zap.Int("xp", m.info.XPReward), zap.Int("total_xp", p.XP))
}

func (m *GameModel) updateWordMatch(msg tea.KeyMsg) {
	size := len(m.match.Lefts())
	switch msg.String() {
	case "tab", "left", "right", "h", "l":
		m.column = 1 - m.column
	case "up", "k":
		m.cursors[m.column] = (m.cursors[m.column] - 1 + size) % size
	case "down", "j":
		m.cursors[m.column] = (m.cursors[m.column] + 1) % size
	case "enter", " ":
		if m.column == 0 {
			m.leftSel = m.cursors[0]
			m.column = 1
			return
		}
		if m.leftSel < 0 {
			m.status = "Pick a word on the left first."
			return
		}
		ok, err := m.match.Try(m.leftSel, m.cursors[1])
		if err != nil {
			return
		}
		if ok {
			m.status = correctStyle.Render("Match!")
		} else {
			m.status = incorrectStyle.Render("Try again.")
		}
		m.leftSel = -1
		m.column = 0
	}
}

func (m *GameModel) updateMemory(msg tea.KeyMsg) {
	count := len(m.memory.Cards())
	if len(m.shown) == 2 {
		// A mismatched pair stays visible until the next key.
		m.shown = nil
	}
	switch msg.String() {
	case "left", "h":
		m.cardCursor = (m.cardCursor - 1 + count) % count
	case "right", "l":
		m.cardCursor = (m.cardCursor + 1) % count
	case "up", "k":
		m.cardCursor = (m.cardCursor - memoryColumns + count) % count
	case "down", "j":
		m.cardCursor = (m.cardCursor + memoryColumns) % count
	case "enter", " ":
		first := m.memory.Open()
		flip, err := m.memory.Turn(m.cardCursor)
		if err != nil {
			return
		}
		switch flip {
		case games.FlipMismatch:
			m.shown = []int{first, m.cardCursor}
			m.status = incorrectStyle.Render("No match.")
		case games.FlipMatch:
			m.status = correctStyle.Render("Pair found!")
		case games.FlipFirst:
			m.status = ""
		}
	}
}

func (m *GameModel) updateQuiz(msg tea.KeyMsg) {
	q, ok := m.quiz.Current()
	if !ok {
		return
	}
	pick := -1
	if idx, ok := digitIndex(msg.String(), len(q.Options)); ok {
		pick = idx
	}
	switch msg.String() {
	case "up", "k":
		m.quizCursor = (m.quizCursor - 1 + len(q.Options)) % len(q.Options)
	case "down", "j":
		m.quizCursor = (m.quizCursor + 1) % len(q.Options)
	case "enter":
		pick = m.quizCursor
	}
	if pick < 0 {
		return
	}
	right, err := m.quiz.Answer(q.Options[pick], m.now())
	if err != nil {
		m.status = "Time's up!"
		return
	}
	if !right {
		m.recordMiss(q.Word)
	}
	m.lastRight = &right
	m.quizCursor = 0
}

// View implements tea.Model.
func (m *GameModel) View() string {
	header := accentStyle.Render(m.info.Title) + "  " + pendingStyle.Render(m.info.Description)
	var body string
	switch {
	case m.err != nil:
		body = incorrectStyle.Render("Error: " + m.err.Error())
	case m.done():
		body = m.renderResult()
	case m.match != nil:
		body = m.renderWordMatch()
	case m.memory != nil:
		body = m.renderMemory()
	case m.quiz != nil:
		body = m.renderQuiz()
	}
	if m.status != "" && !m.done() {
		body += "\n\n" + m.status
	}
	return layout(m.width, m.height, header+"\n\n"+body, m.renderFooter())
}

func (m *GameModel) renderWordMatch() string {
	lefts, rights := m.match.Lefts(), m.match.Rights()
	render := func(items []string, col int, matched func(string) bool) string {
		lines := make([]string, len(items))
		for i, item := range items {
			style := cardStyle
			switch {
			case matched(item):
				style = matchedCardStyle
			case col == 0 && i == m.leftSel, col == m.column && i == m.cursors[col]:
				style = activeCardStyle
			}
			lines[i] = style.Width(20).Render(item)
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	left := render(lefts, 0, m.match.Matched)
	right := render(rights, 1, m.match.RightMatched)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
}

func (m *GameModel) renderMemory() string {
	cards := m.memory.Cards()
	open := m.memory.Open()
	var rows []string
	for start := 0; start < len(cards); start += memoryColumns {
		end := start + memoryColumns
		if end > len(cards) {
			end = len(cards)
		}
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			c := cards[i]
			text := "?"
			style := cardStyle
			if c.Matched || i == open || containsInt(m.shown, i) {
				text = c.Text
			}
			if c.Matched {
				style = matchedCardStyle
			}
			if i == m.cardCursor {
				style = activeCardStyle
			}
			cells = append(cells, style.Width(16).Align(lipgloss.Center).Render(text))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *GameModel) renderQuiz() string {
	q, ok := m.quiz.Current()
	if !ok {
		return ""
	}
	lines := []string{
		fmt.Sprintf("What is %s in French?", accentStyle.Render(`"`+q.Word+`"`)),
		"",
		optionList(q.Options, m.quizCursor),
	}
	if m.lastRight != nil {
		if *m.lastRight {
			lines = append(lines, "", correctStyle.Render("Correct!"))
		} else {
			lines = append(lines, "", incorrectStyle.Render("Wrong."))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *GameModel) renderResult() string {
	var lines []string
	switch {
	case m.quiz != nil && !m.quiz.Won():
		lines = append(lines, incorrectStyle.Render("Time's up!"),
			fmt.Sprintf("Score: %d/%d", m.quiz.Score(), m.quiz.Total()),
			pendingStyle.Render("Answer every question in time to earn XP."))
	default:
		lines = append(lines, correctStyle.Render("Well done!"))
		switch {
		case m.quiz != nil:
			lines = append(lines, fmt.Sprintf("Score: %d/%d", m.quiz.Score(), m.quiz.Total()))
		case m.memory != nil:
			lines = append(lines, fmt.Sprintf("Moves: %d", m.memory.Moves()))
		case m.match != nil:
			lines = append(lines, fmt.Sprintf("Mistakes: %d", m.match.Misses()))
		}
		if m.rewarded {
			lines = append(lines, accentStyle.Render(fmt.Sprintf("+%d XP", m.info.XPReward)),
				fmt.Sprintf("Total XP: %d", m.progress.XP))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *GameModel) renderFooter() string {
	var segments []string
	switch {
	case m.done():
		segments = append(segments, "enter quit")
	case m.match != nil:
		segments = append(segments, fmt.Sprintf("Matched %d/%d", m.match.Matches(), games.WordMatchPairs), "tab switch column  enter select")
	case m.memory != nil:
		segments = append(segments, fmt.Sprintf("Pairs %d/%d", m.memory.Matches(), games.MemoryPairs), fmt.Sprintf("Moves %d", m.memory.Moves()))
	case m.quiz != nil:
		remaining := m.quiz.Remaining(m.now())
		segments = append(segments,
			fmt.Sprintf("Question %d/%d", m.quiz.Index()+1, m.quiz.Total()),
			fmt.Sprintf("Score %d", m.quiz.Score()),
			fmt.Sprintf("%ds left", int(remaining.Round(time.Second)/time.Second)))
	}
	segments = append(segments, "esc exit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func containsInt(items []int, v int) bool {
	for _, i := range items {
		if i == v {
			return true
		}
	}
	return false
}
