package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/generator"
	"github.com/verte-zerg/lingua/internal/lesson"
)

// LessonModel implements the Bubble Tea lesson screen.
type LessonModel struct {
	ctx context.Context
	run *lesson.Run
	gen *generator.Generator
	log *zap.Logger

	width  int
	height int

	card int

	cursor  int
	options []string
	matches []string
	input   textinput.Model
	typed   string
	result  *lesson.Result

	err error
}

// NewLessonModel constructs the lesson screen for run.
func NewLessonModel(ctx context.Context, run *lesson.Run, gen *generator.Generator, log *zap.Logger) *LessonModel {
	if log == nil {
		log = zap.NewNop()
	}
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type the missing word"
	input.CharLimit = 64
	m := &LessonModel{
		ctx:   ctx,
		run:   run,
		gen:   gen,
		log:   log,
		input: input,
	}
	m.prepareExercise()
	return m
}

// Run returns the underlying lesson run.
func (m *LessonModel) Run() *lesson.Run { return m.run }

// Err returns the error that stopped the lesson, if any.
func (m *LessonModel) Err() error { return m.err }

// Init implements tea.Model.
func (m *LessonModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *LessonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = contentWidth(m.width) - 2
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if m.err != nil {
			return m, tea.Quit
		}
		switch m.run.Phase() {
		case lesson.PhaseVocabulary:
			return m.updateCards(msg)
		case lesson.PhaseExercises:
			return m.updateExercise(msg)
		default:
			if msg.Type == tea.KeyEnter || msg.String() == "q" {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *LessonModel) cards() []string {
	l := m.run.Lesson()
	out := make([]string, 0, len(l.Vocabulary)+len(l.Grammar))
	for _, v := range l.Vocabulary {
		lines := []string{accentStyle.Render(v.Word)}
		if v.Pronunciation != "" {
			lines = append(lines, pendingStyle.Render(v.Pronunciation))
		}
		lines = append(lines, textStyle.Render(v.Translation))
		if v.Example != "" {
			lines = append(lines, "", pendingStyle.Render(v.Example))
		}
		out = append(out, strings.Join(lines, "\n"))
	}
	for _, g := range l.Grammar {
		lines := []string{accentStyle.Render(g.Title), wrapText(g.Explanation, contentWidth(m.width)-4, textStyle)}
		if len(g.Examples) > 0 {
			lines = append(lines, "")
			for _, ex := range g.Examples {
				lines = append(lines, pendingStyle.Render("• "+ex))
			}
		}
		out = append(out, strings.Join(lines, "\n"))
	}
	return out
}

func (m *LessonModel) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.cards())
	switch msg.String() {
	case "left", "h":
		if m.card > 0 {
			m.card--
		}
	case "right", "l":
		if m.card < count-1 {
			m.card++
		}
	case "enter":
		if m.card < count-1 {
			m.card++
			return m, nil
		}
		return m.startExercises()
	case "s":
		return m.startExercises()
	}
	return m, nil
}

func (m *LessonModel) startExercises() (tea.Model, tea.Cmd) {
	if err := m.run.StartExercises(m.ctx); err != nil {
		m.fail(err)
		return m, nil
	}
	return m, m.prepareExercise()
}

func (m *LessonModel) updateExercise(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.result != nil {
		if msg.Type != tea.KeyEnter {
			return m, nil
		}
		if err := m.run.Next(m.ctx); err != nil {
			m.fail(err)
			return m, nil
		}
		if m.run.Phase() == lesson.PhaseComplete {
			p := m.run.Progress()
			m.log.Info("lesson finished",
				zap.String("lesson", m.run.Lesson().ID),
				zap.Int("correct", m.run.Correct()),
				zap.Int("xp", m.run.TotalXP()),
				zap.Int("total_xp", p.XP))
			return m, nil
		}
		return m, m.prepareExercise()
	}

	ex, ok := m.run.Current()
	if !ok {
		return m, nil
	}
	switch e := ex.(type) {
	case content.FillBlank:
		if msg.Type == tea.KeyEnter {
			m.typed = m.input.Value()
			return m.submit(content.Response{Text: m.typed})
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case content.Matching:
		return m.updateMatching(e, msg)
	default:
		return m.updateChoice(msg)
	}
}

func (m *LessonModel) updateChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if idx, ok := digitIndex(msg.String(), len(m.options)); ok {
		m.cursor = idx
		return m.submit(content.Response{Text: m.options[idx]})
	}
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter":
		if len(m.options) > 0 {
			return m.submit(content.Response{Text: m.options[m.cursor]})
		}
	}
	return m, nil
}

func (m *LessonModel) updateMatching(e content.Matching, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pick := -1
	if idx, ok := digitIndex(msg.String(), len(m.options)); ok {
		pick = idx
	}
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter":
		pick = m.cursor
	case "backspace":
		if len(m.matches) > 0 {
			m.matches = m.matches[:len(m.matches)-1]
		}
	}
	if pick < 0 || pick >= len(m.options) {
		return m, nil
	}
	m.cursor = pick
	m.matches = append(m.matches, m.options[pick])
	if len(m.matches) < len(e.Pairs) {
		return m, nil
	}
	return m.submit(content.Response{Matches: m.matches})
}

func (m *LessonModel) submit(resp content.Response) (tea.Model, tea.Cmd) {
	res, err := m.run.Submit(resp)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.result = &res
	m.input.Blur()
	return m, nil
}

func (m *LessonModel) moveCursor(delta int) {
	if len(m.options) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.options)) % len(m.options)
}

func (m *LessonModel) prepareExercise() tea.Cmd {
	m.cursor = 0
	m.options = nil
	m.matches = nil
	m.typed = ""
	m.result = nil
	m.input.Reset()
	m.input.Blur()
	ex, ok := m.run.Current()
	if !ok {
		return nil
	}
	switch e := ex.(type) {
	case content.MultipleChoice:
		m.options = append([]string(nil), e.Options...)
	case content.TrueFalse:
		m.options = []string{"True", "False"}
	case content.Matching:
		m.options = m.gen.Shuffle(e.Rights())
	case content.FillBlank:
		return m.input.Focus()
	}
	return nil
}

func (m *LessonModel) fail(err error) {
	m.err = err
	m.log.Error("lesson failed", zap.String("lesson", m.run.Lesson().ID), zap.Error(err))
}

// View implements tea.Model.
func (m *LessonModel) View() string {
	return layout(m.width, m.height, m.renderBody(), m.renderFooter())
}

func (m *LessonModel) renderBody() string {
	l := m.run.Lesson()
	header := accentStyle.Render(l.Title)
	if m.err != nil {
		return header + "\n\n" + incorrectStyle.Render("Error: "+m.err.Error()) + "\n" + footerStyle.Render("press any key to exit")
	}
	var body string
	switch m.run.Phase() {
	case lesson.PhaseVocabulary:
		cards := m.cards()
		if len(cards) > 0 {
			body = cardStyle.Width(contentWidth(m.width)).Render(cards[m.card])
		}
	case lesson.PhaseExercises:
		body = m.renderExercise()
	default:
		body = m.renderSummary()
	}
	return header + "\n\n" + body
}

func (m *LessonModel) renderExercise() string {
	ex, ok := m.run.Current()
	if !ok {
		return ""
	}
	width := contentWidth(m.width)
	lines := []string{wrapText(ex.Prompt().Question, width, textStyle), ""}
	switch e := ex.(type) {
	case content.FillBlank:
		if m.result == nil {
			lines = append(lines, m.input.View())
		} else {
			lines = append(lines, "> "+textStyle.Render(m.typed))
		}
	case content.Matching:
		for i, left := range e.Lefts() {
			right := pendingStyle.Render("?")
			if i < len(m.matches) {
				right = textStyle.Render(m.matches[i])
			}
			lines = append(lines, fmt.Sprintf("%s = %s", accentStyle.Render(left), right))
		}
		lines = append(lines, "")
		if m.result == nil {
			lines = append(lines, optionList(m.options, m.cursor))
		}
	default:
		lines = append(lines, optionList(m.options, m.cursor))
	}
	if m.result != nil {
		lines = append(lines, "", m.renderResult(ex))
	}
	return strings.Join(lines, "\n")
}

func (m *LessonModel) renderResult(ex content.Exercise) string {
	if m.result.Correct {
		return correctStyle.Render(fmt.Sprintf("Correct! +%d XP", m.result.XP))
	}
	lines := []string{incorrectStyle.Render("Not quite.")}
	if _, ok := ex.(content.FillBlank); ok {
		lines = append(lines, "Answer: "+renderStyledRunes(buildAnswerRunes([]rune(m.result.Expected), []rune(m.typed))))
	} else {
		lines = append(lines, "Answer: "+textStyle.Render(m.result.Expected))
	}
	if exp := ex.Prompt().Explanation; exp != "" {
		lines = append(lines, pendingStyle.Render(exp))
	}
	return strings.Join(lines, "\n")
}

func (m *LessonModel) renderSummary() string {
	l := m.run.Lesson()
	p := m.run.Progress()
	stat := p.Languages[l.Lang]
	lines := []string{
		correctStyle.Render("Lesson complete!"),
		"",
		fmt.Sprintf("Correct answers: %d/%d", m.run.Correct(), m.run.Total()),
		accentStyle.Render(fmt.Sprintf("+%d XP", m.run.TotalXP())),
		"",
		fmt.Sprintf("Total XP: %d", p.XP),
		fmt.Sprintf("Streak: %d day(s)", p.Streak),
		fmt.Sprintf("%s level: %d", strings.ToUpper(l.Lang), stat.Level),
	}
	return strings.Join(lines, "\n")
}

func (m *LessonModel) renderFooter() string {
	var segments []string
	switch m.run.Phase() {
	case lesson.PhaseVocabulary:
		segments = append(segments,
			fmt.Sprintf("Card %d/%d", m.card+1, len(m.cards())),
			"←/→ browse  enter next  s skip")
	case lesson.PhaseExercises:
		segments = append(segments,
			fmt.Sprintf("Exercise %d/%d", m.run.Index()+1, m.run.Total()),
			fmt.Sprintf("%d XP earned", m.run.Earned()))
		if m.result != nil {
			segments = append(segments, "enter continue")
		}
	default:
		segments = append(segments, "enter quit")
	}
	segments = append(segments, "esc exit")
	return footerStyle.Render(strings.Join(segments, "  "))
}
