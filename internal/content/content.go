// Package content holds languages, lessons, exercises and game word pairs.
package content

import (
	"fmt"
	"strconv"
	"strings"
)

// Language is a learnable language.
type Language struct {
	Code        string
	Name        string
	NativeName  string
	Flag        string
	Description string
}

// LessonType groups lessons by what they teach.
type LessonType string

// Lesson types.
const (
	LessonVocabulary   LessonType = "vocabulary"
	LessonGrammar      LessonType = "grammar"
	LessonConversation LessonType = "conversation"
)

// Difficulty is a lesson difficulty band.
type Difficulty string

// Difficulties.
const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// VocabularyItem is a word introduced by a lesson.
type VocabularyItem struct {
	Word          string
	Translation   string
	Pronunciation string
	Example       string
}

// GrammarRule is an explained rule with examples.
type GrammarRule struct {
	Title       string
	Explanation string
	Examples    []string
}

// Lesson is a unit of content with exercises and an XP reward.
type Lesson struct {
	ID          string
	Lang        string
	Title       string
	Description string
	Type        LessonType
	Difficulty  Difficulty
	XPReward    int
	Vocabulary  []VocabularyItem
	Grammar     []GrammarRule
	Exercises   []Exercise
}

// Kind names an exercise variant.
type Kind string

// Exercise kinds.
const (
	KindMultipleChoice Kind = "multiple-choice"
	KindFillBlank      Kind = "fill-blank"
	KindTrueFalse      Kind = "true-false"
	KindMatching       Kind = "matching"
)

// Prompt carries the fields every exercise shares.
type Prompt struct {
	ID          string
	Question    string
	Explanation string
	XPReward    int
}

// Exercise is one of MultipleChoice, FillBlank, TrueFalse or Matching.
type Exercise interface {
	Prompt() Prompt
	Kind() Kind
	sealed()
}

// MultipleChoice asks to pick one option.
type MultipleChoice struct {
	Base    Prompt
	Options []string
	Answer  string
}

// FillBlank asks to type the missing word.
type FillBlank struct {
	Base   Prompt
	Answer string
}

// TrueFalse asks whether a statement holds.
type TrueFalse struct {
	Base   Prompt
	Answer bool
}

// Pair links a left item with its right counterpart.
type Pair struct {
	Left  string
	Right string
}

// Matching asks to pair every left item with a right item.
type Matching struct {
	Base  Prompt
	Pairs []Pair
}

func (e MultipleChoice) Prompt() Prompt { return e.Base }
func (e FillBlank) Prompt() Prompt      { return e.Base }
func (e TrueFalse) Prompt() Prompt      { return e.Base }
func (e Matching) Prompt() Prompt       { return e.Base }

func (MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (FillBlank) Kind() Kind      { return KindFillBlank }
func (TrueFalse) Kind() Kind      { return KindTrueFalse }
func (Matching) Kind() Kind       { return KindMatching }

func (MultipleChoice) sealed() {}
func (FillBlank) sealed()      {}
func (TrueFalse) sealed()      {}
func (Matching) sealed()       {}

// Lefts returns the left column in order.
func (e Matching) Lefts() []string {
	out := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		out[i] = p.Left
	}
	return out
}

// Rights returns the right column in order.
func (e Matching) Rights() []string {
	out := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		out[i] = p.Right
	}
	return out
}

// Response is a learner's answer. Matching exercises read Matches, one
// right-hand value per left item; every other kind reads Text.
type Response struct {
	Text    string
	Matches []string
}

// Grade reports whether resp answers ex correctly.
func Grade(ex Exercise, resp Response) bool {
	switch e := ex.(type) {
	case MultipleChoice:
		return strings.EqualFold(strings.TrimSpace(resp.Text), e.Answer)
	case FillBlank:
		return strings.EqualFold(strings.TrimSpace(resp.Text), strings.TrimSpace(e.Answer))
	case TrueFalse:
		v, ok := ParseTruth(resp.Text)
		return ok && v == e.Answer
	case Matching:
		if len(resp.Matches) != len(e.Pairs) {
			return false
		}
		for i, p := range e.Pairs {
			if !strings.EqualFold(strings.TrimSpace(resp.Matches[i]), p.Right) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("content: unhandled exercise %T", ex))
	}
}

// CorrectAnswer renders the expected answer for feedback.
func CorrectAnswer(ex Exercise) string {
	switch e := ex.(type) {
	case MultipleChoice:
		return e.Answer
	case FillBlank:
		return e.Answer
	case TrueFalse:
		return strconv.FormatBool(e.Answer)
	case Matching:
		parts := make([]string, len(e.Pairs))
		for i, p := range e.Pairs {
			parts[i] = p.Left + " = " + p.Right
		}
		return strings.Join(parts, ", ")
	default:
		panic(fmt.Sprintf("content: unhandled exercise %T", ex))
	}
}

// ParseTruth reads a true/false answer.
func ParseTruth(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y":
		return true, true
	case "false", "f", "no", "n":
		return false, true
	}
	return false, false
}
