package games

import (
	"time"

	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/generator"
)

const (
	// SpeedQuizLimit is the time allowed for the whole quiz.
	SpeedQuizLimit = 30 * time.Second
	// SpeedQuizOptions is the number of choices per question.
	SpeedQuizOptions = 4
	// MissFactor is the extra draw weight each recorded miss gives a word.
	MissFactor = 2.0
)

// Question asks for the translation of Word.
type Question struct {
	Word    string
	Answer  string
	Options []string
}

// SpeedQuiz is a timed multiple-choice round.
type SpeedQuiz struct {
	questions []Question
	current   int
	score     int
	missed    []string
	deadline  time.Time
	timedOut  bool
}

// NewSpeedQuiz builds as many questions as there are pairs. Words are drawn
// with replacement, and words in misses come up more often. The clock
// starts at start.
func NewSpeedQuiz(gen *generator.Generator, pairs []content.Pair, misses map[string]int, start time.Time) (*SpeedQuiz, error) {
	if len(pairs) < 2 {
		return nil, ErrNotEnoughPairs
	}
	pool := make([]string, len(pairs))
	for i, p := range pairs {
		pool[i] = p.Right
	}
	order := gen.Weighted(pairs, len(pairs), misses, MissFactor)
	questions := make([]Question, len(order))
	for i, p := range order {
		questions[i] = Question{
			Word:    p.Left,
			Answer:  p.Right,
			Options: gen.Options(p.Right, pool, SpeedQuizOptions),
		}
	}
	return &SpeedQuiz{
		questions: questions,
		deadline:  start.Add(SpeedQuizLimit),
	}, nil
}

// Current returns the question being asked.
func (q *SpeedQuiz) Current() (Question, bool) {
	if q.current >= len(q.questions) || q.timedOut {
		return Question{}, false
	}
	return q.questions[q.current], true
}

// Answer grades choice against the current question at time now. Answers
// after the deadline end the quiz without scoring.
func (q *SpeedQuiz) Answer(choice string, now time.Time) (bool, error) {
	if q.Done() {
		return false, ErrGameOver
	}
	if q.Expired(now) {
		q.timedOut = true
		return false, ErrGameOver
	}
	cur := q.questions[q.current]
	ok := choice == cur.Answer
	if ok {
		q.score++
	} else {
		q.missed = append(q.missed, cur.Word)
	}
	q.current++
	return ok, nil
}

// Remaining returns the time left at now.
func (q *SpeedQuiz) Remaining(now time.Time) time.Duration {
	left := q.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the deadline has passed at now and marks the
// quiz as timed out.
func (q *SpeedQuiz) Expired(now time.Time) bool {
	if !now.Before(q.deadline) {
		q.timedOut = true
	}
	return q.timedOut
}

// Missed returns the words answered wrongly, in order.
func (q *SpeedQuiz) Missed() []string {
	return append([]string(nil), q.missed...)
}

// Score returns the number of correct answers.
func (q *SpeedQuiz) Score() int { return q.score }

// Total returns the number of questions.
func (q *SpeedQuiz) Total() int { return len(q.questions) }

// Index returns the zero-based index of the current question.
func (q *SpeedQuiz) Index() int { return q.current }

// Done reports whether the quiz has ended, by finishing or by timeout.
func (q *SpeedQuiz) Done() bool {
	return q.timedOut || q.current >= len(q.questions)
}

// Won reports whether every question was answered in time. Only won
// quizzes are rewarded.
func (q *SpeedQuiz) Won() bool {
	return !q.timedOut && q.current >= len(q.questions)
}
