// Package lesson drives a single lesson from vocabulary through exercises
// to completion.
package lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/model"
)

// Phase is the stage a run is in.
type Phase int

// Phases in order.
const (
	PhaseVocabulary Phase = iota
	PhaseExercises
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseVocabulary:
		return "vocabulary"
	case PhaseExercises:
		return "exercises"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrWrongPhase is returned when an action does not fit the current phase.
	ErrWrongPhase = errors.New("action not available in this phase")
	// ErrAlreadyAnswered is returned for a second answer to the same exercise.
	ErrAlreadyAnswered = errors.New("exercise already answered")
	// ErrNotAnswered is returned when advancing past an unanswered exercise.
	ErrNotAnswered = errors.New("exercise not answered")
)

// Completer records a finished lesson.
type Completer interface {
	CompleteLesson(ctx context.Context, accountID, lessonID, lang string, xp int) (model.Progress, error)
}

// Result is the outcome of one answered exercise.
type Result struct {
	Correct  bool
	Expected string
	XP       int
}

// Run is a lesson in progress. It is not safe for concurrent use.
type Run struct {
	lesson    content.Lesson
	completer Completer
	accountID string

	phase    Phase
	index    int
	answered bool
	correct  int
	earned   int
	progress model.Progress
}

// NewRun starts lesson for accountID. Lessons without vocabulary start
// at the exercises; lessons without exercises go straight to completion
// on the first Next.
func NewRun(l content.Lesson, completer Completer, accountID string) *Run {
	r := &Run{lesson: l, completer: completer, accountID: accountID}
	if len(l.Vocabulary) == 0 && len(l.Grammar) == 0 {
		r.phase = PhaseExercises
	}
	return r
}

// Lesson returns the lesson being run.
func (r *Run) Lesson() content.Lesson { return r.lesson }

// Phase returns the current phase.
func (r *Run) Phase() Phase { return r.phase }

// Index returns the zero-based index of the current exercise.
func (r *Run) Index() int { return r.index }

// Total returns the number of exercises.
func (r *Run) Total() int { return len(r.lesson.Exercises) }

// Correct returns the number of correctly answered exercises.
func (r *Run) Correct() int { return r.correct }

// Earned returns XP earned from exercises so far.
func (r *Run) Earned() int { return r.earned }

// Answered reports whether the current exercise has been answered.
func (r *Run) Answered() bool { return r.answered }

// Progress returns the ledger record after completion.
func (r *Run) Progress() model.Progress { return r.progress }

// TotalXP is the XP credited on completion.
func (r *Run) TotalXP() int { return r.earned + r.lesson.XPReward }

// Current returns the current exercise.
func (r *Run) Current() (content.Exercise, bool) {
	if r.phase != PhaseExercises || r.index >= len(r.lesson.Exercises) {
		return nil, false
	}
	return r.lesson.Exercises[r.index], true
}

// StartExercises leaves the vocabulary phase.
func (r *Run) StartExercises(ctx context.Context) error {
	if r.phase != PhaseVocabulary {
		return ErrWrongPhase
	}
	r.phase = PhaseExercises
	if len(r.lesson.Exercises) == 0 {
		return r.finish(ctx)
	}
	return nil
}

// Submit grades resp against the current exercise.
func (r *Run) Submit(resp content.Response) (Result, error) {
	ex, ok := r.Current()
	if !ok {
		return Result{}, ErrWrongPhase
	}
	if r.answered {
		return Result{}, ErrAlreadyAnswered
	}
	r.answered = true
	res := Result{Expected: content.CorrectAnswer(ex)}
	if content.Grade(ex, resp) {
		res.Correct = true
		res.XP = ex.Prompt().XPReward
		r.correct++
		r.earned += res.XP
	}
	return res, nil
}

// Next moves past the answered exercise. After the last one the lesson
// is recorded through the Completer and the run enters PhaseComplete.
func (r *Run) Next(ctx context.Context) error {
	if r.phase != PhaseExercises {
		return ErrWrongPhase
	}
	if len(r.lesson.Exercises) > 0 && !r.answered {
		return ErrNotAnswered
	}
	r.answered = false
	r.index++
	if r.index < len(r.lesson.Exercises) {
		return nil
	}
	return r.finish(ctx)
}

func (r *Run) finish(ctx context.Context) error {
	p, err := r.completer.CompleteLesson(ctx, r.accountID, r.lesson.ID, r.lesson.Lang, r.TotalXP())
	if err != nil {
		return fmt.Errorf("complete lesson %s: %w", r.lesson.ID, err)
	}
	r.progress = p
	r.phase = PhaseComplete
	return nil
}
