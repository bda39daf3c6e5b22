package lesson_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/ledger"
	"github.com/verte-zerg/lingua/internal/lesson"
	"github.com/verte-zerg/lingua/internal/model"
	"github.com/verte-zerg/lingua/internal/store"
)

func newLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	st := store.NewMemory()
	err := st.CreateAccount(context.Background(), model.Account{ID: "acct-1", Username: "ann", Email: "ann@x.com"})
	require.NoError(t, err)
	fixed := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	return ledger.New(st, ledger.WithClock(func() time.Time { return fixed }), ledger.WithLocation(time.UTC))
}

func builtinLesson(t *testing.T, id string) content.Lesson {
	t.Helper()
	c, err := content.Builtin()
	require.NoError(t, err)
	l, err := c.Lesson(id)
	require.NoError(t, err)
	return l
}

func TestRunCompletesLesson(t *testing.T) {
	ctx := context.Background()
	led := newLedger(t)
	run := lesson.NewRun(builtinLesson(t, "en-basics-1"), led, "acct-1")
	require.Equal(t, lesson.PhaseVocabulary, run.Phase())

	_, err := run.Submit(content.Response{Text: "Hello"})
	require.ErrorIs(t, err, lesson.ErrWrongPhase)

	require.NoError(t, run.StartExercises(ctx))
	require.Equal(t, lesson.PhaseExercises, run.Phase())

	res, err := run.Submit(content.Response{Text: "hello"})
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.Equal(t, 2, res.XP)
	_, err = run.Submit(content.Response{Text: "hello"})
	require.ErrorIs(t, err, lesson.ErrAlreadyAnswered)
	require.NoError(t, run.Next(ctx))

	require.ErrorIs(t, run.Next(ctx), lesson.ErrNotAnswered)
	res, err = run.Submit(content.Response{Text: "Thanks"})
	require.NoError(t, err)
	require.False(t, res.Correct)
	require.Equal(t, "Thank", res.Expected)
	require.NoError(t, run.Next(ctx))

	res, err = run.Submit(content.Response{Text: "false"})
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.NoError(t, run.Next(ctx))

	require.Equal(t, lesson.PhaseComplete, run.Phase())
	require.Equal(t, 2, run.Correct())
	require.Equal(t, 4, run.Earned())
	require.Equal(t, 14, run.TotalXP())

	p := run.Progress()
	require.Equal(t, 14, p.XP)
	require.Equal(t, 1, p.Streak)
	require.True(t, p.CompletedLessons.Has("en-basics-1"))
	require.Equal(t, 1, p.Languages["en"].LessonsCompleted)
	require.Equal(t, 14, p.Languages["en"].XPEarned)
}

func TestRunGrammarLessonWithMatching(t *testing.T) {
	ctx := context.Background()
	led := newLedger(t)
	run := lesson.NewRun(builtinLesson(t, "en-basics-2"), led, "acct-1")
	require.NoError(t, run.StartExercises(ctx))

	_, err := run.Submit(content.Response{Text: "Three"})
	require.NoError(t, err)
	require.NoError(t, run.Next(ctx))

	ex, ok := run.Current()
	require.True(t, ok)
	m, ok := ex.(content.Matching)
	require.True(t, ok)
	res, err := run.Submit(content.Response{Matches: m.Rights()})
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.NoError(t, run.Next(ctx))

	require.Equal(t, lesson.PhaseComplete, run.Phase())
	require.Equal(t, 2+3+10, run.Progress().XP)
}

func TestRunWithoutVocabularyStartsAtExercises(t *testing.T) {
	l := content.Lesson{
		ID:       "x-1",
		Lang:     "en",
		XPReward: 5,
		Exercises: []content.Exercise{
			content.FillBlank{Base: content.Prompt{ID: "e1", XPReward: 1}, Answer: "a"},
		},
	}
	run := lesson.NewRun(l, newLedger(t), "acct-1")
	require.Equal(t, lesson.PhaseExercises, run.Phase())
	require.ErrorIs(t, run.StartExercises(context.Background()), lesson.ErrWrongPhase)
}

func TestRunWithoutSessionFailsOnCompletion(t *testing.T) {
	ctx := context.Background()
	l := content.Lesson{ID: "x-1", Lang: "en", XPReward: 5, Vocabulary: []content.VocabularyItem{{Word: "a"}}}
	run := lesson.NewRun(l, newLedger(t), "")
	err := run.StartExercises(ctx)
	require.ErrorIs(t, err, ledger.ErrNotLoggedIn)
	require.Equal(t, lesson.PhaseExercises, run.Phase())
}
