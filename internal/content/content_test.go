package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogParses(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	require.Len(t, c.Languages(), 8)

	fr, ok := c.Language("FR")
	require.True(t, ok)
	require.Equal(t, "French", fr.Name)

	lessons := c.LessonsFor("en")
	require.Len(t, lessons, 3)
	require.Equal(t, "en-basics-1", lessons[0].ID)

	lesson, err := c.Lesson("en-basics-2")
	require.NoError(t, err)
	require.Equal(t, 10, lesson.XPReward)
	require.Len(t, lesson.Exercises, 2)
	m, ok := lesson.Exercises[1].(Matching)
	require.True(t, ok)
	require.Equal(t, []string{"One", "Two", "Three"}, m.Lefts())
	require.Equal(t, []string{"1", "2", "3"}, m.Rights())

	require.Len(t, c.Pairs(), 6)
}

func TestEveryLanguageHasLessons(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	for _, lang := range c.Languages() {
		require.NotEmpty(t, c.LessonsFor(lang.Code), lang.Code)
	}
}

func TestUnknownLesson(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	_, err = c.Lesson("xx-nothing")
	require.ErrorIs(t, err, ErrUnknownLesson)
}

func TestGrade(t *testing.T) {
	base := Prompt{ID: "q"}
	cases := []struct {
		name string
		ex   Exercise
		resp Response
		want bool
	}{
		{"choice exact", MultipleChoice{Base: base, Options: []string{"a", "Hello"}, Answer: "Hello"}, Response{Text: "Hello"}, true},
		{"choice case", MultipleChoice{Base: base, Options: []string{"a", "Hello"}, Answer: "Hello"}, Response{Text: " hello "}, true},
		{"choice wrong", MultipleChoice{Base: base, Options: []string{"a", "Hello"}, Answer: "Hello"}, Response{Text: "a"}, false},
		{"blank", FillBlank{Base: base, Answer: "goes"}, Response{Text: "Goes"}, true},
		{"blank wrong", FillBlank{Base: base, Answer: "goes"}, Response{Text: "go"}, false},
		{"truth no", TrueFalse{Base: base, Answer: false}, Response{Text: "no"}, true},
		{"truth yes", TrueFalse{Base: base, Answer: false}, Response{Text: "true"}, false},
		{"truth garbage", TrueFalse{Base: base, Answer: false}, Response{Text: "maybe"}, false},
		{"matching", Matching{Base: base, Pairs: []Pair{{"One", "1"}, {"Two", "2"}}}, Response{Matches: []string{"1", "2"}}, true},
		{"matching swapped", Matching{Base: base, Pairs: []Pair{{"One", "1"}, {"Two", "2"}}}, Response{Matches: []string{"2", "1"}}, false},
		{"matching short", Matching{Base: base, Pairs: []Pair{{"One", "1"}, {"Two", "2"}}}, Response{Matches: []string{"1"}}, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Grade(tc.ex, tc.resp), tc.name)
	}
}

func TestCorrectAnswer(t *testing.T) {
	require.Equal(t, "false", CorrectAnswer(TrueFalse{Answer: false}))
	require.Equal(t, "One = 1, Two = 2", CorrectAnswer(Matching{Pairs: []Pair{{"One", "1"}, {"Two", "2"}}}))
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	header := "[[languages]]\ncode = \"en\"\nname = \"English\"\n"
	cases := map[string]string{
		"unknown kind": header + `
[[lessons]]
id = "l1"
lang = "en"
type = "vocabulary"
difficulty = "beginner"
[[lessons.exercises]]
id = "e1"
kind = "essay"
`,
		"answer not an option": header + `
[[lessons]]
id = "l1"
lang = "en"
type = "vocabulary"
difficulty = "beginner"
[[lessons.exercises]]
id = "e1"
kind = "multiple-choice"
options = ["a", "b"]
answer = "c"
`,
		"missing truth": header + `
[[lessons]]
id = "l1"
lang = "en"
type = "vocabulary"
difficulty = "beginner"
[[lessons.exercises]]
id = "e1"
kind = "true-false"
`,
		"unknown language": header + `
[[lessons]]
id = "l1"
lang = "xx"
type = "vocabulary"
difficulty = "beginner"
`,
		"duplicate lesson": header + `
[[lessons]]
id = "l1"
lang = "en"
type = "vocabulary"
difficulty = "beginner"
[[lessons]]
id = "l1"
lang = "en"
type = "grammar"
difficulty = "beginner"
`,
		"bad difficulty": header + `
[[lessons]]
id = "l1"
lang = "en"
type = "vocabulary"
difficulty = "expert"
`,
	}
	for name, data := range cases {
		_, err := Parse([]byte(data))
		require.Error(t, err, name)
	}
}

func TestGradePanicsOnForeignExercise(t *testing.T) {
	require.Panics(t, func() {
		Grade(nil, Response{})
	})
}
