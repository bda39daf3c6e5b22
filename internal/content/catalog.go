package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var builtinCatalog []byte

// ErrUnknownLesson is returned for lesson ids missing from the catalog.
var ErrUnknownLesson = errors.New("unknown lesson")

// ErrUnknownLanguage is returned for language codes missing from the catalog.
var ErrUnknownLanguage = errors.New("unknown language")

type catalogFile struct {
	Languages []languageRecord `toml:"languages"`
	Lessons   []lessonRecord   `toml:"lessons"`
	Pairs     []pairRecord     `toml:"pairs"`
}

type languageRecord struct {
	Code        string `toml:"code"`
	Name        string `toml:"name"`
	NativeName  string `toml:"native"`
	Flag        string `toml:"flag"`
	Description string `toml:"description"`
}

type lessonRecord struct {
	ID          string             `toml:"id"`
	Lang        string             `toml:"lang"`
	Title       string             `toml:"title"`
	Description string             `toml:"description"`
	Type        string             `toml:"type"`
	Difficulty  string             `toml:"difficulty"`
	XP          int                `toml:"xp"`
	Vocabulary  []vocabularyRecord `toml:"vocabulary"`
	Grammar     []grammarRecord    `toml:"grammar"`
	Exercises   []exerciseRecord   `toml:"exercises"`
}

type vocabularyRecord struct {
	Word          string `toml:"word"`
	Translation   string `toml:"translation"`
	Pronunciation string `toml:"pronunciation"`
	Example       string `toml:"example"`
}

type grammarRecord struct {
	Title       string   `toml:"title"`
	Explanation string   `toml:"explanation"`
	Examples    []string `toml:"examples"`
}

type exerciseRecord struct {
	ID          string       `toml:"id"`
	Kind        string       `toml:"kind"`
	Question    string       `toml:"question"`
	Explanation string       `toml:"explanation"`
	XP          int          `toml:"xp"`
	Options     []string     `toml:"options"`
	Answer      string       `toml:"answer"`
	Truth       *bool        `toml:"truth"`
	Pairs       []pairRecord `toml:"pairs"`
}

type pairRecord struct {
	Left  string `toml:"left"`
	Right string `toml:"right"`
}

// Catalog is an indexed, read-only set of languages and lessons.
type Catalog struct {
	languages []Language
	langIndex map[string]int
	lessons   map[string][]Lesson
	lessonIDs map[string]Lesson
	pairs     []Pair
}

// Builtin parses the catalog shipped with the binary.
func Builtin() (*Catalog, error) {
	return Parse(builtinCatalog)
}

// LoadFile parses a catalog from a TOML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML catalog.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	c := &Catalog{
		langIndex: map[string]int{},
		lessons:   map[string][]Lesson{},
		lessonIDs: map[string]Lesson{},
	}
	for _, rec := range file.Languages {
		code := strings.ToLower(strings.TrimSpace(rec.Code))
		if code == "" {
			return nil, fmt.Errorf("language %q has no code", rec.Name)
		}
		if _, dup := c.langIndex[code]; dup {
			return nil, fmt.Errorf("duplicate language %q", code)
		}
		c.langIndex[code] = len(c.languages)
		c.languages = append(c.languages, Language{
			Code:        code,
			Name:        rec.Name,
			NativeName:  rec.NativeName,
			Flag:        rec.Flag,
			Description: rec.Description,
		})
	}
	for _, rec := range file.Lessons {
		lesson, err := rec.toLesson()
		if err != nil {
			return nil, err
		}
		if _, ok := c.langIndex[lesson.Lang]; !ok {
			return nil, fmt.Errorf("lesson %s: %w %q", lesson.ID, ErrUnknownLanguage, lesson.Lang)
		}
		if _, dup := c.lessonIDs[lesson.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson %q", lesson.ID)
		}
		c.lessonIDs[lesson.ID] = lesson
		c.lessons[lesson.Lang] = append(c.lessons[lesson.Lang], lesson)
	}
	for _, p := range file.Pairs {
		c.pairs = append(c.pairs, Pair{Left: p.Left, Right: p.Right})
	}
	return c, nil
}

func (r lessonRecord) toLesson() (Lesson, error) {
	lesson := Lesson{
		ID:          strings.TrimSpace(r.ID),
		Lang:        strings.ToLower(strings.TrimSpace(r.Lang)),
		Title:       r.Title,
		Description: r.Description,
		Type:        LessonType(r.Type),
		Difficulty:  Difficulty(r.Difficulty),
		XPReward:    r.XP,
	}
	if lesson.ID == "" {
		return Lesson{}, fmt.Errorf("lesson %q has no id", r.Title)
	}
	switch lesson.Type {
	case LessonVocabulary, LessonGrammar, LessonConversation:
	default:
		return Lesson{}, fmt.Errorf("lesson %s: unknown type %q", lesson.ID, r.Type)
	}
	switch lesson.Difficulty {
	case Beginner, Intermediate, Advanced:
	default:
		return Lesson{}, fmt.Errorf("lesson %s: unknown difficulty %q", lesson.ID, r.Difficulty)
	}
	if lesson.XPReward < 0 {
		return Lesson{}, fmt.Errorf("lesson %s: negative xp", lesson.ID)
	}
	for _, v := range r.Vocabulary {
		lesson.Vocabulary = append(lesson.Vocabulary, VocabularyItem(v))
	}
	for _, g := range r.Grammar {
		lesson.Grammar = append(lesson.Grammar, GrammarRule(g))
	}
	for _, e := range r.Exercises {
		ex, err := e.toExercise()
		if err != nil {
			return Lesson{}, fmt.Errorf("lesson %s: %w", lesson.ID, err)
		}
		lesson.Exercises = append(lesson.Exercises, ex)
	}
	return lesson, nil
}

func (r exerciseRecord) toExercise() (Exercise, error) {
	base := Prompt{
		ID:          r.ID,
		Question:    r.Question,
		Explanation: r.Explanation,
		XPReward:    r.XP,
	}
	if base.XPReward < 0 {
		return nil, fmt.Errorf("exercise %s: negative xp", r.ID)
	}
	switch Kind(r.Kind) {
	case KindMultipleChoice:
		if len(r.Options) < 2 {
			return nil, fmt.Errorf("exercise %s: needs at least two options", r.ID)
		}
		if !containsFold(r.Options, r.Answer) {
			return nil, fmt.Errorf("exercise %s: answer %q is not an option", r.ID, r.Answer)
		}
		return MultipleChoice{Base: base, Options: r.Options, Answer: r.Answer}, nil
	case KindFillBlank:
		if strings.TrimSpace(r.Answer) == "" {
			return nil, fmt.Errorf("exercise %s: empty answer", r.ID)
		}
		return FillBlank{Base: base, Answer: r.Answer}, nil
	case KindTrueFalse:
		if r.Truth == nil {
			return nil, fmt.Errorf("exercise %s: missing truth value", r.ID)
		}
		return TrueFalse{Base: base, Answer: *r.Truth}, nil
	case KindMatching:
		if len(r.Pairs) < 2 {
			return nil, fmt.Errorf("exercise %s: needs at least two pairs", r.ID)
		}
		pairs := make([]Pair, len(r.Pairs))
		for i, p := range r.Pairs {
			pairs[i] = Pair{Left: p.Left, Right: p.Right}
		}
		return Matching{Base: base, Pairs: pairs}, nil
	default:
		return nil, fmt.Errorf("exercise %s: unknown kind %q", r.ID, r.Kind)
	}
}

// Languages returns all languages in catalog order.
func (c *Catalog) Languages() []Language {
	return append([]Language(nil), c.languages...)
}

// Language returns the language with code.
func (c *Catalog) Language(code string) (Language, bool) {
	idx, ok := c.langIndex[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Language{}, false
	}
	return c.languages[idx], true
}

// LessonsFor returns the lessons for a language in catalog order.
func (c *Catalog) LessonsFor(code string) []Lesson {
	return append([]Lesson(nil), c.lessons[strings.ToLower(strings.TrimSpace(code))]...)
}

// Lesson returns the lesson with id.
func (c *Catalog) Lesson(id string) (Lesson, error) {
	lesson, ok := c.lessonIDs[strings.TrimSpace(id)]
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %s", ErrUnknownLesson, id)
	}
	return lesson, nil
}

// Pairs returns the word pairs used by mini-games.
func (c *Catalog) Pairs() []Pair {
	return append([]Pair(nil), c.pairs...)
}

func containsFold(options []string, want string) bool {
	for _, o := range options {
		if strings.EqualFold(o, want) {
			return true
		}
	}
	return false
}
