// Package model defines shared data structures.
package model

import (
	"sort"
	"time"
)

// Config defines learning settings resolved from flags and the config file.
type Config struct {
	Lang     string
	Catalog  string
	Timezone string
	LogLevel string
	LogFile  string
}

// Account is a locally registered learner.
type Account struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
}

// LanguageStat tracks progress in a single language.
type LanguageStat struct {
	Level            int
	LessonsCompleted int
	XPEarned         int
}

// NewLanguageStat returns the starting stat for a freshly tracked language.
func NewLanguageStat() LanguageStat {
	return LanguageStat{Level: 1}
}

// LessonSet is a set of completed lesson ids.
type LessonSet map[string]struct{}

// Has reports whether id is in the set.
func (s LessonSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in lexical order.
func (s LessonSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Progress is the per-account learning record.
// A zero LastActivity means no XP has been awarded yet.
type Progress struct {
	XP               int
	Streak           int
	LastActivity     time.Time
	CompletedLessons LessonSet
	Languages        map[string]LanguageStat
}

// NewProgress returns an empty record with initialized collections.
func NewProgress() Progress {
	return Progress{
		CompletedLessons: LessonSet{},
		Languages:        map[string]LanguageStat{},
	}
}

// Clone returns a deep copy so callers cannot alias stored state.
func (p Progress) Clone() Progress {
	out := p
	out.CompletedLessons = make(LessonSet, len(p.CompletedLessons))
	for id := range p.CompletedLessons {
		out.CompletedLessons[id] = struct{}{}
	}
	out.Languages = make(map[string]LanguageStat, len(p.Languages))
	for code, stat := range p.Languages {
		out.Languages[code] = stat
	}
	return out
}

// LanguageCodes returns tracked language codes in lexical order.
func (p Progress) LanguageCodes() []string {
	codes := make([]string, 0, len(p.Languages))
	for code := range p.Languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ActivityKind labels a journal entry.
type ActivityKind string

// Journal entry kinds.
const (
	ActivityLesson ActivityKind = "lesson"
	ActivityAward  ActivityKind = "award"
)

// Activity is one XP-bearing event in an account's history.
type Activity struct {
	AccountID string
	Kind      ActivityKind
	Ref       string
	Lang      string
	XP        int
	At        time.Time
}

// DailyXP is the XP total for one calendar day.
type DailyXP struct {
	Day time.Time
	XP  int
}
