// Package ledger maintains per-account XP, streak and lesson progress.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/lingua/internal/model"
)

// LessonsPerLevel is the number of completed lessons that raises a language level.
const LessonsPerLevel = 5

// Store persists progress records keyed by account id.
type Store interface {
	GetProgress(ctx context.Context, accountID string) (model.Progress, bool, error)
	PutProgress(ctx context.Context, accountID string, p model.Progress) error
	AccountExists(ctx context.Context, accountID string) (bool, error)
}

// Journal receives an entry for every applied XP change.
type Journal interface {
	AppendActivity(ctx context.Context, a model.Activity) error
}

// Ledger applies progress updates on top of a Store.
type Ledger struct {
	store   Store
	journal Journal
	now     func() time.Time
	loc     *time.Location
	log     *zap.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the location used to decide calendar days.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithJournal records every applied change in j.
func WithJournal(j Journal) Option {
	return func(l *Ledger) { l.journal = j }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// New returns a Ledger backed by store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		loc:   time.Local,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Location returns the location used for calendar days.
func (l *Ledger) Location() *time.Location {
	return l.loc
}

// GetProgress returns the stored record or a transient zero record.
func (l *Ledger) GetProgress(ctx context.Context, accountID string) (model.Progress, error) {
	p, ok, err := l.store.GetProgress(ctx, accountID)
	if err != nil {
		return model.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	if !ok {
		return model.NewProgress(), nil
	}
	return p, nil
}

// AwardXP adds amount to the account's XP and, when lang is tracked, to
// that language's earned XP.
func (l *Ledger) AwardXP(ctx context.Context, accountID string, amount int, lang string) (model.Progress, error) {
	if err := l.requireAccount(ctx, accountID); err != nil {
		return model.Progress{}, err
	}
	if amount < 0 {
		return model.Progress{}, ErrNegativeAmount
	}
	p, err := l.load(ctx, accountID)
	if err != nil {
		return model.Progress{}, err
	}
	lang = normalizeLang(lang)

	now := l.now()
	p.XP += amount
	if stat, ok := p.Languages[lang]; ok && lang != "" {
		stat.XPEarned += amount
		p.Languages[lang] = stat
	}
	l.touch(&p, now)

	if err := l.store.PutProgress(ctx, accountID, p); err != nil {
		return model.Progress{}, fmt.Errorf("save progress: %w", err)
	}
	l.record(ctx, model.Activity{
		AccountID: accountID,
		Kind:      model.ActivityAward,
		Lang:      lang,
		XP:        amount,
		At:        now,
	})
	l.log.Debug("xp awarded",
		zap.String("account", accountID),
		zap.Int("amount", amount),
		zap.Int("xp", p.XP),
		zap.Int("streak", p.Streak))
	return p.Clone(), nil
}

// CompleteLesson records a finished lesson and its XP reward.
// Repeating a lesson does not duplicate its id but still counts toward
// the language's lesson tally and XP.
func (l *Ledger) CompleteLesson(ctx context.Context, accountID, lessonID, lang string, xp int) (model.Progress, error) {
	if err := l.requireAccount(ctx, accountID); err != nil {
		return model.Progress{}, err
	}
	lessonID = strings.TrimSpace(lessonID)
	lang = normalizeLang(lang)
	switch {
	case xp < 0:
		return model.Progress{}, ErrNegativeAmount
	case lessonID == "":
		return model.Progress{}, ErrEmptyLesson
	case lang == "":
		return model.Progress{}, ErrEmptyLanguage
	}
	p, err := l.load(ctx, accountID)
	if err != nil {
		return model.Progress{}, err
	}

	now := l.now()
	replay := p.CompletedLessons.Has(lessonID)
	p.CompletedLessons[lessonID] = struct{}{}

	stat, ok := p.Languages[lang]
	if !ok {
		stat = model.NewLanguageStat()
	}
	prevLevel := stat.Level
	stat.LessonsCompleted++
	stat.XPEarned += xp
	stat.Level = LevelFor(stat.LessonsCompleted)
	p.Languages[lang] = stat
	p.XP += xp
	l.touch(&p, now)

	if err := l.store.PutProgress(ctx, accountID, p); err != nil {
		return model.Progress{}, fmt.Errorf("save progress: %w", err)
	}
	l.record(ctx, model.Activity{
		AccountID: accountID,
		Kind:      model.ActivityLesson,
		Ref:       lessonID,
		Lang:      lang,
		XP:        xp,
		At:        now,
	})
	l.log.Debug("lesson completed",
		zap.String("account", accountID),
		zap.String("lesson", lessonID),
		zap.String("lang", lang),
		zap.Bool("replay", replay),
		zap.Int("xp", xp))
	if stat.Level > prevLevel {
		l.log.Info("language level up",
			zap.String("account", accountID),
			zap.String("lang", lang),
			zap.Int("level", stat.Level))
	}
	return p.Clone(), nil
}

// InitializeLanguage starts tracking lang without touching XP or streak.
func (l *Ledger) InitializeLanguage(ctx context.Context, accountID, lang string) error {
	if err := l.requireAccount(ctx, accountID); err != nil {
		return err
	}
	lang = normalizeLang(lang)
	if lang == "" {
		return ErrEmptyLanguage
	}
	p, err := l.load(ctx, accountID)
	if err != nil {
		return err
	}
	if _, ok := p.Languages[lang]; ok {
		return nil
	}
	p.Languages[lang] = model.NewLanguageStat()
	if err := l.store.PutProgress(ctx, accountID, p); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// LevelFor returns the language level reached after completed lessons.
func LevelFor(completed int) int {
	if completed < 0 {
		completed = 0
	}
	return 1 + completed/LessonsPerLevel
}

func (l *Ledger) requireAccount(ctx context.Context, accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return ErrNotLoggedIn
	}
	ok, err := l.store.AccountExists(ctx, accountID)
	if err != nil {
		return fmt.Errorf("lookup account: %w", err)
	}
	if !ok {
		return ErrNotLoggedIn
	}
	return nil
}

func (l *Ledger) load(ctx context.Context, accountID string) (model.Progress, error) {
	p, ok, err := l.store.GetProgress(ctx, accountID)
	if err != nil {
		return model.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	if !ok {
		return model.NewProgress(), nil
	}
	p = p.Clone()
	return p, nil
}

func (l *Ledger) touch(p *model.Progress, now time.Time) {
	p.Streak = NextStreak(p.Streak, p.LastActivity, now, l.loc)
	p.LastActivity = now
}

func (l *Ledger) record(ctx context.Context, a model.Activity) {
	if l.journal == nil {
		return
	}
	if err := l.journal.AppendActivity(ctx, a); err != nil {
		l.log.Warn("failed to journal activity", zap.Error(err), zap.String("account", a.AccountID))
	}
}

func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
