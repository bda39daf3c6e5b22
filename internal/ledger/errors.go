package ledger

import "errors"

var (
	// ErrNotLoggedIn is returned when an operation has no existing account to act on.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrNegativeAmount is returned for XP amounts below zero.
	ErrNegativeAmount = errors.New("xp amount must be >= 0")
	// ErrEmptyLanguage is returned when a language code is required but blank.
	ErrEmptyLanguage = errors.New("language code is required")
	// ErrEmptyLesson is returned when a lesson id is blank.
	ErrEmptyLesson = errors.New("lesson id is required")
)
