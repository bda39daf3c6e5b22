// Package games implements the vocabulary mini-games.
package games

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/lingua/internal/model"
)

// Game identifiers accepted by Lookup.
const (
	WordMatchID   = "word-match"
	MemoryCardsID = "memory-cards"
	SpeedQuizID   = "speed-quiz"
)

// Info describes a playable game.
type Info struct {
	ID          string
	Title       string
	Description string
	XPReward    int
}

// Catalog lists the available games.
var Catalog = []Info{
	{ID: WordMatchID, Title: "Word Match", Description: "Match words with their translations", XPReward: 15},
	{ID: MemoryCardsID, Title: "Memory Cards", Description: "Flip cards and find matching pairs", XPReward: 20},
	{ID: SpeedQuizID, Title: "Speed Quiz", Description: "Answer as many questions as you can in 30 seconds", XPReward: 25},
}

var (
	// ErrUnknownGame is returned for ids missing from Catalog.
	ErrUnknownGame = errors.New("unknown game")
	// ErrNotEnoughPairs is returned when the word list is too short for a game.
	ErrNotEnoughPairs = errors.New("not enough word pairs")
	// ErrGameOver is returned for moves after a game has ended.
	ErrGameOver = errors.New("game is over")
)

// Lookup returns the game with id.
func Lookup(id string) (Info, error) {
	for _, g := range Catalog {
		if g.ID == id {
			return g, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %s", ErrUnknownGame, id)
}

// Awarder credits XP to an account.
type Awarder interface {
	AwardXP(ctx context.Context, accountID string, amount int, lang string) (model.Progress, error)
}

// MissTracker remembers the words an account answered wrongly.
type MissTracker interface {
	WordMisses(ctx context.Context, accountID string) (map[string]int, error)
	RecordMiss(ctx context.Context, accountID, word string) error
}

// Reward credits a won game. Games are not tied to a language.
func Reward(ctx context.Context, a Awarder, accountID string, info Info) (model.Progress, error) {
	p, err := a.AwardXP(ctx, accountID, info.XPReward, "")
	if err != nil {
		return model.Progress{}, fmt.Errorf("reward %s: %w", info.ID, err)
	}
	return p, nil
}
