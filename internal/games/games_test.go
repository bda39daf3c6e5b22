package games_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lingua/internal/content"
	"github.com/verte-zerg/lingua/internal/games"
	"github.com/verte-zerg/lingua/internal/generator"
	"github.com/verte-zerg/lingua/internal/ledger"
	"github.com/verte-zerg/lingua/internal/model"
	"github.com/verte-zerg/lingua/internal/store"
)

var pairs = []content.Pair{
	{Left: "Hello", Right: "Bonjour"},
	{Left: "Goodbye", Right: "Au revoir"},
	{Left: "Thank you", Right: "Merci"},
	{Left: "Please", Right: "S'il vous plaît"},
	{Left: "Yes", Right: "Oui"},
	{Left: "No", Right: "Non"},
}

func newGen(seed int64) *generator.Generator {
	return generator.NewWithRand(rand.New(rand.NewSource(seed)))
}

func translation(left string) string {
	for _, p := range pairs {
		if p.Left == left {
			return p.Right
		}
	}
	return ""
}

func indexOf(items []string, want string) int {
	for i, s := range items {
		if s == want {
			return i
		}
	}
	return -1
}

func TestLookup(t *testing.T) {
	info, err := games.Lookup(games.MemoryCardsID)
	require.NoError(t, err)
	require.Equal(t, 20, info.XPReward)
	_, err = games.Lookup("listening")
	require.ErrorIs(t, err, games.ErrUnknownGame)
}

func TestWordMatch(t *testing.T) {
	wm, err := games.NewWordMatch(newGen(1), pairs)
	require.NoError(t, err)
	lefts, rights := wm.Lefts(), wm.Rights()
	require.Len(t, lefts, games.WordMatchPairs)
	require.Len(t, rights, games.WordMatchPairs)

	wrong := (indexOf(rights, translation(lefts[0])) + 1) % len(rights)
	ok, err := wm.Try(0, wrong)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 1, wm.Misses())

	for i, left := range lefts {
		ok, err := wm.Try(i, indexOf(rights, translation(left)))
		require.NoError(t, err)
		require.True(t, ok, left)
		require.True(t, wm.Matched(left))
	}
	require.True(t, wm.Done())
	_, err = wm.Try(0, 0)
	require.ErrorIs(t, err, games.ErrGameOver)
}

func TestWordMatchNeedsPairs(t *testing.T) {
	_, err := games.NewWordMatch(newGen(1), pairs[:2])
	require.ErrorIs(t, err, games.ErrNotEnoughPairs)
}

func TestMemoryCards(t *testing.T) {
	mc, err := games.NewMemoryCards(newGen(2), pairs)
	require.NoError(t, err)
	cards := mc.Cards()
	require.Len(t, cards, 2*games.MemoryPairs)

	partner := func(i int) int {
		for j, c := range cards {
			if j != i && c.Pair == cards[i].Pair {
				return j
			}
		}
		return -1
	}
	mismatch := func(i int) int {
		for j, c := range cards {
			if c.Pair != cards[i].Pair {
				return j
			}
		}
		return -1
	}

	flip, err := mc.Turn(0)
	require.NoError(t, err)
	require.Equal(t, games.FlipFirst, flip)
	flip, _ = mc.Turn(0)
	require.Equal(t, games.FlipIgnored, flip)
	flip, _ = mc.Turn(mismatch(0))
	require.Equal(t, games.FlipMismatch, flip)
	require.Equal(t, 1, mc.Moves())
	require.Equal(t, -1, mc.Open())

	done := map[int]bool{}
	for i := range cards {
		if done[cards[i].Pair] {
			continue
		}
		_, err := mc.Turn(i)
		require.NoError(t, err)
		flip, err := mc.Turn(partner(i))
		require.NoError(t, err)
		require.Equal(t, games.FlipMatch, flip)
		done[cards[i].Pair] = true
	}
	require.True(t, mc.Done())
	require.Equal(t, games.MemoryPairs, mc.Matches())
	require.Equal(t, 1+games.MemoryPairs, mc.Moves())
}

func TestSpeedQuizFinishedInTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	q, err := games.NewSpeedQuiz(newGen(3), pairs, nil, start)
	require.NoError(t, err)
	require.Equal(t, len(pairs), q.Total())

	now := start
	for i := 0; ; i++ {
		cur, ok := q.Current()
		if !ok {
			break
		}
		require.Len(t, cur.Options, games.SpeedQuizOptions)
		require.Contains(t, cur.Options, cur.Answer)
		choice := cur.Answer
		if i == 0 {
			choice = "wrong"
		}
		now = now.Add(2 * time.Second)
		_, err := q.Answer(choice, now)
		require.NoError(t, err)
	}
	require.True(t, q.Done())
	require.True(t, q.Won())
	require.Equal(t, len(pairs)-1, q.Score())
	require.Len(t, q.Missed(), 1)
}

func TestSpeedQuizFavoursMissedWords(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	misses := map[string]int{"No": 5}
	counts := map[string]int{}
	for seed := int64(0); seed < 20; seed++ {
		q, err := games.NewSpeedQuiz(newGen(seed), pairs, misses, start)
		require.NoError(t, err)
		require.Equal(t, len(pairs), q.Total())
		for {
			cur, ok := q.Current()
			if !ok {
				break
			}
			counts[cur.Word]++
			_, err := q.Answer(cur.Answer, start)
			require.NoError(t, err)
		}
	}
	require.Greater(t, counts["No"], counts["Hello"]*3)
}

func TestSpeedQuizTimesOut(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	q, err := games.NewSpeedQuiz(newGen(4), pairs, nil, start)
	require.NoError(t, err)
	require.Equal(t, games.SpeedQuizLimit, q.Remaining(start))

	cur, _ := q.Current()
	_, err = q.Answer(cur.Answer, start.Add(5*time.Second))
	require.NoError(t, err)

	late := start.Add(games.SpeedQuizLimit)
	cur, _ = q.Current()
	_, err = q.Answer(cur.Answer, late)
	require.ErrorIs(t, err, games.ErrGameOver)
	require.True(t, q.Done())
	require.False(t, q.Won())
	require.Equal(t, 1, q.Score())
	require.Zero(t, q.Remaining(late))
}

func TestRewardAwardsWithoutLanguage(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.CreateAccount(ctx, model.Account{ID: "acct-1", Email: "a@x.com"}))
	led := ledger.New(st)
	require.NoError(t, led.InitializeLanguage(ctx, "acct-1", "fr"))

	info, err := games.Lookup(games.SpeedQuizID)
	require.NoError(t, err)
	p, err := games.Reward(ctx, led, "acct-1", info)
	require.NoError(t, err)
	require.Equal(t, 25, p.XP)
	require.Equal(t, 1, p.Streak)
	require.Zero(t, p.Languages["fr"].XPEarned)

	_, err = games.Reward(ctx, led, "", info)
	require.ErrorIs(t, err, ledger.ErrNotLoggedIn)
}
