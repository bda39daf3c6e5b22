package stats

import (
	"sort"

	"github.com/verte-zerg/lingua/internal/model"
)

// TopLanguagesByXP returns language codes ordered by earned XP, then
// code. n <= 0 returns all of them.
func TopLanguagesByXP(langs map[string]model.LanguageStat, n int) []string {
	if len(langs) == 0 {
		return nil
	}
	type item struct {
		code string
		xp   int
	}
	items := make([]item, 0, len(langs))
	for code, stat := range langs {
		items = append(items, item{code: code, xp: stat.XPEarned})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].xp == items[j].xp {
			return items[i].code < items[j].code
		}
		return items[i].xp > items[j].xp
	})
	if n <= 0 || n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].code)
	}
	return out
}
