package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/lingua/internal/model"
)

// Source is the data a report is built from.
type Source interface {
	GetProgress(ctx context.Context, accountID string) (model.Progress, error)
	ListActivity(ctx context.Context, accountID string, since time.Time) ([]model.Activity, error)
}

// Report contains precomputed data for progress rendering.
type Report struct {
	Progress model.Progress
	Weekly   []model.DailyXP
	// Names maps language codes to display names.
	Names map[string]string
}

// BuildReport loads the account's progress and the last week of activity.
func BuildReport(ctx context.Context, src Source, accountID string, now time.Time, loc *time.Location, names map[string]string) (Report, error) {
	p, err := src.GetProgress(ctx, accountID)
	if err != nil {
		return Report{}, err
	}
	acts, err := src.ListActivity(ctx, accountID, WeekStart(now, loc))
	if err != nil {
		return Report{}, err
	}
	return Report{
		Progress: p,
		Weekly:   WeeklyXP(acts, now, loc),
		Names:    names,
	}, nil
}
