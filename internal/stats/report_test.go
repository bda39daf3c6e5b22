package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/lingua/internal/ledger"
	"github.com/verte-zerg/lingua/internal/model"
	"github.com/verte-zerg/lingua/internal/store"
)

type reportSource struct {
	*ledger.Ledger
	st *store.Store
}

func (s reportSource) ListActivity(ctx context.Context, accountID string, since time.Time) ([]model.Activity, error) {
	return s.st.ListActivity(ctx, accountID, since)
}

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "lingua.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	if err := st.CreateAccount(ctx, model.Account{ID: "acct-1", Username: "ann", Email: "ann@x.com"}); err != nil {
		t.Fatalf("create account: %v", err)
	}
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	clock := now.AddDate(0, 0, -9)
	led := ledger.New(st,
		ledger.WithClock(func() time.Time { return clock }),
		ledger.WithLocation(time.UTC),
		ledger.WithJournal(st),
	)
	if _, err := led.AwardXP(ctx, "acct-1", 40, ""); err != nil {
		t.Fatalf("award: %v", err)
	}
	clock = now.AddDate(0, 0, -1)
	if _, err := led.CompleteLesson(ctx, "acct-1", "fr-basics-1", "fr", 12); err != nil {
		t.Fatalf("complete: %v", err)
	}
	clock = now
	if _, err := led.AwardXP(ctx, "acct-1", 15, ""); err != nil {
		t.Fatalf("award: %v", err)
	}

	report, err := BuildReport(ctx, reportSource{Ledger: led, st: st}, "acct-1", now, time.UTC, map[string]string{"fr": "French"})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Progress.XP != 67 {
		t.Fatalf("expected 67 xp, got %d", report.Progress.XP)
	}
	if len(report.Weekly) != WeekDays {
		t.Fatalf("expected %d days, got %d", WeekDays, len(report.Weekly))
	}
	if got := TotalXP(report.Weekly); got != 27 {
		t.Fatalf("expected 27 weekly xp, got %d", got)
	}
	if report.Weekly[5].XP != 12 || report.Weekly[6].XP != 15 {
		t.Fatalf("unexpected weekly series: %+v", report.Weekly)
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, report, 60); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Level: 1 (67/100 XP to next)", "Streak: 2 day(s)", "Weekly XP", "French"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}
