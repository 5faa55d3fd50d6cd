package earnings

import (
	"context"
	"testing"
	"time"

	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

func TestNewEntrySplit(t *testing.T) {
	cases := []struct {
		gross   types.Money
		wantFee types.Money
		wantNet types.Money
	}{
		{10000, 2000, 8000}, // 100.00 -> 20.00 fee, 80.00 net
		{24999, 5000, 19999},
		{1, 0, 1},
	}
	for _, tc := range cases {
		e := NewEntry(order.Completion{
			OrderID:     "o1",
			TherapistID: "t1",
			Gross:       tc.gross,
			CompletedAt: time.Now(),
		}, 20)
		if e.PlatformFee != tc.wantFee || e.Net != tc.wantNet {
			t.Errorf("NewEntry(gross=%d): fee=%d net=%d, want fee=%d net=%d",
				tc.gross, e.PlatformFee, e.Net, tc.wantFee, tc.wantNet)
		}
		if e.PlatformFee+e.Net != e.Gross {
			t.Errorf("fee+net != gross for %d", tc.gross)
		}
		if e.Paid {
			t.Error("new entries must start unpaid")
		}
	}
}

func TestPeriodWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	since, bucket, err := periodWindow("day", now)
	if err != nil || bucket != "hour" || !since.Equal(now.Add(-24*time.Hour)) {
		t.Errorf("day window: since=%v bucket=%q err=%v", since, bucket, err)
	}
	since, bucket, err = periodWindow("week", now)
	if err != nil || bucket != "day" || !since.Equal(now.AddDate(0, 0, -7)) {
		t.Errorf("week window: since=%v bucket=%q err=%v", since, bucket, err)
	}
	if _, _, err := periodWindow("year", now); err != ErrBadPeriod {
		t.Errorf("expected ErrBadPeriod, got %v", err)
	}
}

type fixtureAggregator struct {
	totals Summary
	series []Bucket
}

func (f *fixtureAggregator) Totals(context.Context, types.ID, time.Time) (Summary, error) {
	return f.totals, nil
}

func (f *fixtureAggregator) Series(context.Context, types.ID, time.Time, string) ([]Bucket, error) {
	return f.series, nil
}

func TestSummarize(t *testing.T) {
	agg := &fixtureAggregator{
		totals: Summary{Gross: 10000, Fees: 2000, Net: 8000, UnpaidNet: 8000, Count: 1},
		series: []Bucket{{Net: 8000}},
	}
	svc := NewService(agg)

	sum, err := svc.Summarize(context.Background(), "t1", "week")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Period != "week" || sum.Net != 8000 || len(sum.Series) != 1 {
		t.Errorf("unexpected summary: %+v", sum)
	}

	if _, err := svc.Summarize(context.Background(), "t1", "bogus"); err != ErrBadPeriod {
		t.Errorf("expected ErrBadPeriod, got %v", err)
	}
}
