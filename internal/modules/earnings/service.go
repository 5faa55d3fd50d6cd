// README: Earnings summary service; windows and buckets per reporting period.
package earnings

import (
	"context"
	"errors"
	"time"

	"github.com/RitikChahar/RoomSpa/internal/types"
)

var ErrBadPeriod = errors.New("period must be day, week or month")

// Aggregator is the slice of the store the summary needs; tests fake it.
type Aggregator interface {
	Totals(ctx context.Context, therapistID types.ID, since time.Time) (Summary, error)
	Series(ctx context.Context, therapistID types.ID, since time.Time, bucket string) ([]Bucket, error)
}

type Service struct {
	store Aggregator
}

func NewService(store Aggregator) *Service {
	return &Service{store: store}
}

// periodWindow maps a reporting period to its lookback window and series
// bucket width.
func periodWindow(period string, now time.Time) (since time.Time, bucket string, err error) {
	switch period {
	case "day":
		return now.Add(-24 * time.Hour), "hour", nil
	case "week":
		return now.AddDate(0, 0, -7), "day", nil
	case "month":
		return now.AddDate(0, -1, 0), "day", nil
	default:
		return time.Time{}, "", ErrBadPeriod
	}
}

func (s *Service) Summarize(ctx context.Context, therapistID types.ID, period string) (*Summary, error) {
	since, bucket, err := periodWindow(period, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	sum, err := s.store.Totals(ctx, therapistID, since)
	if err != nil {
		return nil, err
	}
	series, err := s.store.Series(ctx, therapistID, since, bucket)
	if err != nil {
		return nil, err
	}
	sum.Period = period
	sum.Series = series
	return &sum, nil
}
