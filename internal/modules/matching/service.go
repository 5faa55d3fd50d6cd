// README: Matching service ranks eligible therapists by distance.
package matching

import (
	"context"
	"errors"

	"github.com/RitikChahar/RoomSpa/internal/modules/service"
)

var ErrBadRequest = errors.New("bad request")

// Source supplies the candidate pool. The Postgres store implements it;
// tests feed fixtures directly.
type Source interface {
	Candidates(ctx context.Context) ([]Candidate, error)
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// FindNearby returns eligible therapists sorted ascending by distance.
// A therapist is eligible iff the unrounded distance from the query origin
// is within min(their service radius, the query override) and their offered
// set intersects the requested codes. No eligible therapists is an empty
// result, not an error.
func (s *Service) FindNearby(ctx context.Context, q Query) ([]Match, error) {
	if len(q.Services) == 0 {
		return nil, ErrBadRequest
	}
	if q.RadiusKm < 0 {
		return nil, ErrBadRequest
	}
	candidates, err := s.source.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(candidates, q), nil
}

// Rank applies eligibility and ordering to an in-memory candidate pool.
func Rank(candidates []Candidate, q Query) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if !service.Intersects(c.Offered, q.Services) {
			continue
		}
		limit := c.RadiusKm
		if q.RadiusKm > 0 && q.RadiusKm < limit {
			limit = q.RadiusKm
		}
		d := haversineKm(q.Origin.Lat, q.Origin.Lng, c.Position.Lat, c.Position.Lng)
		if d > limit {
			continue
		}
		matches = append(matches, Match{
			TherapistID: c.TherapistID,
			Name:        c.Name,
			Email:       c.Email,
			Address:     c.Address,
			DistanceKm:  d,
			Offered:     c.Offered,
		})
	}
	sortMatches(matches)
	return matches
}
