// README: Therapist profile service; validates and upserts location/services.
package therapist

import (
	"context"
	"errors"

	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

var (
	ErrNotFound   = errors.New("therapist profile not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type LocationUpdate struct {
	TherapistID   types.ID
	Address       string
	ServiceRadius float64
	Position      *types.Point
}

func (s *Service) SetLocation(ctx context.Context, u LocationUpdate) (*Location, error) {
	if u.TherapistID == "" || u.Address == "" {
		return nil, ErrBadRequest
	}
	if u.ServiceRadius < 0 {
		return nil, ErrBadRequest
	}
	if u.Position != nil {
		if u.Position.Lat < -90 || u.Position.Lat > 90 || u.Position.Lng < -180 || u.Position.Lng > 180 {
			return nil, ErrBadRequest
		}
	}
	loc := &Location{
		TherapistID:   u.TherapistID,
		Address:       u.Address,
		ServiceRadius: u.ServiceRadius,
		Position:      u.Position,
	}
	if err := s.store.UpsertLocation(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *Service) GetLocation(ctx context.Context, id types.ID) (*Location, error) {
	return s.store.GetLocation(ctx, id)
}

func (s *Service) SetServices(ctx context.Context, id types.ID, codes []string) (*Services, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	offered := make([]service.Code, 0, len(codes))
	seen := make(map[service.Code]struct{}, len(codes))
	for _, raw := range codes {
		c, err := service.Parse(raw)
		if err != nil {
			return nil, ErrBadRequest
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		offered = append(offered, c)
	}
	sv := &Services{TherapistID: id, Offered: offered}
	if err := s.store.UpsertServices(ctx, sv); err != nil {
		return nil, err
	}
	return sv, nil
}

func (s *Service) GetServices(ctx context.Context, id types.ID) (*Services, error) {
	return s.store.GetServices(ctx, id)
}

// Profile assembles the pieces a therapist has configured so far. Missing
// sections come back nil rather than failing the whole call.
func (s *Service) Profile(ctx context.Context, id types.ID) (*Profile, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	p := &Profile{}
	if sum, err := s.store.GetSummary(ctx, id); err == nil {
		p.Summary = sum
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if loc, err := s.store.GetLocation(ctx, id); err == nil {
		p.Location = loc
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if sv, err := s.store.GetServices(ctx, id); err == nil {
		p.Services = sv
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return p, nil
}
