// README: Therapist store backed by PostgreSQL.
package therapist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

type Store interface {
	UpsertLocation(ctx context.Context, loc *Location) error
	GetLocation(ctx context.Context, id types.ID) (*Location, error)
	UpsertServices(ctx context.Context, sv *Services) error
	GetServices(ctx context.Context, id types.ID) (*Services, error)
	GetSummary(ctx context.Context, id types.ID) (*Summary, error)
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) UpsertLocation(ctx context.Context, loc *Location) error {
	var lat, lng *float64
	if loc.Position != nil {
		lat, lng = &loc.Position.Lat, &loc.Position.Lng
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO therapist_locations (therapist_id, address, service_radius_km, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (therapist_id) DO UPDATE
		SET address = EXCLUDED.address,
		    service_radius_km = EXCLUDED.service_radius_km,
		    latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude`,
		string(loc.TherapistID), loc.Address, loc.ServiceRadius, lat, lng,
	)
	return err
}

func (s *PostgresStore) GetLocation(ctx context.Context, id types.ID) (*Location, error) {
	row := s.db.QueryRow(ctx, `
		SELECT therapist_id, address, service_radius_km, latitude, longitude
		FROM therapist_locations
		WHERE therapist_id = $1`, string(id),
	)
	var loc Location
	var lat, lng *float64
	err := row.Scan(&loc.TherapistID, &loc.Address, &loc.ServiceRadius, &lat, &lng)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		loc.Position = &types.Point{Lat: *lat, Lng: *lng}
	}
	return &loc, nil
}

func (s *PostgresStore) UpsertServices(ctx context.Context, sv *Services) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO therapist_services (therapist_id, services)
		VALUES ($1, $2)
		ON CONFLICT (therapist_id) DO UPDATE
		SET services = EXCLUDED.services`,
		string(sv.TherapistID), service.Strings(sv.Offered),
	)
	return err
}

func (s *PostgresStore) GetServices(ctx context.Context, id types.ID) (*Services, error) {
	row := s.db.QueryRow(ctx, `
		SELECT therapist_id, services
		FROM therapist_services
		WHERE therapist_id = $1`, string(id),
	)
	var sv Services
	var raw []string
	err := row.Scan(&sv.TherapistID, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	for _, r := range raw {
		sv.Offered = append(sv.Offered, service.Code(r))
	}
	return &sv, nil
}

func (s *PostgresStore) GetSummary(ctx context.Context, id types.ID) (*Summary, error) {
	row := s.db.QueryRow(ctx, `
		SELECT therapist_id, name, email
		FROM therapists
		WHERE therapist_id = $1`, string(id),
	)
	var sum Summary
	err := row.Scan(&sum.TherapistID, &sum.Name, &sum.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sum, nil
}
