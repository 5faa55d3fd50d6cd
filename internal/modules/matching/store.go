// README: Candidate pool loaded from PostgreSQL therapist tables.
package matching

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Candidates loads every therapist location with coordinates, joined with
// their offered services and contact summary. Locations without coordinates
// are excluded up front.
func (s *PostgresStore) Candidates(ctx context.Context) ([]Candidate, error) {
	rows, err := s.db.Query(ctx, `
		SELECT l.therapist_id, COALESCE(t.name, ''), COALESCE(t.email, ''),
		       l.address, l.service_radius_km, l.latitude, l.longitude,
		       COALESCE(sv.services, '{}')
		FROM therapist_locations l
		LEFT JOIN therapists t ON t.therapist_id = l.therapist_id
		LEFT JOIN therapist_services sv ON sv.therapist_id = l.therapist_id
		WHERE l.latitude IS NOT NULL AND l.longitude IS NOT NULL`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		var id string
		var raw []string
		if err := rows.Scan(&id, &c.Name, &c.Email, &c.Address,
			&c.RadiusKm, &c.Position.Lat, &c.Position.Lng, &raw); err != nil {
			return nil, err
		}
		c.TherapistID = types.ID(id)
		for _, r := range raw {
			c.Offered = append(c.Offered, service.Code(r))
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
