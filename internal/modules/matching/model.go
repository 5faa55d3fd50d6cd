// README: Matching candidates and results for proximity search.
package matching

import (
	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

// Candidate is a therapist considered for a proximity query: their location,
// how far they are willing to travel, and what they offer.
type Candidate struct {
	TherapistID types.ID
	Name        string
	Email       string
	Address     string
	Position    types.Point
	RadiusKm    float64
	Offered     []service.Code
}

// Match is an eligible therapist, ranked by distance from the query point.
// DistanceKm is unrounded; display rounding happens at the HTTP boundary.
type Match struct {
	TherapistID types.ID
	Name        string
	Email       string
	Address     string
	DistanceKm  float64
	Offered     []service.Code
}

// Query is a proximity search request. RadiusKm of 0 means no override: each
// therapist's own service radius decides eligibility on its own.
type Query struct {
	Origin   types.Point
	Services []service.Code
	RadiusKm float64
}
