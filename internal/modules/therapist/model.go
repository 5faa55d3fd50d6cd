// README: Therapist location and offered-services aggregates.
package therapist

import (
	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

// Location is where a therapist operates from. Coordinates are optional:
// a location without them never appears in proximity search.
type Location struct {
	TherapistID   types.ID
	Address       string
	ServiceRadius float64 // km
	Position      *types.Point
}

// Services is the set of service codes a therapist offers. Mutated only by
// therapist profile updates.
type Services struct {
	TherapistID types.ID
	Offered     []service.Code
}

// Summary is the contact read model shown in search and detail responses.
// Identity storage itself lives upstream; this table is a replica kept in
// sync by profile updates.
type Summary struct {
	TherapistID types.ID
	Name        string
	Email       string
}

// Profile bundles everything a therapist has configured.
type Profile struct {
	Summary  *Summary
	Location *Location
	Services *Services
}
