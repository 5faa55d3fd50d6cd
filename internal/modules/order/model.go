// README: Booking aggregate and status definitions.
package order

import (
	"time"

	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is a single service engagement between a customer and a therapist.
// TherapistID is nil until a therapist is assigned (direct booking assigns at
// creation; the discovery flow assigns at accept).
type Order struct {
	ID           types.ID
	CustomerID   types.ID
	TherapistID  *types.ID
	Service      service.Code
	Price        types.Money
	Status       Status
	Address      string
	Position     types.Point
	CreatedAt    time.Time
	AcceptedAt   *time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason *string
	Rating       *int
	Review       *string
}

// Event is one audit-trail entry per successful transition.
type Event struct {
	ID         int64
	OrderID    types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *types.ID
	CreatedAt  time.Time
}

// AllowedTransitions represents the booking state flow as code. completed
// and cancelled are terminal.
var AllowedTransitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusCancelled},
	StatusAccepted: {StatusStarted, StatusCancelled},
	StatusStarted:  {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
