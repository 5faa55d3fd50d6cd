// README: Wire formats for the booking dispatch relay.
package dispatch

import (
	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

// QueueName is the durable queue new booking requests are published to.
const QueueName = "service_requests"

// ServiceRequest is the broker message for a newly created booking.
type ServiceRequest struct {
	BookingID  types.ID `json:"booking_id"`
	CustomerID types.ID `json:"customer_id"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Services   []string `json:"services"`
}

// Event is the envelope pushed to a therapist's realtime channel.
type Event struct {
	Type string         `json:"type"`
	Data ServiceRequest `json:"data"`
}

const eventTypeServiceRequest = "service_request"

// RequestFor builds the broker message for a created booking.
func RequestFor(o *order.Order) ServiceRequest {
	return ServiceRequest{
		BookingID:  o.ID,
		CustomerID: o.CustomerID,
		Latitude:   o.Position.Lat,
		Longitude:  o.Position.Lng,
		Services:   service.Strings([]service.Code{o.Service}),
	}
}
