// README: Consumer that turns booking requests into realtime therapist pushes.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/RitikChahar/RoomSpa/internal/modules/matching"
	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/realtime"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

// Matcher finds the therapists a request should be offered to.
type Matcher interface {
	FindNearby(ctx context.Context, q matching.Query) ([]matching.Match, error)
}

// Consumer drains the service_requests queue, re-matches each booking
// against the current therapist pool, and pushes an offer to every match.
type Consumer struct {
	url     string
	matcher Matcher
	pusher  realtime.Pusher
}

func NewConsumer(url string, matcher Matcher, pusher realtime.Pusher) *Consumer {
	return &Consumer{url: url, matcher: matcher, pusher: pusher}
}

// Run keeps a consuming connection alive until ctx is cancelled, re-dialing
// with exponential backoff after broker failures.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.Printf("dispatch: dial broker: %v; retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			_ = conn.Close()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("dispatch: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("dispatch: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handle(ctx, d.Body); err != nil {
				log.Printf("dispatch: handle message failed: %v", err)
				// reject, do not requeue: a poison message would loop forever
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// handle re-matches one booking request and pushes a service_request event
// to each eligible therapist. Push failures are logged per therapist; the
// message is still acked because replays would duplicate the other pushes.
func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var req ServiceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	codes, err := service.ParseCodes(req.Services)
	if err != nil {
		return fmt.Errorf("booking %s: %w", req.BookingID, err)
	}

	matches, err := c.matcher.FindNearby(ctx, matching.Query{
		Origin:   types.Point{Lat: req.Latitude, Lng: req.Longitude},
		Services: codes,
	})
	if err != nil {
		return fmt.Errorf("match booking %s: %w", req.BookingID, err)
	}
	if len(matches) == 0 {
		log.Printf("dispatch: booking %s matched no therapists", req.BookingID)
		return nil
	}

	ev := Event{Type: eventTypeServiceRequest, Data: req}
	for _, m := range matches {
		if err := c.pusher.PushToTherapist(ctx, m.TherapistID, ev); err != nil {
			log.Printf("dispatch: push booking %s to therapist %s: %v", req.BookingID, m.TherapistID, err)
		}
	}
	return nil
}
