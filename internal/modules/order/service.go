// README: Booking service implements lifecycle transitions and their side effects.
package order

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

var (
	ErrNotFound   = errors.New("order not found")
	ErrConflict   = errors.New("order state conflict")
	ErrBadRequest = errors.New("bad request")
)

// Notifier is told about new bookings after they are durably created. The
// dispatch relay implements it; failures are logged and never surfaced to
// the caller because the order row, not the notification, is the source of
// truth.
type Notifier interface {
	BookingCreated(ctx context.Context, o *Order) error
}

type Service struct {
	store    Store
	earnings Recorder
	notifier Notifier
}

func NewService(store Store, earnings Recorder, notifier Notifier) *Service {
	return &Service{store: store, earnings: earnings, notifier: notifier}
}

type CreateCommand struct {
	CustomerID  types.ID
	TherapistID types.ID // optional; empty means assignment happens at accept
	Service     string
	Price       types.Money
	Address     string
	Position    types.Point
}

type AcceptCommand struct {
	OrderID     types.ID
	TherapistID types.ID
}

type StartCommand struct {
	OrderID     types.ID
	TherapistID types.ID
}

type CompleteCommand struct {
	OrderID     types.ID
	TherapistID types.ID
}

type CancelCommand struct {
	OrderID     types.ID
	TherapistID types.ID // set when a therapist cancels
	CustomerID  types.ID // set when the customer cancels
	Reason      string
}

type ReviewCommand struct {
	OrderID    types.ID
	CustomerID types.ID
	Rating     int
	Review     string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	if cmd.CustomerID == "" || cmd.Address == "" {
		return nil, ErrBadRequest
	}
	code, err := service.Parse(cmd.Service)
	if err != nil {
		return nil, ErrBadRequest
	}
	if cmd.Price <= 0 {
		return nil, ErrBadRequest
	}
	if cmd.Position.Lat < -90 || cmd.Position.Lat > 90 || cmd.Position.Lng < -180 || cmd.Position.Lng > 180 {
		return nil, ErrBadRequest
	}

	o := &Order{
		ID:         types.ID(uuid.NewString()),
		CustomerID: cmd.CustomerID,
		Service:    code,
		Price:      cmd.Price,
		Status:     StatusPending,
		Address:    cmd.Address,
		Position:   cmd.Position,
		CreatedAt:  time.Now().UTC(),
	}
	if cmd.TherapistID != "" {
		t := cmd.TherapistID
		o.TherapistID = &t
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: StatusNone,
		ToStatus:   StatusPending,
		ActorType:  "customer",
		ActorID:    &cmd.CustomerID,
		CreatedAt:  o.CreatedAt,
	})

	// The booking is committed; notification is best-effort from here.
	if s.notifier != nil {
		if err := s.notifier.BookingCreated(ctx, o); err != nil {
			log.Printf("order: notify booking %s: %v", o.ID, err)
		}
	}
	return o, nil
}

func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) (*Order, error) {
	if cmd.OrderID == "" || cmd.TherapistID == "" {
		return nil, ErrBadRequest
	}
	g := Guard{OrderID: cmd.OrderID, TherapistID: cmd.TherapistID, From: StatusPending}
	o, ok, err := s.store.Transition(ctx, g, StatusAccepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.guardFailure(ctx, cmd.OrderID)
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: StatusPending,
		ToStatus:   StatusAccepted,
		ActorType:  "therapist",
		ActorID:    &cmd.TherapistID,
		CreatedAt:  time.Now().UTC(),
	})
	return o, nil
}

func (s *Service) Start(ctx context.Context, cmd StartCommand) (*Order, error) {
	if cmd.OrderID == "" || cmd.TherapistID == "" {
		return nil, ErrBadRequest
	}
	g := Guard{OrderID: cmd.OrderID, TherapistID: cmd.TherapistID, From: StatusAccepted}
	o, ok, err := s.store.Transition(ctx, g, StatusStarted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.guardFailure(ctx, cmd.OrderID)
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: StatusAccepted,
		ToStatus:   StatusStarted,
		ActorType:  "therapist",
		ActorID:    &cmd.TherapistID,
		CreatedAt:  time.Now().UTC(),
	})
	return o, nil
}

// Complete moves a started booking to completed and records the earnings
// entry in the same transaction.
func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) (*Order, error) {
	if cmd.OrderID == "" || cmd.TherapistID == "" {
		return nil, ErrBadRequest
	}
	g := Guard{OrderID: cmd.OrderID, TherapistID: cmd.TherapistID, From: StatusStarted}
	o, ok, err := s.store.Complete(ctx, g, s.earnings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.guardFailure(ctx, cmd.OrderID)
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: StatusStarted,
		ToStatus:   StatusCompleted,
		ActorType:  "therapist",
		ActorID:    &cmd.TherapistID,
		CreatedAt:  time.Now().UTC(),
	})
	return o, nil
}

// Cancel is legal from pending or accepted. Which starting state applies is
// decided by the current row, so the observed status feeds the guard.
func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) (*Order, error) {
	if cmd.OrderID == "" || (cmd.TherapistID == "" && cmd.CustomerID == "") {
		return nil, ErrBadRequest
	}
	cur, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(cur.Status, StatusCancelled) {
		return nil, ErrConflict
	}
	g := Guard{
		OrderID:     cmd.OrderID,
		TherapistID: cmd.TherapistID,
		CustomerID:  cmd.CustomerID,
		From:        cur.Status,
		Reason:      cmd.Reason,
	}
	o, ok, err := s.store.Transition(ctx, g, StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.guardFailure(ctx, cmd.OrderID)
	}
	actorType, actorID := "therapist", cmd.TherapistID
	if cmd.CustomerID != "" {
		actorType, actorID = "customer", cmd.CustomerID
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: cur.Status,
		ToStatus:   StatusCancelled,
		ActorType:  actorType,
		ActorID:    &actorID,
		CreatedAt:  time.Now().UTC(),
	})
	return o, nil
}

// SetReview records a rating (1-5) and optional free text, once, after
// completion. Not a state transition but gated on the terminal state.
func (s *Service) SetReview(ctx context.Context, cmd ReviewCommand) (*Order, error) {
	if cmd.OrderID == "" || cmd.CustomerID == "" {
		return nil, ErrBadRequest
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, ErrBadRequest
	}
	o, ok, err := s.store.SetReview(ctx, cmd.OrderID, cmd.CustomerID, cmd.Rating, cmd.Review)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.guardFailure(ctx, cmd.OrderID)
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID types.ID) ([]*Order, error) {
	return s.store.ListByCustomer(ctx, customerID)
}

func (s *Service) ListIncoming(ctx context.Context, therapistID types.ID) ([]*Order, error) {
	return s.store.ListIncoming(ctx, therapistID)
}

// RunPendingSweep cancels bookings stuck in pending longer than ttl. It is
// a durable scheduled sweep, not an in-memory timer: state lives in the
// store, so restarts only delay the next tick.
func (s *Service) RunPendingSweep(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.store.CancelStalePending(ctx, time.Now().UTC().Add(-ttl), "expired")
			if err != nil {
				log.Printf("order: pending sweep: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("order: pending sweep cancelled %d stale bookings", n)
			}
		}
	}
}

// guardFailure disambiguates a failed conditional update after the fact:
// a missing order is NotFound, an existing one lost the guard race or is in
// the wrong state. Store failures pass through untouched so the transport
// layer does not mistake an outage for a guard miss.
func (s *Service) guardFailure(ctx context.Context, id types.ID) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return ErrConflict
}
