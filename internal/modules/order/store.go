// README: Booking store backed by PostgreSQL; transitions are conditional updates.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RitikChahar/RoomSpa/internal/types"
)

// Completion is handed to the earnings Recorder inside the completing
// transaction.
type Completion struct {
	OrderID     types.ID
	TherapistID types.ID
	Gross       types.Money
	CompletedAt time.Time
}

// Recorder appends the earnings entry for a completed booking. tx is the
// transaction the completing status update runs in; implementations must
// write through it so the transition and the entry commit together.
type Recorder interface {
	Record(ctx context.Context, tx pgx.Tx, c Completion) error
}

// Guard is the atomic lookup filter for a transition: the order must exist
// with the required status and, when set, belong to the given actor. A
// transition either matches the guard and applies fully, or touches nothing.
type Guard struct {
	OrderID     types.ID
	TherapistID types.ID // empty: not enforced; accept may claim an unassigned order
	CustomerID  types.ID // empty: not enforced
	From        Status
	Reason      string // recorded on cancel
}

type Store interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id types.ID) (*Order, error)
	Transition(ctx context.Context, g Guard, to Status) (*Order, bool, error)
	Complete(ctx context.Context, g Guard, rec Recorder) (*Order, bool, error)
	SetReview(ctx context.Context, id, customerID types.ID, rating int, review string) (*Order, bool, error)
	ListByCustomer(ctx context.Context, customerID types.ID) ([]*Order, error)
	ListIncoming(ctx context.Context, therapistID types.ID) ([]*Order, error)
	CancelStalePending(ctx context.Context, before time.Time, reason string) (int64, error)
	AppendEvent(ctx context.Context, e *Event) error
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const orderColumns = `
	id, customer_id, therapist_id, service, price_cents, status,
	address, latitude, longitude,
	created_at, accepted_at, started_at, completed_at, cancelled_at,
	cancellation_reason, rating, review`

func (s *PostgresStore) Create(ctx context.Context, o *Order) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO orders (
			id, customer_id, therapist_id, service, price_cents, status,
			address, latitude, longitude, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		string(o.ID),
		string(o.CustomerID),
		toStringPtr(o.TherapistID),
		string(o.Service),
		int64(o.Price),
		string(o.Status),
		o.Address,
		o.Position.Lat, o.Position.Lng,
		o.CreatedAt,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, string(id))
	return scanOrder(row)
}

// transitionSQL applies the status change and the matching timestamp in one
// conditional UPDATE. The WHERE clause is the entire guard: no row matched
// means the order is missing, owned by someone else, or in the wrong state.
const transitionSQL = `
	UPDATE orders
	SET status = $1,
	    therapist_id = CASE WHEN $1 = 'accepted' AND therapist_id IS NULL THEN NULLIF($2, '') ELSE therapist_id END,
	    accepted_at = CASE WHEN $1 = 'accepted' THEN NOW() ELSE accepted_at END,
	    started_at = CASE WHEN $1 = 'started' THEN NOW() ELSE started_at END,
	    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
	    cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END,
	    cancellation_reason = CASE WHEN $1 = 'cancelled' THEN NULLIF($3, '') ELSE cancellation_reason END
	WHERE id = $4
	  AND status = $5
	  AND ($2 = '' OR therapist_id = $2 OR (therapist_id IS NULL AND $1 = 'accepted'))
	  AND ($6 = '' OR customer_id = $6)
	RETURNING ` + orderColumns

func (s *PostgresStore) Transition(ctx context.Context, g Guard, to Status) (*Order, bool, error) {
	row := s.db.QueryRow(ctx, transitionSQL,
		string(to), string(g.TherapistID), g.Reason,
		string(g.OrderID), string(g.From), string(g.CustomerID),
	)
	o, err := scanOrder(row)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return o, true, nil
}

// Complete runs the completing transition and the earnings append in a
// single transaction so retried completions can never produce a second
// entry and a failed append leaves the order untouched.
func (s *PostgresStore) Complete(ctx context.Context, g Guard, rec Recorder) (*Order, bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, transitionSQL,
		string(StatusCompleted), string(g.TherapistID), "",
		string(g.OrderID), string(g.From), string(g.CustomerID),
	)
	o, err := scanOrder(row)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if rec != nil {
		c := Completion{
			OrderID: o.ID,
			Gross:   o.Price,
		}
		if o.TherapistID != nil {
			c.TherapistID = *o.TherapistID
		}
		if o.CompletedAt != nil {
			c.CompletedAt = *o.CompletedAt
		}
		if err := rec.Record(ctx, tx, c); err != nil {
			return nil, false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return o, true, nil
}

// SetReview writes the rating and review once, only on a completed booking
// owned by the customer.
func (s *PostgresStore) SetReview(ctx context.Context, id, customerID types.ID, rating int, review string) (*Order, bool, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE orders
		SET rating = $1, review = $2
		WHERE id = $3 AND customer_id = $4 AND status = 'completed' AND rating IS NULL
		RETURNING `+orderColumns,
		rating, review, string(id), string(customerID),
	)
	o, err := scanOrder(row)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return o, true, nil
}

func (s *PostgresStore) ListByCustomer(ctx context.Context, customerID types.ID) ([]*Order, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		string(customerID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListIncoming returns the bookings a therapist can act on: unassigned (or
// their own) pending requests plus their in-flight accepted/started work.
func (s *PostgresStore) ListIncoming(ctx context.Context, therapistID types.ID) ([]*Order, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE (status = 'pending' AND (therapist_id IS NULL OR therapist_id = $1))
		    OR (therapist_id = $1 AND status IN ('accepted', 'started'))
		 ORDER BY created_at DESC`,
		string(therapistID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// CancelStalePending sweeps pending bookings created before the cutoff
// through the same conditional update the cancel transition uses, and
// appends a system event per cancelled row so the audit trail stays whole.
func (s *PostgresStore) CancelStalePending(ctx context.Context, before time.Time, reason string) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		UPDATE orders
		SET status = 'cancelled', cancelled_at = NOW(), cancellation_reason = $1
		WHERE status = 'pending' AND created_at < $2
		RETURNING id`,
		reason, before,
	)
	if err != nil {
		return 0, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range ids {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_state_events (
				order_id, from_status, to_status, actor_type, actor_id, created_at
			) VALUES ($1, 'pending', 'cancelled', 'system', NULL, NOW())`,
			id,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (s *PostgresStore) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_state_events (
			order_id, from_status, to_status, actor_type, actor_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.OrderID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var therapistID, cancelReason, review *string
	var rating *int
	err := row.Scan(
		&o.ID, &o.CustomerID, &therapistID, &o.Service, &o.Price, &o.Status,
		&o.Address, &o.Position.Lat, &o.Position.Lng,
		&o.CreatedAt, &o.AcceptedAt, &o.StartedAt, &o.CompletedAt, &o.CancelledAt,
		&cancelReason, &rating, &review,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if therapistID != nil {
		t := types.ID(*therapistID)
		o.TherapistID = &t
	}
	o.CancelReason = cancelReason
	o.Rating = rating
	o.Review = review
	return &o, nil
}

func scanOrders(rows pgx.Rows) ([]*Order, error) {
	var out []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
