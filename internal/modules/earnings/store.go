// README: Earnings ledger backed by PostgreSQL; append via the completing transaction.
package earnings

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

type PostgresStore struct {
	db         *pgxpool.Pool
	feePercent int
}

func NewStore(db *pgxpool.Pool, feePercent int) *PostgresStore {
	return &PostgresStore{db: db, feePercent: feePercent}
}

// Record implements order.Recorder. It writes through the completing
// transaction; the unique index on order_id is the backstop that keeps the
// ledger at most one entry per booking even under retried completions.
func (s *PostgresStore) Record(ctx context.Context, tx pgx.Tx, c order.Completion) error {
	e := NewEntry(c, s.feePercent)
	_, err := tx.Exec(ctx, `
		INSERT INTO earnings (
			therapist_id, order_id, gross_cents, fee_cents, net_cents, paid, created_at
		) VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		ON CONFLICT (order_id) DO NOTHING`,
		string(e.TherapistID),
		string(e.OrderID),
		int64(e.Gross),
		int64(e.PlatformFee),
		int64(e.Net),
		e.CreatedAt,
	)
	return err
}

// MarkPaid flips the paid flag for one entry. It is the only mutation the
// ledger allows after creation, reserved for the external payout process.
func (s *PostgresStore) MarkPaid(ctx context.Context, entryID int64) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE earnings SET paid = TRUE WHERE id = $1 AND paid = FALSE`, entryID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) Totals(ctx context.Context, therapistID types.ID, since time.Time) (Summary, error) {
	row := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(gross_cents), 0)::BIGINT,
		       COALESCE(SUM(fee_cents), 0)::BIGINT,
		       COALESCE(SUM(net_cents), 0)::BIGINT,
		       COALESCE(SUM(net_cents) FILTER (WHERE paid), 0)::BIGINT,
		       COALESCE(SUM(net_cents) FILTER (WHERE NOT paid), 0)::BIGINT,
		       COUNT(*)
		FROM earnings
		WHERE therapist_id = $1 AND created_at >= $2`,
		string(therapistID), since,
	)
	var sum Summary
	err := row.Scan(&sum.Gross, &sum.Fees, &sum.Net, &sum.PaidNet, &sum.UnpaidNet, &sum.Count)
	return sum, err
}

func (s *PostgresStore) Series(ctx context.Context, therapistID types.ID, since time.Time, bucket string) ([]Bucket, error) {
	rows, err := s.db.Query(ctx, `
		SELECT date_trunc($3, created_at) AS bucket, COALESCE(SUM(net_cents), 0)::BIGINT
		FROM earnings
		WHERE therapist_id = $1 AND created_at >= $2
		GROUP BY bucket
		ORDER BY bucket`,
		string(therapistID), since, bucket,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bucket
	for rows.Next() {
		var b Bucket
		if err := rows.Scan(&b.Start, &b.Net); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
