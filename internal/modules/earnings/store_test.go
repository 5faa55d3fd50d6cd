// README: DB-backed ledger tests; skipped unless ROOMSPA_TEST_DSN is set.
package earnings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("ROOMSPA_TEST_DSN")
	if dsn == "" {
		t.Skip("ROOMSPA_TEST_DSN not set; skipping DB-backed ledger tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE earnings"); err != nil {
		t.Fatalf("truncate earnings: %v", err)
	}

	return NewStore(db, 20)
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(root, "migrations", "0001_init.sql"))
	if err != nil {
		return err
	}
	for _, stmt := range splitSQL(string(content)) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// splitSQL breaks a migration file into single statements; pgx Exec does
// not accept multiple commands in one call.
func splitSQL(content string) []string {
	var out []string
	for _, raw := range strings.Split(content, ";") {
		var lines []string
		for _, line := range strings.Split(raw, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.New("go.mod not found above working directory")
}

// record appends one completion through its own transaction, the way the
// completing order update would.
func record(t *testing.T, s *PostgresStore, c order.Completion) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.db.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.Record(ctx, tx, c); err != nil {
		_ = tx.Rollback(ctx)
		t.Fatalf("record: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestRecordIsIdempotentPerOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	c := order.Completion{
		OrderID:     "order-dup",
		TherapistID: "t1",
		Gross:       types.Money(10000),
		CompletedAt: time.Now().UTC(),
	}
	record(t, s, c)
	record(t, s, c) // replay must be a no-op

	var n int
	var fee, net int64
	row := s.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(fee_cents), 0)::BIGINT, COALESCE(SUM(net_cents), 0)::BIGINT
		 FROM earnings WHERE order_id = $1`, "order-dup")
	if err := row.Scan(&n, &fee, &net); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 entry after replay, got %d", n)
	}
	if fee != 2000 || net != 8000 {
		t.Errorf("split = fee %d / net %d, want 2000/8000", fee, net)
	}
}

func TestMarkPaidFlipsOnce(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	record(t, s, order.Completion{
		OrderID:     "order-paid",
		TherapistID: "t1",
		Gross:       types.Money(5000),
		CompletedAt: time.Now().UTC(),
	})

	var id int64
	if err := s.db.QueryRow(ctx,
		`SELECT id FROM earnings WHERE order_id = $1`, "order-paid").Scan(&id); err != nil {
		t.Fatalf("lookup entry: %v", err)
	}

	ok, err := s.MarkPaid(ctx, id)
	if err != nil || !ok {
		t.Fatalf("first MarkPaid = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = s.MarkPaid(ctx, id)
	if err != nil {
		t.Fatalf("second MarkPaid: %v", err)
	}
	if ok {
		t.Error("second MarkPaid must not report a change")
	}
}

func TestTotalsAndSeries(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i, gross := range []types.Money{10000, 5000, 2500} {
		record(t, s, order.Completion{
			OrderID:     types.ID(fmt.Sprintf("order-sum-%d", i)),
			TherapistID: "t1",
			Gross:       gross,
			CompletedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	// another therapist's entry must not leak into t1's totals
	record(t, s, order.Completion{
		OrderID:     "order-other",
		TherapistID: "t2",
		Gross:       types.Money(9900),
		CompletedAt: now,
	})

	sum, err := s.Totals(ctx, "t1", now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if sum.Count != 3 {
		t.Fatalf("count = %d, want 3", sum.Count)
	}
	if sum.Gross != 17500 {
		t.Errorf("gross = %d, want 17500", sum.Gross)
	}
	if sum.Fees+sum.Net != sum.Gross {
		t.Errorf("fees %d + net %d != gross %d", sum.Fees, sum.Net, sum.Gross)
	}
	if sum.PaidNet != 0 || sum.UnpaidNet != sum.Net {
		t.Errorf("fresh entries must all be unpaid: %+v", sum)
	}

	series, err := s.Series(ctx, "t1", now.Add(-24*time.Hour), "hour")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("expected 3 hourly buckets, got %d", len(series))
	}
	var total types.Money
	for _, b := range series {
		total += b.Net
	}
	if total != sum.Net {
		t.Errorf("series sums to %d, totals say %d", total, sum.Net)
	}
}
