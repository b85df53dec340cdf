package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ReportsRepository serves the read-heavy report queries with raw SQL; the
// former database views now live here as explicit queries whose rows feed
// the aggregation functions.
type ReportsRepository struct {
	db *sqlx.DB
}

func NewReportsRepository(db *sqlx.DB) *ReportsRepository {
	return &ReportsRepository{db}
}

// BalanceSummaryRow is one pilot's settled financial position.
type BalanceSummaryRow struct {
	PilotID    int64           `db:"pilot_id"`
	FirstName  string          `db:"first_name"`
	LastName   string          `db:"last_name"`
	ShowName   bool            `db:"show_name"`
	TotalPaid  decimal.Decimal `db:"total_paid"`
	TotalOwed  decimal.Decimal `db:"total_owed"`
	Balance    decimal.Decimal `db:"balance"`
}

const balanceSummaryQuery = `
SELECT p.id                                                            AS pilot_id,
       p.first_name,
       p.last_name,
       p.show_name,
       COALESCE(SUM(CASE WHEN l.kind = 'PAYMENT' THEN l.amount END), 0) AS total_paid,
       COALESCE(SUM(CASE WHEN l.kind = 'DEBIT' THEN l.amount END), 0)   AS total_owed,
       COALESCE(SUM(CASE WHEN l.kind = 'PAYMENT' THEN l.amount
                         ELSE -l.amount END), 0)                        AS balance
FROM pilots p
         LEFT JOIN ledger_entries l ON l.pilot_id = p.id
WHERE p.deleted_at IS NULL
GROUP BY p.id, p.first_name, p.last_name, p.show_name
ORDER BY balance ASC`

// BalanceSummaries returns each active pilot's paid/owed totals, most
// indebted first.
func (r *ReportsRepository) BalanceSummaries(ctx context.Context) ([]BalanceSummaryRow, error) {
	var rows []BalanceSummaryRow
	if err := r.db.SelectContext(ctx, &rows, balanceSummaryQuery); err != nil {
		return nil, fmt.Errorf("balance summary query: %w", err)
	}
	return rows, nil
}

// DebtorRow is one outstanding settled-flight debit.
type DebtorRow struct {
	PilotID      int64           `db:"pilot_id"`
	FirstName    string          `db:"first_name"`
	LastName     string          `db:"last_name"`
	FlightID     int64           `db:"flight_id"`
	Registration string          `db:"registration"`
	Amount       decimal.Decimal `db:"amount"`
}

const debtorsQuery = `
SELECT l.pilot_id,
       p.first_name,
       p.last_name,
       l.flight_id,
       a.registration,
       l.amount
FROM ledger_entries l
         JOIN pilots p ON p.id = l.pilot_id
         JOIN flights f ON f.id = l.flight_id
         JOIN aircraft a ON a.id = f.aircraft_id
WHERE l.kind = 'DEBIT'
  AND l.amount > 0
  AND f.deleted_at IS NULL
ORDER BY l.flight_id DESC`

// Debtors lists settlement debits with flight context for the financial
// dashboard.
func (r *ReportsRepository) Debtors(ctx context.Context) ([]DebtorRow, error) {
	var rows []DebtorRow
	if err := r.db.SelectContext(ctx, &rows, debtorsQuery); err != nil {
		return nil, fmt.Errorf("debtors query: %w", err)
	}
	return rows, nil
}
