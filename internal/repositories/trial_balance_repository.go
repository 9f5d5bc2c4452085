package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"portfolio-analytics/internal/models"
)

type TrialBalanceRepository interface {
	ReplaceEntries(ctx context.Context, tx *sql.Tx, entries []models.TrialBalanceEntry) error
	ListEntries(ctx context.Context) ([]models.TrialBalanceEntry, error)
}

type trialBalanceRepository struct {
	db *sql.DB
}

func NewTrialBalanceRepository(db *sql.DB) TrialBalanceRepository {
	return &trialBalanceRepository{db: db}
}

func (r *trialBalanceRepository) ReplaceEntries(ctx context.Context, tx *sql.Tx, entries []models.TrialBalanceEntry) error {
	if err := clearTable(ctx, tx, "trial_balance_entries"); err != nil {
		return err
	}

	query := `
		INSERT INTO trial_balance_entries (
			property_id, year, month, account_id, account_name,
			debit, credit, amount, beginning_balance, ending_balance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.ExecContext(ctx,
			e.PropertyID,
			e.Year,
			e.Month,
			e.AccountID,
			e.AccountName,
			e.Debit,
			e.Credit,
			e.Amount,
			e.BeginningBalance,
			e.EndingBalance,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trial balance row %s/%d/%s/%s: %w", e.PropertyID, e.Year, e.Month, e.AccountID, err)
		}
	}
	return nil
}

func (r *trialBalanceRepository) ListEntries(ctx context.Context) ([]models.TrialBalanceEntry, error) {
	query := `
		SELECT property_id, year, month, account_id, account_name,
		       debit, credit, amount, beginning_balance, ending_balance
		FROM trial_balance_entries
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.TrialBalanceEntry
	for rows.Next() {
		var e models.TrialBalanceEntry
		err := rows.Scan(
			&e.PropertyID,
			&e.Year,
			&e.Month,
			&e.AccountID,
			&e.AccountName,
			&e.Debit,
			&e.Credit,
			&e.Amount,
			&e.BeginningBalance,
			&e.EndingBalance,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
