package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"portfolio-analytics/internal/models"
)

type MappingRepository interface {
	ReplaceMappings(ctx context.Context, tx *sql.Tx, mappings []models.AccountMapping) error
	ListMappings(ctx context.Context) ([]models.AccountMapping, error)
}

type mappingRepository struct {
	db *sql.DB
}

func NewMappingRepository(db *sql.DB) MappingRepository {
	return &mappingRepository{db: db}
}

const mappingColumns = `account_ref, account_label, account_id_from, account_id_to,
		       normal_balance, financial_statement, cashflow_order, calculation_formula`

func (r *mappingRepository) ReplaceMappings(ctx context.Context, tx *sql.Tx, mappings []models.AccountMapping) error {
	if err := clearTable(ctx, tx, "account_mappings"); err != nil {
		return err
	}

	query := `
		INSERT INTO account_mappings (
			account_ref, account_label, account_id_from, account_id_to,
			normal_balance, financial_statement, cashflow_order, calculation_formula
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, m := range mappings {
		_, err := tx.ExecContext(ctx, query,
			m.AccountRef,
			m.AccountLabel,
			m.AccountIDFrom,
			m.AccountIDTo,
			m.NormalBalance,
			m.FinancialStatement,
			m.CashflowOrder,
			m.CalculationFormula,
		)
		if err != nil {
			return fmt.Errorf("failed to insert mapping %s: %w", m.AccountRef, err)
		}
	}
	return nil
}

func scanMapping(scan func(dest ...any) error) (models.AccountMapping, error) {
	var m models.AccountMapping
	err := scan(
		&m.AccountRef,
		&m.AccountLabel,
		&m.AccountIDFrom,
		&m.AccountIDTo,
		&m.NormalBalance,
		&m.FinancialStatement,
		&m.CashflowOrder,
		&m.CalculationFormula,
	)
	return m, err
}

func (r *mappingRepository) ListMappings(ctx context.Context) ([]models.AccountMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM account_mappings ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []models.AccountMapping
	for rows.Next() {
		m, err := scanMapping(rows.Scan)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return mappings, nil
}
