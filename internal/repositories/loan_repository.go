package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"portfolio-analytics/internal/models"
)

type LoanRepository interface {
	ReplaceSchedule(ctx context.Context, tx *sql.Tx, rows []models.LoanScheduleRow) error
	ReplaceLoanInfo(ctx context.Context, tx *sql.Tx, loans []models.LoanInfo) error
	ListSchedule(ctx context.Context) ([]models.LoanScheduleRow, error)
	ListLoanInfo(ctx context.Context) ([]models.LoanInfo, error)
	GetLoanInfoByPropertyID(ctx context.Context, propertyID string) (*models.LoanInfo, error)
}

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) ReplaceSchedule(ctx context.Context, tx *sql.Tx, rows []models.LoanScheduleRow) error {
	if err := clearTable(ctx, tx, "loan_schedule_rows"); err != nil {
		return err
	}

	query := `
		INSERT INTO loan_schedule_rows (
			property, year, month, payment_date, payment_number, beginning_balance,
			scheduled_payment, total_payment, principal, interest, ending_balance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx,
			row.Property,
			row.Year,
			row.Month,
			row.PaymentDate,
			row.PaymentNumber,
			row.BeginningBalance,
			row.ScheduledPayment,
			row.TotalPayment,
			row.Principal,
			row.Interest,
			row.EndingBalance,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment %d for %s: %w", row.PaymentNumber, row.Property, err)
		}
	}
	return nil
}

func (r *loanRepository) ReplaceLoanInfo(ctx context.Context, tx *sql.Tx, loans []models.LoanInfo) error {
	if err := clearTable(ctx, tx, "loan_information"); err != nil {
		return err
	}

	query := `
		INSERT INTO loan_information (
			property_id, banker_name, loan_number, rate,
			maturity_date, address, loan_amount, term
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, l := range loans {
		_, err := tx.ExecContext(ctx, query,
			l.PropertyID,
			l.BankerName,
			l.LoanNumber,
			l.Rate,
			l.MaturityDate,
			l.Address,
			l.LoanAmount,
			l.Term,
		)
		if err != nil {
			return fmt.Errorf("failed to insert loan %s: %w", l.LoanNumber, err)
		}
	}
	return nil
}

func (r *loanRepository) ListSchedule(ctx context.Context) ([]models.LoanScheduleRow, error) {
	query := `
		SELECT property, year, month, payment_date, payment_number, beginning_balance,
		       scheduled_payment, total_payment, principal, interest, ending_balance
		FROM loan_schedule_rows
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedule []models.LoanScheduleRow
	for rows.Next() {
		var row models.LoanScheduleRow
		err := rows.Scan(
			&row.Property,
			&row.Year,
			&row.Month,
			&row.PaymentDate,
			&row.PaymentNumber,
			&row.BeginningBalance,
			&row.ScheduledPayment,
			&row.TotalPayment,
			&row.Principal,
			&row.Interest,
			&row.EndingBalance,
		)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return schedule, nil
}

const loanInfoColumns = `property_id, banker_name, loan_number, rate,
		       maturity_date, address, loan_amount, term`

func scanLoanInfo(scan func(dest ...any) error) (models.LoanInfo, error) {
	var l models.LoanInfo
	err := scan(
		&l.PropertyID,
		&l.BankerName,
		&l.LoanNumber,
		&l.Rate,
		&l.MaturityDate,
		&l.Address,
		&l.LoanAmount,
		&l.Term,
	)
	return l, err
}

func (r *loanRepository) ListLoanInfo(ctx context.Context) ([]models.LoanInfo, error) {
	query := `SELECT ` + loanInfoColumns + ` FROM loan_information ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []models.LoanInfo
	for rows.Next() {
		l, err := scanLoanInfo(rows.Scan)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) GetLoanInfoByPropertyID(ctx context.Context, propertyID string) (*models.LoanInfo, error) {
	query := `SELECT ` + loanInfoColumns + ` FROM loan_information WHERE property_id = ? ORDER BY id LIMIT 1`
	l, err := scanLoanInfo(r.db.QueryRowContext(ctx, query, propertyID).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
