package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"portfolio-analytics/internal/models"
)

// PropertyRepository stores properties and their rent-roll snapshots.
type PropertyRepository interface {
	ReplaceProperties(ctx context.Context, tx *sql.Tx, properties []models.Property) error
	ReplaceRentRolls(ctx context.Context, tx *sql.Tx, monthly []models.RentRollMonthly, annual []models.RentRollAnnual) error
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetPropertyByID(ctx context.Context, propertyID string) (*models.Property, error)
	ListRentRollMonthly(ctx context.Context) ([]models.RentRollMonthly, error)
	ListRentRollAnnual(ctx context.Context) ([]models.RentRollAnnual, error)
}

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) ReplaceProperties(ctx context.Context, tx *sql.Tx, properties []models.Property) error {
	if err := clearTable(ctx, tx, "properties"); err != nil {
		return err
	}

	query := `
		INSERT INTO properties (property_id, property, address, property_type, owner)
		VALUES (?, ?, ?, ?, ?)
	`
	for _, p := range properties {
		_, err := tx.ExecContext(ctx, query,
			p.PropertyID,
			p.Name,
			p.Address,
			p.PropertyType,
			p.Owner,
		)
		if err != nil {
			return fmt.Errorf("failed to insert property %s: %w", p.PropertyID, err)
		}
	}
	return nil
}

func (r *propertyRepository) ReplaceRentRolls(ctx context.Context, tx *sql.Tx, monthly []models.RentRollMonthly, annual []models.RentRollAnnual) error {
	if err := clearTable(ctx, tx, "rentroll_monthly"); err != nil {
		return err
	}
	if err := clearTable(ctx, tx, "rentroll_annual"); err != nil {
		return err
	}

	monthlyQuery := `
		INSERT INTO rentroll_monthly (
			property, total_units, sq_footage, market_rent, tenant_rent, cam, tenant_rent_per_sqft
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, m := range monthly {
		_, err := tx.ExecContext(ctx, monthlyQuery,
			m.Property,
			m.TotalUnits,
			m.SquareFootage,
			m.MarketRent,
			m.TenantRent,
			m.CAM,
			m.TenantRentPerSqFt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert monthly rent roll for %s: %w", m.Property, err)
		}
	}

	annualQuery := `
		INSERT INTO rentroll_annual (property, market_rent, tenant_rent, cam, misc)
		VALUES (?, ?, ?, ?, ?)
	`
	for _, a := range annual {
		_, err := tx.ExecContext(ctx, annualQuery,
			a.Property,
			a.MarketRent,
			a.TenantRent,
			a.CAM,
			a.Misc,
		)
		if err != nil {
			return fmt.Errorf("failed to insert annual rent roll for %s: %w", a.Property, err)
		}
	}
	return nil
}

func (r *propertyRepository) ListProperties(ctx context.Context) ([]models.Property, error) {
	query := `SELECT property_id, property, address, property_type, owner FROM properties ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(&p.PropertyID, &p.Name, &p.Address, &p.PropertyType, &p.Owner); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) GetPropertyByID(ctx context.Context, propertyID string) (*models.Property, error) {
	query := `SELECT property_id, property, address, property_type, owner FROM properties WHERE property_id = ?`

	var p models.Property
	err := r.db.QueryRowContext(ctx, query, propertyID).Scan(&p.PropertyID, &p.Name, &p.Address, &p.PropertyType, &p.Owner)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) ListRentRollMonthly(ctx context.Context) ([]models.RentRollMonthly, error) {
	query := `
		SELECT property, total_units, sq_footage, market_rent, tenant_rent, cam, tenant_rent_per_sqft
		FROM rentroll_monthly
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.RentRollMonthly
	for rows.Next() {
		var m models.RentRollMonthly
		err := rows.Scan(
			&m.Property,
			&m.TotalUnits,
			&m.SquareFootage,
			&m.MarketRent,
			&m.TenantRent,
			&m.CAM,
			&m.TenantRentPerSqFt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *propertyRepository) ListRentRollAnnual(ctx context.Context) ([]models.RentRollAnnual, error) {
	query := `SELECT property, market_rent, tenant_rent, cam, misc FROM rentroll_annual ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.RentRollAnnual
	for rows.Next() {
		var a models.RentRollAnnual
		if err := rows.Scan(&a.Property, &a.MarketRent, &a.TenantRent, &a.CAM, &a.Misc); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
