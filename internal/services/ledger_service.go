package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"portfolio-analytics/internal/database"
	"portfolio-analytics/internal/ledger"
	"portfolio-analytics/internal/repositories"
)

// LedgerService moves the ledger datasets in and out of MySQL.
type LedgerService struct {
	db           *sql.DB
	propertyRepo repositories.PropertyRepository
	trialRepo    repositories.TrialBalanceRepository
	mappingRepo  repositories.MappingRepository
	loanRepo     repositories.LoanRepository
	log          zerolog.Logger
}

func NewLedgerService(
	db *sql.DB,
	propertyRepo repositories.PropertyRepository,
	trialRepo repositories.TrialBalanceRepository,
	mappingRepo repositories.MappingRepository,
	loanRepo repositories.LoanRepository,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		db:           db,
		propertyRepo: propertyRepo,
		trialRepo:    trialRepo,
		mappingRepo:  mappingRepo,
		loanRepo:     loanRepo,
		log:          log,
	}
}

type ImportResult struct {
	BatchID      string         `json:"batch_id"`
	RecordsCount int            `json:"records_count"`
	Details      map[string]int `json:"details"`
}

// Import replaces every ledger table with the contents of store in a
// single transaction. Nothing is written unless all tables succeed.
func (s *LedgerService) Import(ctx context.Context, store *ledger.Store) (*ImportResult, error) {
	batchID := uuid.NewString()

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.propertyRepo.ReplaceProperties(ctx, tx, store.Properties); err != nil {
			return err
		}
		if err := s.trialRepo.ReplaceEntries(ctx, tx, store.TrialBalance); err != nil {
			return err
		}
		if err := s.mappingRepo.ReplaceMappings(ctx, tx, store.Mapping); err != nil {
			return err
		}
		if err := s.loanRepo.ReplaceSchedule(ctx, tx, store.LoanSchedule); err != nil {
			return err
		}
		if err := s.loanRepo.ReplaceLoanInfo(ctx, tx, store.LoanInfo); err != nil {
			return err
		}
		return s.propertyRepo.ReplaceRentRolls(ctx, tx, store.RentRollMonthly, store.RentRollAnnual)
	})
	if err != nil {
		return nil, fmt.Errorf("import %s failed: %w", batchID, err)
	}

	result := &ImportResult{BatchID: batchID, Details: store.Counts()}
	for _, n := range result.Details {
		result.RecordsCount += n
	}

	s.log.Info().
		Str("batch_id", batchID).
		Int("records", result.RecordsCount).
		Msg("Ledger import completed")

	return result, nil
}

// LoadStore reads every ledger table into a store.
func (s *LedgerService) LoadStore(ctx context.Context) (*ledger.Store, error) {
	store := &ledger.Store{}
	var err error

	if store.Properties, err = s.propertyRepo.ListProperties(ctx); err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	if store.TrialBalance, err = s.trialRepo.ListEntries(ctx); err != nil {
		return nil, fmt.Errorf("failed to load trial balance: %w", err)
	}
	if store.Mapping, err = s.mappingRepo.ListMappings(ctx); err != nil {
		return nil, fmt.Errorf("failed to load account mapping: %w", err)
	}
	if store.LoanSchedule, err = s.loanRepo.ListSchedule(ctx); err != nil {
		return nil, fmt.Errorf("failed to load loan schedule: %w", err)
	}
	if store.LoanInfo, err = s.loanRepo.ListLoanInfo(ctx); err != nil {
		return nil, fmt.Errorf("failed to load loan information: %w", err)
	}
	if store.RentRollMonthly, err = s.propertyRepo.ListRentRollMonthly(ctx); err != nil {
		return nil, fmt.Errorf("failed to load monthly rent roll: %w", err)
	}
	if store.RentRollAnnual, err = s.propertyRepo.ListRentRollAnnual(ctx); err != nil {
		return nil, fmt.Errorf("failed to load annual rent roll: %w", err)
	}

	for dataset, rows := range store.Counts() {
		s.log.Info().Str("dataset", dataset).Int("rows", rows).Msg("Dataset loaded")
	}
	return store, nil
}
