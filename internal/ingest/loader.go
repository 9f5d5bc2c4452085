package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"portfolio-analytics/internal/ledger"
)

type Loader struct {
	source Source
	log    zerolog.Logger
}

func NewLoader(source Source, log zerolog.Logger) *Loader {
	return &Loader{source: source, log: log}
}

// Load fetches and parses every dataset concurrently. The store is returned
// only when all of them succeed.
func (l *Loader) Load(ctx context.Context) (*ledger.Store, error) {
	tables := make([][]Record, len(Datasets))

	g, ctx := errgroup.WithContext(ctx)
	for i, ds := range Datasets {
		g.Go(func() error {
			records, err := l.loadDataset(ctx, ds)
			if err != nil {
				return err
			}
			tables[i] = records
			l.log.Info().
				Str("dataset", ds.Key).
				Int("rows", len(records)).
				Msg("Dataset loaded")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}

	byKey := make(map[string][]Record, len(Datasets))
	for i, ds := range Datasets {
		byKey[ds.Key] = tables[i]
	}

	return &ledger.Store{
		Properties:      decodeProperties(byKey[PropertiesDataset.Key]),
		LoanSchedule:    decodeLoanSchedule(byKey[LoanScheduleDataset.Key]),
		LoanInfo:        decodeLoanInfo(byKey[LoanInfoDataset.Key]),
		TrialBalance:    decodeTrialBalance(byKey[TrialBalanceDataset.Key]),
		Mapping:         decodeMapping(byKey[MappingDataset.Key]),
		RentRollMonthly: decodeRentRollMonthly(byKey[RentRollMonthlyDataset.Key]),
		RentRollAnnual:  decodeRentRollAnnual(byKey[RentRollAnnualDataset.Key]),
	}, nil
}

func (l *Loader) loadDataset(ctx context.Context, ds Dataset) ([]Record, error) {
	rc, err := l.source.Open(ctx, ds.File)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ReadTable(rc, ds)
}
