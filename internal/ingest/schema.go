package ingest

// SchemaVersion identifies the field mapping below. Bump it whenever a
// required header changes.
const SchemaVersion = 2

// Dataset describes one CSV file and the normalized headers it must carry.
type Dataset struct {
	Key      string
	File     string
	Required []string
	// Aliases maps an alternative header onto its canonical name.
	Aliases map[string]string
}

var (
	PropertiesDataset = Dataset{
		Key:      "properties",
		File:     "Properties.csv",
		Required: []string{"property_id", "property"},
		Aliases:  map[string]string{"properties": "property"},
	}
	LoanScheduleDataset = Dataset{
		Key:  "loans",
		File: "Loans.csv",
		Required: []string{
			"property", "year", "month", "principal", "interest", "total_payment",
		},
		Aliases: map[string]string{"properties": "property"},
	}
	LoanInfoDataset = Dataset{
		Key:      "loan_info",
		File:     "Loan_Information.csv",
		Required: []string{"property_id", "rate", "loan_amount", "term"},
		Aliases:  map[string]string{"banker_name": "banker", "lender": "banker"},
	}
	TrialBalanceDataset = Dataset{
		Key:  "trial_balance",
		File: "Trial_Balance.csv",
		Required: []string{
			"property_id", "year", "month", "account_id", "accounts", "debit", "credit",
		},
		Aliases: map[string]string{"account_name": "accounts", "account": "accounts"},
	}
	MappingDataset = Dataset{
		Key:  "mapping",
		File: "Mapping_FSaccounts.csv",
		Required: []string{
			"account_ref", "account", "account_id_from", "account_id_to", "normal_balance", "fs",
		},
		Aliases: map[string]string{"financial_statement": "fs", "cashflow_order": "order_cf"},
	}
	RentRollMonthlyDataset = Dataset{
		Key:      "rentroll_monthly",
		File:     "RentRoll_Monthly.csv",
		Required: []string{"property", "market_rent", "tenant_rent"},
		Aliases:  map[string]string{"properties": "property"},
	}
	RentRollAnnualDataset = Dataset{
		Key:      "rentroll_annual",
		File:     "RentRoll_Annual.csv",
		Required: []string{"property", "market_rent", "tenant_rent"},
		Aliases:  map[string]string{"properties": "property"},
	}
)

// Datasets lists every file the dashboard needs.
var Datasets = []Dataset{
	PropertiesDataset,
	LoanScheduleDataset,
	LoanInfoDataset,
	TrialBalanceDataset,
	MappingDataset,
	RentRollMonthlyDataset,
	RentRollAnnualDataset,
}
