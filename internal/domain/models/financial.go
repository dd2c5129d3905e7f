package models

// DailyLogEntry is one day of purchase/sales/expense figures for a project.
// Dates are kept as the verbatim string the user entered ("2006-01-02");
// entries whose date does not parse are skipped by the derivation engine.
type DailyLogEntry struct {
	Date           string  `json:"date" bson:"date"`
	PurchaseValue  float64 `json:"purchaseValue" bson:"purchase_value"`
	SalesValue     float64 `json:"salesValue" bson:"sales_value"`
	DirectExpenses float64 `json:"directExpenses" bson:"direct_expenses"`
}

// HikeConfig holds the annual hike percentages for a project. The record is
// replaced wholesale on edit.
type HikeConfig struct {
	AuditFees    float64 `json:"auditFees" bson:"audit_fees"`
	BankCharges  float64 `json:"bankCharges" bson:"bank_charges"`
	Depreciation float64 `json:"depreciation" bson:"depreciation"`
	Salary       float64 `json:"salary" bson:"salary"`
	MiscIncome   float64 `json:"miscIncome" bson:"misc_income"`
}

// DefaultHikeConfig is the configuration assumed for a project that has not
// saved one yet.
func DefaultHikeConfig() HikeConfig {
	return HikeConfig{
		AuditFees:    5,
		BankCharges:  5,
		Depreciation: 10,
		Salary:       10,
		MiscIncome:   5,
	}
}

// ProjectFinancialData is the persisted financial record of one project:
// its ordered daily logs plus the hike configuration. HikeConfig is nil
// until the user saves one, at which point it replaces the defaults.
type ProjectFinancialData struct {
	ProjectID  string          `json:"projectId" bson:"_id"`
	DailyLogs  []DailyLogEntry `json:"dailyLogs" bson:"daily_logs"`
	HikeConfig *HikeConfig     `json:"hikeConfig,omitempty" bson:"hike_config,omitempty"`
}
