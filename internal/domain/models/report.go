package models

import (
	"fmt"
	"math"
	"strconv"
)

// Ratio is a percentage or ratio that may be arithmetically indeterminate
// (division by zero, e.g. profit percentages in a year with no sales).
// Indeterminate values are carried as NaN, marshal to JSON null and format
// as "N/A" so they never crash a renderer.
type Ratio float64

// Indeterminate reports whether the ratio could not be computed.
func (r Ratio) Indeterminate() bool {
	return math.IsNaN(float64(r))
}

func (r Ratio) String() string {
	if r.Indeterminate() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", float64(r))
}

// MarshalJSON renders indeterminate ratios as null; encoding/json rejects
// raw NaN values.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.Indeterminate() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(r), 'f', -1, 64), nil
}

// UnmarshalJSON accepts null as the indeterminate sentinel.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*r = Ratio(v)
	return nil
}

// PLEntry is the derived Profit & Loss statement for one financial year.
// Never persisted; recomputed from the daily logs on every request.
type PLEntry struct {
	FinancialYear         int     `json:"financialYear"`
	OpeningStock          float64 `json:"openingStock"`
	Purchases             float64 `json:"purchases"`
	Sales                 float64 `json:"sales"`
	DirectExpenses        float64 `json:"directExpenses"`
	IndirectExpenses      float64 `json:"indirectExpenses"`
	GrossProfit           float64 `json:"grossProfit"`
	NetProfit             float64 `json:"netProfit"`
	GrossProfitPercentage Ratio   `json:"grossProfitPercentage"`
	NetProfitPercentage   Ratio   `json:"netProfitPercentage"`
}

// CurrentAssets groups the liquid asset lines of a balance sheet.
type CurrentAssets struct {
	ClosingStock float64 `json:"closingStock"`
	TradeDebtors float64 `json:"tradeDebtors"`
	CashAndBank  float64 `json:"cashAndBank"`
}

// Assets is the asset side of a balance sheet.
type Assets struct {
	FixedAssets   float64       `json:"fixedAssets"`
	CurrentAssets CurrentAssets `json:"currentAssets"`
	TotalAssets   float64       `json:"totalAssets"`
}

// Capital groups the capital account lines.
type Capital struct {
	OpeningCapital    float64 `json:"openingCapital"`
	CurrentYearProfit float64 `json:"currentYearProfit"`
	TotalCapital      float64 `json:"totalCapital"`
}

// CurrentLiabilities groups the short-term liability lines.
type CurrentLiabilities struct {
	Loans          float64 `json:"loans"`
	TradeCreditors float64 `json:"tradeCreditors"`
}

// Liabilities is the liability side of a balance sheet.
type Liabilities struct {
	Capital            Capital            `json:"capital"`
	CurrentLiabilities CurrentLiabilities `json:"currentLiabilities"`
	TotalLiabilities   float64            `json:"totalLiabilities"`
}

// BalanceSheetMetrics are the headline ratios attached to a balance sheet.
// The two sides of the sheet are computed independently and are not forced
// to reconcile; CapitalDifference exposes the gap.
type BalanceSheetMetrics struct {
	CurrentRatio      Ratio   `json:"currentRatio"`
	DrawingPower      float64 `json:"drawingPower"`
	CapitalDifference float64 `json:"capitalDifference"`
}

// BalanceSheetEntry is the derived balance sheet for one financial year.
type BalanceSheetEntry struct {
	FinancialYear int                 `json:"financialYear"`
	Assets        Assets              `json:"assets"`
	Liabilities   Liabilities         `json:"liabilities"`
	Metrics       BalanceSheetMetrics `json:"metrics"`
}

// MPBF drawing-power status values.
const (
	DPStatusSufficient   = "Sufficient"
	DPStatusInsufficient = "Insufficient"
)

// MPBFRatios is the bank-credit (Maximum Permissible Bank Finance)
// assessment derived from a year's balance sheet. Display-only.
type MPBFRatios struct {
	FinancialYear      int     `json:"financialYear"`
	CurrentAssets      float64 `json:"currentAssets"`
	CurrentLiabilities float64 `json:"currentLiabilities"`
	CurrentRatio       Ratio   `json:"currentRatio"`
	StockDP            float64 `json:"stockDP"`
	DebtorsDP          float64 `json:"debtorsDP"`
	TotalDP            float64 `json:"totalDP"`
	DPStatus           string  `json:"dpStatus"`
	DPSurplusDeficit   float64 `json:"dpSurplusDeficit"`
}
