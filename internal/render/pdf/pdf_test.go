package pdf

import (
	"bytes"
	"math"
	"testing"

	"github.com/anupkhare/finreport/internal/domain/models"
)

func testProject() models.Project {
	return models.Project{
		ID:                 "p1",
		PANNumber:          "ABCDE1234F",
		CompanyName:        "Sharma Traders",
		Address:            "14 MG Road, Pune",
		FinancialYearStart: 2025,
		FinancialYearEnd:   2028,
	}
}

func testPL() models.PLEntry {
	return models.PLEntry{
		FinancialYear:         2025,
		OpeningStock:          10000,
		Purchases:             100000,
		Sales:                 150000,
		DirectExpenses:        5000,
		IndirectExpenses:      20,
		GrossProfit:           35000,
		NetProfit:             34980,
		GrossProfitPercentage: models.Ratio(23.33),
		NetProfitPercentage:   models.Ratio(23.32),
	}
}

func testSheet() models.BalanceSheetEntry {
	return models.BalanceSheetEntry{
		FinancialYear: 2025,
		Assets: models.Assets{
			FixedAssets: 1000000,
			CurrentAssets: models.CurrentAssets{
				ClosingStock: 15000,
				TradeDebtors: 30000,
				CashAndBank:  13500,
			},
			TotalAssets: 1058500,
		},
		Liabilities: models.Liabilities{
			Capital: models.Capital{
				OpeningCapital:    2000000,
				CurrentYearProfit: 34980,
				TotalCapital:      2034980,
			},
			CurrentLiabilities: models.CurrentLiabilities{
				Loans:          500000,
				TradeCreditors: 25000,
			},
			TotalLiabilities: 2559980,
		},
		Metrics: models.BalanceSheetMetrics{
			CurrentRatio: models.Ratio(0.1114),
			DrawingPower: 29250,
		},
	}
}

func TestRenderProfitLoss(t *testing.T) {
	document, err := RenderProfitLoss(testProject(), testPL(), Options{})
	if err != nil {
		t.Fatalf("RenderProfitLoss: %v", err)
	}
	if !bytes.HasPrefix(document, []byte("%PDF")) {
		t.Errorf("output is not a PDF document")
	}
}

func TestRenderProfitLossIndeterminateRatios(t *testing.T) {
	entry := models.PLEntry{
		FinancialYear:         2026,
		GrossProfitPercentage: models.Ratio(math.NaN()),
		NetProfitPercentage:   models.Ratio(math.NaN()),
	}
	document, err := RenderProfitLoss(testProject(), entry, Options{})
	if err != nil {
		t.Fatalf("RenderProfitLoss with indeterminate ratios: %v", err)
	}
	if len(document) == 0 {
		t.Error("empty document")
	}
}

func TestRenderBalanceSheet(t *testing.T) {
	document, err := RenderBalanceSheet(testProject(), testSheet(), Options{
		IncludeSignature: true,
		Footnotes:        []string{"Figures projected from daily logs.", "Stock valued at cost."},
	})
	if err != nil {
		t.Fatalf("RenderBalanceSheet: %v", err)
	}
	if !bytes.HasPrefix(document, []byte("%PDF")) {
		t.Errorf("output is not a PDF document")
	}
}

func TestRenderSkipsUndecodableLogo(t *testing.T) {
	project := testProject()
	project.Logo = "data:image/png;base64,@@not-base64@@"

	if _, err := RenderProfitLoss(project, testPL(), Options{}); err != nil {
		t.Fatalf("RenderProfitLoss with bad logo: %v", err)
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Rs. 0"},
		{999, "Rs. 999"},
		{1000, "Rs. 1,000"},
		{34980, "Rs. 34,980"},
		{100000, "Rs. 1,00,000"},
		{1234567, "Rs. 12,34,567"},
		{12345678, "Rs. 1,23,45,678"},
		{-5000, "-Rs. 5,000"},
		{1500.6, "Rs. 1,501"},
	}
	for _, tt := range tests {
		if got := formatINR(tt.amount); got != tt.want {
			t.Errorf("formatINR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestCapitalPosition(t *testing.T) {
	if got := capitalPosition(-25000); got != "Rs. 25,000 (Shortfall)" {
		t.Errorf("capitalPosition(-25000) = %q", got)
	}
	if got := capitalPosition(34980); got != "Rs. 34,980 (Excess)" {
		t.Errorf("capitalPosition(34980) = %q", got)
	}
}
