// Package derive computes the projected Profit & Loss statements, balance
// sheets and MPBF ratios from a project's daily logs. Every function is pure:
// identical inputs always produce identical outputs, and no numeric edge case
// raises an error (indeterminate divisions yield the models.Ratio NaN
// sentinel).
package derive

import (
	"math"
	"time"

	"github.com/anupkhare/finreport/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Projection heuristics. The asset-side percentages and the placeholder
// constants reproduce the established report formulas; changing them changes
// every generated statement.
const (
	openingStockRate   = 0.10 // of the year's purchases
	closingStockRate   = 0.15 // of the year's purchases
	tradeDebtorsRate   = 0.20 // of the year's sales
	cashAndBankRate    = 0.30 // of the year's net cash flow
	tradeCreditorsRate = 0.25 // of the year's purchases
	stockDPRate        = 0.75 // drawing power against stock
	debtorsDPRate      = 0.60 // drawing power against debtors

	fixedAssets    = 1_000_000
	openingCapital = 2_000_000
	loans          = 500_000
)

// yearTotals sums the log columns over entries dated within the calendar
// year. Entries whose date does not parse are skipped.
func yearTotals(year int, logs []models.DailyLogEntry) (purchases, sales, directExpenses float64) {
	for _, entry := range logs {
		str := entry.Date
		if len(str) > len(dateLayout) {
			str = str[:len(dateLayout)]
		}
		date, err := time.Parse(dateLayout, str)
		if err != nil || date.Year() != year {
			continue
		}
		purchases += entry.PurchaseValue
		sales += entry.SalesValue
		directExpenses += entry.DirectExpenses
	}
	return purchases, sales, directExpenses
}

// ProfitLoss derives the P&L statement for one financial year.
//
// Indirect expenses are the sum of the auditFees, bankCharges and salary hike
// fields, carried over verbatim from the established formula even though those
// fields are percentages (depreciation and miscIncome are ignored by it).
func ProfitLoss(year int, logs []models.DailyLogEntry, hike models.HikeConfig) models.PLEntry {
	purchases, sales, directExpenses := yearTotals(year, logs)

	indirectExpenses := hike.AuditFees + hike.BankCharges + hike.Salary
	openingStock := openingStockRate * purchases

	grossProfit := sales - (openingStock + purchases + directExpenses)
	netProfit := grossProfit - indirectExpenses

	return models.PLEntry{
		FinancialYear:         year,
		OpeningStock:          openingStock,
		Purchases:             purchases,
		Sales:                 sales,
		DirectExpenses:        directExpenses,
		IndirectExpenses:      indirectExpenses,
		GrossProfit:           grossProfit,
		NetProfit:             netProfit,
		GrossProfitPercentage: percentOf(grossProfit, sales),
		NetProfitPercentage:   percentOf(netProfit, sales),
	}
}

// BalanceSheet derives the balance sheet for one financial year, given the
// net profit from the same year's P&L. The asset and liability totals are
// computed independently and are not reconciled against each other;
// Metrics.CapitalDifference carries the gap.
func BalanceSheet(year int, logs []models.DailyLogEntry, netProfit float64) models.BalanceSheetEntry {
	purchases, sales, directExpenses := yearTotals(year, logs)

	closingStock := closingStockRate * purchases
	tradeDebtors := tradeDebtorsRate * sales
	cashAndBank := cashAndBankRate * (sales - purchases - directExpenses)
	tradeCreditors := tradeCreditorsRate * purchases

	totalCurrentAssets := closingStock + tradeDebtors + cashAndBank
	totalAssets := fixedAssets + totalCurrentAssets

	totalCapital := openingCapital + netProfit
	totalCurrentLiabilities := loans + tradeCreditors
	totalLiabilities := totalCapital + totalCurrentLiabilities

	return models.BalanceSheetEntry{
		FinancialYear: year,
		Assets: models.Assets{
			FixedAssets: fixedAssets,
			CurrentAssets: models.CurrentAssets{
				ClosingStock: closingStock,
				TradeDebtors: tradeDebtors,
				CashAndBank:  cashAndBank,
			},
			TotalAssets: totalAssets,
		},
		Liabilities: models.Liabilities{
			Capital: models.Capital{
				OpeningCapital:    openingCapital,
				CurrentYearProfit: netProfit,
				TotalCapital:      totalCapital,
			},
			CurrentLiabilities: models.CurrentLiabilities{
				Loans:          loans,
				TradeCreditors: tradeCreditors,
			},
			TotalLiabilities: totalLiabilities,
		},
		Metrics: models.BalanceSheetMetrics{
			CurrentRatio:      ratioOf(totalCurrentAssets, totalCurrentLiabilities),
			DrawingPower:      stockDPRate*closingStock + debtorsDPRate*tradeDebtors,
			CapitalDifference: totalCapital - (totalAssets - totalCurrentLiabilities),
		},
	}
}

// Year derives both statements for one financial year. The balance sheet
// uses the same year's net profit; no closing stock is carried forward into
// the next year's opening stock.
func Year(year int, logs []models.DailyLogEntry, hike models.HikeConfig) (models.PLEntry, models.BalanceSheetEntry) {
	pl := ProfitLoss(year, logs, hike)
	bs := BalanceSheet(year, logs, pl.NetProfit)
	return pl, bs
}

// Range derives one statement pair per financial year of the project,
// inclusive of both bounds.
func Range(project models.Project, logs []models.DailyLogEntry, hike models.HikeConfig) ([]models.PLEntry, []models.BalanceSheetEntry) {
	var pls []models.PLEntry
	var sheets []models.BalanceSheetEntry
	for year := project.FinancialYearStart; year <= project.FinancialYearEnd; year++ {
		pl, bs := Year(year, logs, hike)
		pls = append(pls, pl)
		sheets = append(sheets, bs)
	}
	return pls, sheets
}

// MPBF computes the bank-credit drawing power assessment from a derived
// balance sheet.
func MPBF(sheet models.BalanceSheetEntry) models.MPBFRatios {
	currentAssets := sheet.Assets.CurrentAssets.ClosingStock +
		sheet.Assets.CurrentAssets.TradeDebtors +
		sheet.Assets.CurrentAssets.CashAndBank
	currentLiabilities := sheet.Liabilities.CurrentLiabilities.Loans +
		sheet.Liabilities.CurrentLiabilities.TradeCreditors

	stockDP := stockDPRate * sheet.Assets.CurrentAssets.ClosingStock
	debtorsDP := debtorsDPRate * sheet.Assets.CurrentAssets.TradeDebtors
	totalDP := stockDP + debtorsDP

	status := models.DPStatusInsufficient
	if totalDP >= currentLiabilities {
		status = models.DPStatusSufficient
	}

	return models.MPBFRatios{
		FinancialYear:      sheet.FinancialYear,
		CurrentAssets:      currentAssets,
		CurrentLiabilities: currentLiabilities,
		CurrentRatio:       ratioOf(currentAssets, currentLiabilities),
		StockDP:            stockDP,
		DebtorsDP:          debtorsDP,
		TotalDP:            totalDP,
		DPStatus:           status,
		DPSurplusDeficit:   totalDP - currentLiabilities,
	}
}

func percentOf(part, whole float64) models.Ratio {
	if whole == 0 {
		return models.Ratio(math.NaN())
	}
	return models.Ratio(100 * part / whole)
}

func ratioOf(numerator, denominator float64) models.Ratio {
	if denominator == 0 {
		return models.Ratio(math.NaN())
	}
	return models.Ratio(numerator / denominator)
}
