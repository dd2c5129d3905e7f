// Package pdf renders derived financial statements as paginated PDF
// documents. It operates purely on already-derived entries; nothing here
// touches storage.
package pdf

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/anupkhare/finreport/internal/domain/models"
)

// Options controls the optional parts of a rendered report.
type Options struct {
	IncludeSignature bool
	Footnotes        []string
}

// RenderProfitLoss renders one financial year's P&L statement.
func RenderProfitLoss(project models.Project, entry models.PLEntry, opts Options) ([]byte, error) {
	m := newDocument()
	addHeader(m, project, "Profit & Loss Statement", entry.FinancialYear)

	addLineItems(m, [][2]string{
		{"Opening Stock", formatINR(entry.OpeningStock)},
		{"Purchases", formatINR(entry.Purchases)},
		{"Direct Expenses", formatINR(entry.DirectExpenses)},
		{"Sales", formatINR(entry.Sales)},
		{"Gross Profit", formatINR(entry.GrossProfit)},
		{"Indirect Expenses", formatINR(entry.IndirectExpenses)},
		{"Net Profit", formatINR(entry.NetProfit)},
	})

	m.AddRow(4)
	addLineItems(m, [][2]string{
		{"Gross Profit %", percent(entry.GrossProfitPercentage)},
		{"Net Profit %", percent(entry.NetProfitPercentage)},
	})

	finishDocument(m, opts)
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render profit & loss pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderBalanceSheet renders one financial year's balance sheet.
func RenderBalanceSheet(project models.Project, sheet models.BalanceSheetEntry, opts Options) ([]byte, error) {
	m := newDocument()
	addHeader(m, project, "Balance Sheet", sheet.FinancialYear)

	addSectionTitle(m, "Assets")
	addLineItems(m, [][2]string{
		{"Fixed Assets", formatINR(sheet.Assets.FixedAssets)},
		{"Closing Stock", formatINR(sheet.Assets.CurrentAssets.ClosingStock)},
		{"Trade Debtors", formatINR(sheet.Assets.CurrentAssets.TradeDebtors)},
		{"Cash and Bank", formatINR(sheet.Assets.CurrentAssets.CashAndBank)},
		{"Total Assets", formatINR(sheet.Assets.TotalAssets)},
	})

	addSectionTitle(m, "Liabilities")
	addLineItems(m, [][2]string{
		{"Opening Capital", formatINR(sheet.Liabilities.Capital.OpeningCapital)},
		{"Current Year Profit", formatINR(sheet.Liabilities.Capital.CurrentYearProfit)},
		{"Total Capital", formatINR(sheet.Liabilities.Capital.TotalCapital)},
		{"Loans", formatINR(sheet.Liabilities.CurrentLiabilities.Loans)},
		{"Trade Creditors", formatINR(sheet.Liabilities.CurrentLiabilities.TradeCreditors)},
		{"Total Liabilities", formatINR(sheet.Liabilities.TotalLiabilities)},
	})

	addSectionTitle(m, "Financial Metrics")
	addLineItems(m, [][2]string{
		{"Current Ratio", sheet.Metrics.CurrentRatio.String()},
		{"Drawing Power", formatINR(sheet.Metrics.DrawingPower)},
		{"Capital Position", capitalPosition(sheet.Metrics.CapitalDifference)},
	})

	finishDocument(m, opts)
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render balance sheet pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithBottomMargin(10).
		Build()

	return maroto.New(cfg)
}

func addHeader(m core.Maroto, project models.Project, title string, year int) {
	if logo, ext, ok := decodeLogo(project.Logo); ok {
		m.AddRow(28,
			col.New(12).Add(
				image.NewFromBytes(logo, ext, props.Rect{
					Center:  true,
					Percent: 90,
				}),
			),
		)
		m.AddRow(2)
	}

	m.AddRow(10,
		text.NewCol(12, project.CompanyName,
			props.Text{
				Size:  18,
				Style: fontstyle.Bold,
				Align: align.Center,
			}),
	)
	m.AddRow(8,
		text.NewCol(12, title,
			props.Text{
				Size:  14,
				Align: align.Center,
			}),
	)
	m.AddRow(6,
		text.NewCol(12, fmt.Sprintf("Financial Year: %d-%d", year, year+1),
			props.Text{
				Size:  10,
				Align: align.Center,
			}),
	)
	m.AddRow(6,
		text.NewCol(12, "Report Date: "+time.Now().Format("02 Jan 2006"),
			props.Text{
				Size:  10,
				Align: align.Center,
			}),
	)

	m.AddRow(5, line.NewCol(12))
	m.AddRow(3)
}

func addSectionTitle(m core.Maroto, title string) {
	m.AddRow(9,
		text.NewCol(12, title,
			props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Top:   2,
			}),
	)
}

func addLineItems(m core.Maroto, items [][2]string) {
	for _, item := range items {
		m.AddRow(7,
			col.New(7).Add(
				text.New(item[0], props.Text{Size: 10}),
			),
			col.New(5).Add(
				text.New(item[1], props.Text{Size: 10, Align: align.Right}),
			),
		)
	}
}

func finishDocument(m core.Maroto, opts Options) {
	if len(opts.Footnotes) > 0 {
		m.AddRow(6)
		m.AddRow(6,
			text.NewCol(12, "Footnotes:", props.Text{Size: 9, Style: fontstyle.Bold}),
		)
		for i, note := range opts.Footnotes {
			m.AddRow(5,
				text.NewCol(12, fmt.Sprintf("%d. %s", i+1, note), props.Text{Size: 8}),
			)
		}
	}

	if opts.IncludeSignature {
		m.AddRow(14)
		m.AddRow(6,
			text.NewCol(12, "Authorized Signatory:", props.Text{Size: 9}),
		)
		m.AddRow(8,
			col.New(5).Add(line.New(props.Line{OffsetPercent: 90})),
			col.New(7),
		)
	}
}

// decodeLogo turns the stored base64 logo (optionally a data URL) into raw
// bytes plus its image extension. Undecodable logos are skipped rather than
// failing the report.
func decodeLogo(logo string) ([]byte, extension.Type, bool) {
	if logo == "" {
		return nil, extension.Png, false
	}

	ext := extension.Png
	if idx := strings.Index(logo, ";base64,"); idx >= 0 {
		header := logo[:idx]
		if strings.Contains(header, "jpeg") || strings.Contains(header, "jpg") {
			ext = extension.Jpg
		}
		logo = logo[idx+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(logo)
	if err != nil {
		return nil, extension.Png, false
	}
	return raw, ext, true
}

func capitalPosition(difference float64) string {
	if difference < 0 {
		return formatINR(math.Abs(difference)) + " (Shortfall)"
	}
	return formatINR(difference) + " (Excess)"
}

func percent(r models.Ratio) string {
	if r.Indeterminate() {
		return "N/A"
	}
	return r.String() + "%"
}

// formatINR formats an amount as Indian rupees with no decimals and Indian
// digit grouping (the last three digits, then groups of two: Rs. 12,34,567).
func formatINR(amount float64) string {
	negative := amount < 0
	digits := fmt.Sprintf("%.0f", math.Abs(amount))

	var grouped strings.Builder
	n := len(digits)
	for i, digit := range digits {
		remaining := n - i
		if i > 0 && (remaining == 3 || (remaining > 3 && (remaining-3)%2 == 0)) {
			grouped.WriteRune(',')
		}
		grouped.WriteRune(digit)
	}

	// "Rs." rather than the rupee sign: the built-in PDF fonts are cp1252
	// and have no glyph for it.
	out := "Rs. " + grouped.String()
	if negative {
		out = "-" + out
	}
	return out
}
