// Package reports derives the projected statements for presentation and
// renders/archives them as PDF documents.
package reports

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/derive"
	"github.com/anupkhare/finreport/internal/domain/models"
	"github.com/anupkhare/finreport/internal/render/pdf"
	"github.com/anupkhare/finreport/internal/repository"
)

// Report type identifiers, also used in archived file names.
const (
	TypeProfitLoss   = "profit-loss"
	TypeBalanceSheet = "balance-sheet"
)

// Archiver is the subset of the remote archive the report service uses.
type Archiver interface {
	SaveReport(ctx context.Context, project models.Project, document []byte, reportType string, year int) error
}

// Service derives statements on demand; nothing derived is ever persisted.
type Service struct {
	repo     repository.Store
	archiver Archiver
	logger   *zap.Logger
}

// NewService wires a report service instance. archiver may be nil, which
// disables exports to the remote archive.
func NewService(repo repository.Store, archiver Archiver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, archiver: archiver, logger: logger}
}

// ProfitLossSeries derives one P&L entry per financial year of the project.
func (s *Service) ProfitLossSeries(ctx context.Context, projectID string) ([]models.PLEntry, error) {
	project, logs, hike, err := s.inputs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	pls, _ := derive.Range(project, logs, hike)
	return pls, nil
}

// BalanceSheetSeries derives one balance sheet per financial year of the
// project.
func (s *Service) BalanceSheetSeries(ctx context.Context, projectID string) ([]models.BalanceSheetEntry, error) {
	project, logs, hike, err := s.inputs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	_, sheets := derive.Range(project, logs, hike)
	return sheets, nil
}

// MPBF derives the bank-credit assessment for one financial year.
func (s *Service) MPBF(ctx context.Context, projectID string, year int) (models.MPBFRatios, error) {
	project, logs, hike, err := s.inputs(ctx, projectID)
	if err != nil {
		return models.MPBFRatios{}, err
	}
	if year < project.FinancialYearStart || year > project.FinancialYearEnd {
		return models.MPBFRatios{}, models.NewValidationError("year", fmt.Sprintf("outside financial year range %d-%d", project.FinancialYearStart, project.FinancialYearEnd))
	}
	_, sheet := derive.Year(year, logs, hike)
	return derive.MPBF(sheet), nil
}

// RenderPDF derives the requested statement for one year and renders it.
func (s *Service) RenderPDF(ctx context.Context, projectID, reportType string, year int, opts pdf.Options) ([]byte, error) {
	project, logs, hike, err := s.inputs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if year < project.FinancialYearStart || year > project.FinancialYearEnd {
		return nil, models.NewValidationError("year", fmt.Sprintf("outside financial year range %d-%d", project.FinancialYearStart, project.FinancialYearEnd))
	}

	pl, sheet := derive.Year(year, logs, hike)
	switch reportType {
	case TypeProfitLoss:
		return pdf.RenderProfitLoss(project, pl, opts)
	case TypeBalanceSheet:
		return pdf.RenderBalanceSheet(project, sheet, opts)
	default:
		return nil, models.NewValidationError("type", "unknown report type "+reportType)
	}
}

// Export renders the statement and uploads it to the remote archive. The
// rendered document is returned either way; only the primary render can fail
// the call, archive errors are logged and swallowed.
func (s *Service) Export(ctx context.Context, projectID, reportType string, year int, opts pdf.Options) ([]byte, error) {
	document, err := s.RenderPDF(ctx, projectID, reportType, year, opts)
	if err != nil {
		return nil, err
	}

	if s.archiver == nil {
		s.logger.Warn("remote archive disabled, export kept local",
			zap.String("project_id", projectID),
			zap.String("report_type", reportType))
		return document, nil
	}

	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.archiver.SaveReport(ctx, project, document, reportType, year); err != nil {
		s.logger.Warn("failed archiving report",
			zap.String("project_id", projectID),
			zap.String("report_type", reportType),
			zap.Int("year", year),
			zap.Error(err))
	}
	return document, nil
}

func (s *Service) inputs(ctx context.Context, projectID string) (models.Project, []models.DailyLogEntry, models.HikeConfig, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return models.Project{}, nil, models.HikeConfig{}, err
	}
	data, err := s.repo.GetFinancialData(ctx, projectID)
	if err != nil {
		return models.Project{}, nil, models.HikeConfig{}, err
	}
	hike := models.DefaultHikeConfig()
	if data.HikeConfig != nil {
		hike = *data.HikeConfig
	}
	return project, data.DailyLogs, hike, nil
}
