// Package finlog implements the financial log store: the per-project daily
// entries and hike configuration. Every mutation rewrites the project's full
// financial record so readers never see a partial write.
package finlog

import (
	"context"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/domain/models"
	"github.com/anupkhare/finreport/internal/repository"
)

const dateLayout = "2006-01-02"

// Editable daily log fields.
const (
	FieldDate           = "date"
	FieldPurchaseValue  = "purchaseValue"
	FieldSalesValue     = "salesValue"
	FieldDirectExpenses = "directExpenses"
)

// Service exposes the financial log store operations.
type Service struct {
	repo   repository.FinancialRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a financial log service instance.
func NewService(repo repository.FinancialRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Logs returns the project's daily entries in insertion order, empty if the
// project has never logged anything.
func (s *Service) Logs(ctx context.Context, projectID string) ([]models.DailyLogEntry, error) {
	data, err := s.repo.GetFinancialData(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return data.DailyLogs, nil
}

// AppendEntry adds a zeroed entry dated today and persists immediately.
func (s *Service) AppendEntry(ctx context.Context, projectID string) (models.DailyLogEntry, error) {
	data, err := s.repo.GetFinancialData(ctx, projectID)
	if err != nil {
		return models.DailyLogEntry{}, err
	}

	entry := models.DailyLogEntry{Date: s.now().Format(dateLayout)}
	data.DailyLogs = append(data.DailyLogs, entry)

	if err := s.repo.SaveFinancialData(ctx, data); err != nil {
		return models.DailyLogEntry{}, err
	}
	return entry, nil
}

// UpdateField mutates one field of the entry at index and persists
// immediately. Date fields keep the raw value verbatim; numeric fields are
// parsed as floats with anything unparseable coerced to 0. An out-of-range
// index returns a NotFoundError.
func (s *Service) UpdateField(ctx context.Context, projectID string, index int, field, rawValue string) (models.DailyLogEntry, error) {
	data, err := s.repo.GetFinancialData(ctx, projectID)
	if err != nil {
		return models.DailyLogEntry{}, err
	}

	if index < 0 || index >= len(data.DailyLogs) {
		return models.DailyLogEntry{}, models.NewNotFoundError("log entry", strconv.Itoa(index))
	}

	entry := &data.DailyLogs[index]
	switch field {
	case FieldDate:
		entry.Date = rawValue
	case FieldPurchaseValue:
		entry.PurchaseValue = parseAmount(rawValue)
	case FieldSalesValue:
		entry.SalesValue = parseAmount(rawValue)
	case FieldDirectExpenses:
		entry.DirectExpenses = parseAmount(rawValue)
	default:
		return models.DailyLogEntry{}, models.NewValidationError("field", "unknown field "+field)
	}

	if err := s.repo.SaveFinancialData(ctx, data); err != nil {
		return models.DailyLogEntry{}, err
	}
	return *entry, nil
}

// HikeConfig returns the project's hike configuration, falling back to the
// documented defaults when none has been saved.
func (s *Service) HikeConfig(ctx context.Context, projectID string) (models.HikeConfig, error) {
	data, err := s.repo.GetFinancialData(ctx, projectID)
	if err != nil {
		return models.HikeConfig{}, err
	}
	if data.HikeConfig == nil {
		return models.DefaultHikeConfig(), nil
	}
	return *data.HikeConfig, nil
}

// SetHikeConfig replaces the project's hike configuration wholesale.
func (s *Service) SetHikeConfig(ctx context.Context, projectID string, cfg models.HikeConfig) error {
	data, err := s.repo.GetFinancialData(ctx, projectID)
	if err != nil {
		return err
	}
	data.HikeConfig = &cfg
	return s.repo.SaveFinancialData(ctx, data)
}

// parseAmount mirrors the form input coercion: floats parse as-is, anything
// unparseable or non-finite becomes 0.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
