// Package projects implements the project store: CRUD plus duplication over
// the persistence backend, with a best-effort mirror of every saved project
// to the remote archive.
package projects

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/domain/models"
	"github.com/anupkhare/finreport/internal/repository"
)

const archiveTimeout = 30 * time.Second

// Archiver is the subset of the remote archive the project store uses.
type Archiver interface {
	SaveProjectRecord(ctx context.Context, project models.Project) error
}

// Service exposes the project store operations.
type Service struct {
	repo     repository.Store
	archiver Archiver
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a project service instance. archiver may be nil, in which
// case no remote mirroring happens.
func NewService(repo repository.Store, archiver Archiver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		archiver: archiver,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns every project in insertion order.
func (s *Service) List(ctx context.Context) ([]models.Project, error) {
	return s.repo.ListProjects(ctx)
}

// Get fetches one project by id.
func (s *Service) Get(ctx context.Context, id string) (models.Project, error) {
	return s.repo.GetProject(ctx, id)
}

// Create validates the form, assigns an id and timestamps, persists the
// project and mirrors it to the archive without blocking on the upload.
func (s *Service) Create(ctx context.Context, form models.ProjectFormData) (models.Project, error) {
	if err := validateForm(form); err != nil {
		return models.Project{}, err
	}

	now := s.now().UTC()
	project := models.Project{
		ID:                 uuid.NewString(),
		PANNumber:          form.PANNumber,
		CompanyName:        form.CompanyName,
		Address:            form.Address,
		Logo:               form.Logo,
		FinancialYearStart: form.FinancialYearStart,
		FinancialYearEnd:   form.FinancialYearEnd,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.InsertProject(ctx, project); err != nil {
		return models.Project{}, err
	}

	s.archiveAsync(project)
	return project, nil
}

// Update replaces every user-editable field, keeping id and createdAt and
// refreshing updatedAt.
func (s *Service) Update(ctx context.Context, id string, form models.ProjectFormData) (models.Project, error) {
	if err := validateForm(form); err != nil {
		return models.Project{}, err
	}

	existing, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	project := models.Project{
		ID:                 existing.ID,
		PANNumber:          form.PANNumber,
		CompanyName:        form.CompanyName,
		Address:            form.Address,
		Logo:               form.Logo,
		FinancialYearStart: form.FinancialYearStart,
		FinancialYearEnd:   form.FinancialYearEnd,
		CreatedAt:          existing.CreatedAt,
		UpdatedAt:          s.now().UTC(),
	}

	if err := s.repo.UpdateProject(ctx, project); err != nil {
		return models.Project{}, err
	}

	s.archiveAsync(project)
	return project, nil
}

// Delete removes the project; deleting an absent id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteProject(ctx, id)
}

// Duplicate creates a fresh project from an existing one, suffixing the PAN
// with "_copy" and the company name with " (Copy)".
func (s *Service) Duplicate(ctx context.Context, id string) (models.Project, error) {
	source, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	return s.Create(ctx, models.ProjectFormData{
		PANNumber:          source.PANNumber + "_copy",
		CompanyName:        source.CompanyName + " (Copy)",
		Address:            source.Address,
		Logo:               source.Logo,
		FinancialYearStart: source.FinancialYearStart,
		FinancialYearEnd:   source.FinancialYearEnd,
	})
}

// archiveAsync mirrors the project record to the remote archive in the
// background. Failures are logged and swallowed; the local save has already
// succeeded.
func (s *Service) archiveAsync(project models.Project) {
	if s.archiver == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := s.archiver.SaveProjectRecord(ctx, project); err != nil {
			s.logger.Warn("failed archiving project record",
				zap.String("project_id", project.ID),
				zap.Error(err))
		}
	}()
}

func validateForm(form models.ProjectFormData) error {
	if strings.TrimSpace(form.PANNumber) == "" {
		return models.NewValidationError("panNumber", "must not be blank")
	}
	if strings.TrimSpace(form.CompanyName) == "" {
		return models.NewValidationError("companyName", "must not be blank")
	}
	if strings.TrimSpace(form.Address) == "" {
		return models.NewValidationError("address", "must not be blank")
	}
	if form.FinancialYearEnd <= form.FinancialYearStart {
		return models.NewValidationError("financialYearEnd", "must be after financialYearStart")
	}
	return nil
}
