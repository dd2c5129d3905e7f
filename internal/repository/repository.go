// Package repository defines the persistence interfaces the services depend
// on. Two backends implement them: localstore (JSON files, the default) and
// mongodb.
package repository

import (
	"context"

	"github.com/anupkhare/finreport/internal/domain/models"
)

// ProjectRepository stores the project list. ListProjects must return
// projects in insertion order.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	InsertProject(ctx context.Context, project models.Project) error
	UpdateProject(ctx context.Context, project models.Project) error
	// DeleteProject is idempotent; deleting an absent id is not an error.
	DeleteProject(ctx context.Context, id string) error
}

// FinancialRepository stores the per-project financial record (daily logs
// plus hike configuration). Every save replaces the whole record so no
// partial write is ever observable.
type FinancialRepository interface {
	// GetFinancialData returns an empty record (nil logs, nil hike config)
	// for a project that has never saved one.
	GetFinancialData(ctx context.Context, projectID string) (models.ProjectFinancialData, error)
	SaveFinancialData(ctx context.Context, data models.ProjectFinancialData) error
	DeleteFinancialData(ctx context.Context, projectID string) error
}

// Store combines both repositories; each backend satisfies it with a single
// concrete type.
type Store interface {
	ProjectRepository
	FinancialRepository
}
