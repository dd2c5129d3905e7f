// Package localstore persists projects and financial records as JSON files
// under a data directory, mirroring the per-key JSON layout of the browser
// original: one file for the project list, one file per project's financial
// record.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/domain/models"
)

const (
	projectsFile        = "projects.json"
	financialFilePrefix = "financial_"
)

// Store is a file-backed implementation of repository.Store. A single mutex
// serializes all writes; the store assumes one process owns the data dir.
type Store struct {
	mu      sync.Mutex
	dataDir string
	logger  *zap.Logger
}

// New creates the data directory if needed and returns a Store over it.
func New(dataDir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
	}
	return &Store{dataDir: dataDir, logger: logger}, nil
}

// ListProjects returns all projects in insertion order.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readProjects()
}

// GetProject looks a project up by id.
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.readProjects()
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, models.NewNotFoundError("project", id)
}

// InsertProject appends the project to the stored list.
func (s *Store) InsertProject(ctx context.Context, project models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.readProjects()
	if err != nil {
		return err
	}
	projects = append(projects, project)
	return s.writeJSON(projectsFile, projects)
}

// UpdateProject replaces the stored project with the same id.
func (s *Store) UpdateProject(ctx context.Context, project models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.readProjects()
	if err != nil {
		return err
	}
	for i, p := range projects {
		if p.ID == project.ID {
			projects[i] = project
			return s.writeJSON(projectsFile, projects)
		}
	}
	return models.NewNotFoundError("project", project.ID)
}

// DeleteProject removes the project and its financial record. Absent ids
// are a no-op.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.readProjects()
	if err != nil {
		return err
	}

	kept := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(projects) {
		return nil
	}
	if err := s.writeJSON(projectsFile, kept); err != nil {
		return err
	}
	if err := s.removeFile(financialFileName(id)); err != nil {
		s.logger.Warn("failed removing financial record", zap.String("project_id", id), zap.Error(err))
	}
	return nil
}

// GetFinancialData returns the project's financial record, or an empty one
// if nothing has been saved yet.
func (s *Store) GetFinancialData(ctx context.Context, projectID string) (models.ProjectFinancialData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := models.ProjectFinancialData{ProjectID: projectID}
	err := s.readJSON(financialFileName(projectID), &data)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.ProjectFinancialData{ProjectID: projectID}, nil
		}
		return models.ProjectFinancialData{}, err
	}
	data.ProjectID = projectID
	return data, nil
}

// SaveFinancialData replaces the project's financial record in one write.
func (s *Store) SaveFinancialData(ctx context.Context, data models.ProjectFinancialData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(financialFileName(data.ProjectID), data)
}

// DeleteFinancialData removes the financial record; absent records are a
// no-op.
func (s *Store) DeleteFinancialData(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeFile(financialFileName(projectID))
}

func financialFileName(projectID string) string {
	return financialFilePrefix + projectID + ".json"
}

func (s *Store) readProjects() ([]models.Project, error) {
	var projects []models.Project
	err := s.readJSON(projectsFile, &projects)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return projects, nil
}

func (s *Store) readJSON(name string, v any) error {
	raw, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// writeJSON writes through a temp file and renames it into place so readers
// never observe a partially written record.
func (s *Store) writeJSON(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	target := filepath.Join(s.dataDir, name)
	tmp, err := os.CreateTemp(s.dataDir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *Store) removeFile(name string) error {
	err := os.Remove(filepath.Join(s.dataDir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
