// Package drive archives project records and rendered reports to the user's
// Google Drive under an application folder. All callers treat the archive as
// best-effort: failures are logged and never block the primary operation.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/anupkhare/finreport/internal/config"
	"github.com/anupkhare/finreport/internal/domain/models"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	jsonMimeType   = "application/json"
	pdfMimeType    = "application/pdf"
)

// Archive defines the remote archive operations the services rely on.
type Archive interface {
	SaveProjectRecord(ctx context.Context, project models.Project) error
	SaveReport(ctx context.Context, project models.Project, document []byte, reportType string, year int) error
}

// DriveArchive implements Archive using the official Google Drive API.
type DriveArchive struct {
	service    *driveapi.Service
	folderName string
	logger     *zap.Logger
}

// New builds a Drive-backed archive instance.
func New(ctx context.Context, cfg config.GoogleConfig, logger *zap.Logger) (*DriveArchive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := driveapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(driveapi.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize drive client: %w", err)
	}

	return &DriveArchive{
		service:    service,
		folderName: cfg.DriveFolderName,
		logger:     logger,
	}, nil
}

// SaveProjectRecord uploads the full project record as JSON into the app
// folder, replacing any previous upload for the same project.
func (a *DriveArchive) SaveProjectRecord(ctx context.Context, project models.Project) error {
	folderID, err := a.ensureFolder(ctx, a.folderName, "")
	if err != nil {
		return err
	}

	content, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project %s: %w", project.ID, err)
	}

	name := fmt.Sprintf("%s_%s.json", project.CompanyName, project.ID)
	if err := a.upload(ctx, folderID, name, jsonMimeType, content); err != nil {
		return err
	}

	a.logger.Debug("project record archived", zap.String("project_id", project.ID), zap.String("file", name))
	return nil
}

// SaveReport uploads a rendered report PDF into the project's subfolder,
// replacing any previous upload for the same report type and year.
func (a *DriveArchive) SaveReport(ctx context.Context, project models.Project, document []byte, reportType string, year int) error {
	appFolderID, err := a.ensureFolder(ctx, a.folderName, "")
	if err != nil {
		return err
	}

	projectFolder := fmt.Sprintf("%s_%s", project.CompanyName, project.ID)
	projectFolderID, err := a.ensureFolder(ctx, projectFolder, appFolderID)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s_%d.pdf", project.CompanyName, reportType, year)
	if err := a.upload(ctx, projectFolderID, name, pdfMimeType, document); err != nil {
		return err
	}

	a.logger.Debug("report archived",
		zap.String("project_id", project.ID),
		zap.String("report_type", reportType),
		zap.Int("year", year))
	return nil
}

// ensureFolder returns the id of the named folder, creating it when absent.
// An empty parent means the Drive root.
func (a *DriveArchive) ensureFolder(ctx context.Context, name, parent string) (string, error) {
	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escapeQuery(name), folderMimeType)
	if parent != "" {
		query += fmt.Sprintf(" and '%s' in parents", parent)
	}

	list, err := a.service.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("lookup folder %s: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	meta := &driveapi.File{Name: name, MimeType: folderMimeType}
	if parent != "" {
		meta.Parents = []string{parent}
	}
	folder, err := a.service.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder %s: %w", name, err)
	}
	return folder.Id, nil
}

// upload creates the named file in the folder, or updates it in place when a
// file with the same name already exists.
func (a *DriveArchive) upload(ctx context.Context, folderID, name, mimeType string, content []byte) error {
	query := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", escapeQuery(name), folderID)
	list, err := a.service.Files.List().Q(query).Fields("files(id)").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("lookup file %s: %w", name, err)
	}

	media := googleapi.ContentType(mimeType)
	if len(list.Files) > 0 {
		_, err = a.service.Files.Update(list.Files[0].Id, &driveapi.File{Name: name}).
			Media(bytes.NewReader(content), media).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("update file %s: %w", name, err)
		}
		return nil
	}

	meta := &driveapi.File{Name: name, MimeType: mimeType, Parents: []string{folderID}}
	_, err = a.service.Files.Create(meta).
		Media(bytes.NewReader(content), media).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("create file %s: %w", name, err)
	}
	return nil
}

func escapeQuery(value string) string {
	return strings.ReplaceAll(value, "'", `\'`)
}
