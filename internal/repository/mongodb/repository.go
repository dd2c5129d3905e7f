// Package mongodb implements repository.Store over MongoDB, for deployments
// where per-directory JSON files are not enough.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anupkhare/finreport/internal/domain/models"
)

const (
	projectsCollection  = "projects"
	financialCollection = "financial_data"
)

// Store implements repository.Store backed by MongoDB.
type Store struct {
	client *mongo.Client
	dbName string
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

// ListProjects returns all projects in insertion order (an unsorted find
// walks the collection in natural order).
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	cursor, err := s.projects().Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

// GetProject fetches one project by id.
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	err := s.projects().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, models.NewNotFoundError("project", id)
		}
		return models.Project{}, fmt.Errorf("get project %s: %w", id, err)
	}
	return project, nil
}

// InsertProject stores a new project document.
func (s *Store) InsertProject(ctx context.Context, project models.Project) error {
	if _, err := s.projects().InsertOne(ctx, project); err != nil {
		return fmt.Errorf("insert project %s: %w", project.ID, err)
	}
	return nil
}

// UpdateProject replaces the document with the same id.
func (s *Store) UpdateProject(ctx context.Context, project models.Project) error {
	res, err := s.projects().ReplaceOne(ctx, bson.D{{Key: "_id", Value: project.ID}}, project)
	if err != nil {
		return fmt.Errorf("update project %s: %w", project.ID, err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("project", project.ID)
	}
	return nil
}

// DeleteProject removes the project and its financial record; absent ids
// are a no-op.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.projects().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if _, err := s.financial().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete financial record %s: %w", id, err)
	}
	return nil
}

// GetFinancialData returns the project's financial record, or an empty one
// if nothing has been saved yet.
func (s *Store) GetFinancialData(ctx context.Context, projectID string) (models.ProjectFinancialData, error) {
	var data models.ProjectFinancialData
	err := s.financial().FindOne(ctx, bson.D{{Key: "_id", Value: projectID}}).Decode(&data)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProjectFinancialData{ProjectID: projectID}, nil
		}
		return models.ProjectFinancialData{}, fmt.Errorf("get financial record %s: %w", projectID, err)
	}
	return data, nil
}

// SaveFinancialData upserts the whole financial record in a single write.
func (s *Store) SaveFinancialData(ctx context.Context, data models.ProjectFinancialData) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.financial().ReplaceOne(ctx, bson.D{{Key: "_id", Value: data.ProjectID}}, data, opts); err != nil {
		return fmt.Errorf("save financial record %s: %w", data.ProjectID, err)
	}
	return nil
}

// DeleteFinancialData removes the financial record; absent records are a
// no-op.
func (s *Store) DeleteFinancialData(ctx context.Context, projectID string) error {
	if _, err := s.financial().DeleteOne(ctx, bson.D{{Key: "_id", Value: projectID}}); err != nil {
		return fmt.Errorf("delete financial record %s: %w", projectID, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) projects() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(projectsCollection)
}

func (s *Store) financial() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(financialCollection)
}
