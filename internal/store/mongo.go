package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"papergenius/internal/models"
)

const (
	foldersCollection   = "folders"
	templatesCollection = "templates"
	papersCollection    = "question_papers"
)

// MongoStore implements Store on top of a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, url, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("unable to ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) CreateFolder(ctx context.Context, folder *models.Folder) error {
	_, err := s.db.Collection(foldersCollection).InsertOne(ctx, folder)
	if err != nil {
		return fmt.Errorf("inserting folder: %w", err)
	}
	return nil
}

func (s *MongoStore) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	var folder models.Folder
	err := s.db.Collection(foldersCollection).FindOne(ctx, bson.M{"id": id}).Decode(&folder)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding folder %s: %w", id, err)
	}
	return &folder, nil
}

func (s *MongoStore) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	var folders []models.Folder
	if err := s.findAllByUser(ctx, foldersCollection, userID, "created_at", &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (s *MongoStore) AppendFile(ctx context.Context, folderID string, file models.File) error {
	result, err := s.db.Collection(foldersCollection).UpdateOne(ctx,
		bson.M{"id": folderID},
		bson.M{"$push": bson.M{"files": file}},
	)
	if err != nil {
		return fmt.Errorf("appending file to folder %s: %w", folderID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CreateTemplate(ctx context.Context, template *models.Template) error {
	_, err := s.db.Collection(templatesCollection).InsertOne(ctx, template)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (s *MongoStore) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	var template models.Template
	err := s.db.Collection(templatesCollection).FindOne(ctx, bson.M{"id": id}).Decode(&template)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding template %s: %w", id, err)
	}
	return &template, nil
}

func (s *MongoStore) ListTemplates(ctx context.Context, userID string) ([]models.Template, error) {
	var templates []models.Template
	if err := s.findAllByUser(ctx, templatesCollection, userID, "created_at", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *MongoStore) CreatePaper(ctx context.Context, paper *models.QuestionPaper) error {
	_, err := s.db.Collection(papersCollection).InsertOne(ctx, paper)
	if err != nil {
		return fmt.Errorf("inserting question paper: %w", err)
	}
	return nil
}

func (s *MongoStore) GetPaper(ctx context.Context, id string) (*models.QuestionPaper, error) {
	var paper models.QuestionPaper
	err := s.db.Collection(papersCollection).FindOne(ctx, bson.M{"id": id}).Decode(&paper)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding question paper %s: %w", id, err)
	}
	return &paper, nil
}

func (s *MongoStore) ListPapers(ctx context.Context, userID string) ([]models.QuestionPaper, error) {
	var papers []models.QuestionPaper
	if err := s.findAllByUser(ctx, papersCollection, userID, "generated_at", &papers); err != nil {
		return nil, err
	}
	return papers, nil
}

// findAllByUser lists a collection's documents owned by userID, oldest first
// by the given timestamp field.
func (s *MongoStore) findAllByUser(ctx context.Context, collection, userID, sortField string, out any) error {
	cursor, err := s.db.Collection(collection).Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: sortField, Value: 1}}),
	)
	if err != nil {
		return fmt.Errorf("listing %s for user %s: %w", collection, userID, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decoding %s for user %s: %w", collection, userID, err)
	}
	return nil
}
