// Package store persists folders, templates, and generated papers in a
// document database. Every write is a single-document operation; the store's
// native per-document atomicity is the only consistency guarantee.
package store

import (
	"context"
	"errors"

	"papergenius/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// Store is the content store contract. Implemented by Mongo; tests use an
// in-memory fake.
type Store interface {
	CreateFolder(ctx context.Context, folder *models.Folder) error
	GetFolder(ctx context.Context, id string) (*models.Folder, error)
	ListFolders(ctx context.Context, userID string) ([]models.Folder, error)
	// AppendFile pushes a file onto a folder's file list. Returns ErrNotFound
	// when the folder does not exist.
	AppendFile(ctx context.Context, folderID string, file models.File) error

	CreateTemplate(ctx context.Context, template *models.Template) error
	GetTemplate(ctx context.Context, id string) (*models.Template, error)
	ListTemplates(ctx context.Context, userID string) ([]models.Template, error)

	CreatePaper(ctx context.Context, paper *models.QuestionPaper) error
	GetPaper(ctx context.Context, id string) (*models.QuestionPaper, error)
	ListPapers(ctx context.Context, userID string) ([]models.QuestionPaper, error)
}
