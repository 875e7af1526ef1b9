package services

import (
	"context"

	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/repositories"
)

// StructureWriter persists a finished structure exactly once per save.
// Two implementations exist: the repository-backed writer for local
// PostgreSQL persistence, and client.MetadataClient for forwarding to
// the question metadata API.
type StructureWriter interface {
	WriteStructure(ctx context.Context, record *models.QuestionStructure) error
	HasStructure(ctx context.Context, metadataID uint) (bool, error)
}

type repositoryWriter struct {
	repo repositories.StructureRepository
}

// NewRepositoryWriter adapts the structure repository to the writer
// interface.
func NewRepositoryWriter(repo repositories.StructureRepository) StructureWriter {
	return &repositoryWriter{repo: repo}
}

func (w *repositoryWriter) WriteStructure(ctx context.Context, record *models.QuestionStructure) error {
	return w.repo.Create(ctx, record)
}

func (w *repositoryWriter) HasStructure(ctx context.Context, metadataID uint) (bool, error) {
	return w.repo.ExistsForMetadata(ctx, metadataID)
}
