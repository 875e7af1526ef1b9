package repositories

import (
	"context"
	"errors"

	"github.com/quizdash/builder-service/internal/models"
	"gorm.io/gorm"
)

// StructureFilters narrows and pages the saved-structure catalog.
type StructureFilters struct {
	BuilderType *models.QuestionType `json:"builder_type"`
	MetadataID  *uint                `json:"metadata_id"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
	SortBy      string               `json:"sort_by"`    // "created_at", "builder_type"
	SortOrder   string               `json:"sort_order"` // "asc", "desc"
}

// StructureRepository persists saved question structures.
type StructureRepository interface {
	Create(ctx context.Context, structure *models.QuestionStructure) error
	GetByID(ctx context.Context, id uint) (*models.QuestionStructure, error)
	GetByMetadataID(ctx context.Context, metadataID uint) (*models.QuestionStructure, error)
	List(ctx context.Context, filters StructureFilters) ([]*models.QuestionStructure, int64, error)
	Delete(ctx context.Context, id uint) error
	ExistsForMetadata(ctx context.Context, metadataID uint) (bool, error)
	CountByType(ctx context.Context) (map[models.QuestionType]int64, error)
}

// Repository is the root repository accessor.
type Repository interface {
	Structure() StructureRepository
	Ping(ctx context.Context) error
}

// IsNotFoundError checks if error represents a "record not found"
// condition from the underlying database layer.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
