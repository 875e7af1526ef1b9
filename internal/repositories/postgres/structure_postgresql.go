package postgres

import (
	"context"
	"fmt"

	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/repositories"
	"gorm.io/gorm"
)

// StructurePostgreSQL is the GORM-backed structure repository.
type StructurePostgreSQL struct {
	db *gorm.DB
}

func NewStructureRepository(db *gorm.DB) repositories.StructureRepository {
	return &StructurePostgreSQL{db: db}
}

func (r *StructurePostgreSQL) Create(ctx context.Context, structure *models.QuestionStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

func (r *StructurePostgreSQL) GetByID(ctx context.Context, id uint) (*models.QuestionStructure, error) {
	var structure models.QuestionStructure
	if err := r.db.WithContext(ctx).First(&structure, id).Error; err != nil {
		return nil, err
	}
	return &structure, nil
}

func (r *StructurePostgreSQL) GetByMetadataID(ctx context.Context, metadataID uint) (*models.QuestionStructure, error) {
	var structure models.QuestionStructure
	if err := r.db.WithContext(ctx).Where("metadata_id = ?", metadataID).First(&structure).Error; err != nil {
		return nil, err
	}
	return &structure, nil
}

func (r *StructurePostgreSQL) List(ctx context.Context, filters repositories.StructureFilters) ([]*models.QuestionStructure, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.QuestionStructure{})

	if filters.BuilderType != nil {
		query = query.Where("builder_type = ?", *filters.BuilderType)
	}
	if filters.MetadataID != nil {
		query = query.Where("metadata_id = ?", *filters.MetadataID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(buildOrderClause(filters.SortBy, filters.SortOrder))
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var structures []*models.QuestionStructure
	if err := query.Find(&structures).Error; err != nil {
		return nil, 0, err
	}
	return structures, total, nil
}

func (r *StructurePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.QuestionStructure{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StructurePostgreSQL) ExistsForMetadata(ctx context.Context, metadataID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.QuestionStructure{}).
		Where("metadata_id = ?", metadataID).
		Count(&count).Error
	return count > 0, err
}

func (r *StructurePostgreSQL) CountByType(ctx context.Context) (map[models.QuestionType]int64, error) {
	type typeCount struct {
		BuilderType models.QuestionType
		Count       int64
	}

	var rows []typeCount
	err := r.db.WithContext(ctx).
		Model(&models.QuestionStructure{}).
		Select("builder_type, count(*) as count").
		Group("builder_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.QuestionType]int64, len(rows))
	for _, row := range rows {
		counts[row.BuilderType] = row.Count
	}
	return counts, nil
}

// buildOrderClause whitelists sortable columns; anything else falls
// back to newest first.
func buildOrderClause(sortBy, sortOrder string) string {
	switch sortBy {
	case "created_at", "builder_type", "metadata_id":
	default:
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
