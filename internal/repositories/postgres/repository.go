package postgres

import (
	"context"

	"github.com/quizdash/builder-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db        *gorm.DB
	structure repositories.StructureRepository
}

// NewRepository creates the root PostgreSQL repository.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:        db,
		structure: NewStructureRepository(db),
	}
}

func (r *repository) Structure() repositories.StructureRepository {
	return r.structure
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
