package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quizdash/builder-service/internal/cache"
	"github.com/quizdash/builder-service/internal/events"
	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/registry"
	"github.com/quizdash/builder-service/internal/repositories"
	"github.com/quizdash/builder-service/internal/utils"
)

const structureCacheTTL = 5 * time.Minute

// StructureList is a paginated page of saved structures.
type StructureList struct {
	Structures []*models.QuestionStructure `json:"structures"`
	Total      int64                       `json:"total"`
	Limit      int                         `json:"limit"`
	Offset     int                         `json:"offset"`
}

// CatalogService serves the read side: the type catalog and saved
// structures, with a Redis cache in front of single-record reads.
type CatalogService interface {
	ListTypes(ctx context.Context) []registry.Descriptor
	GetStructure(ctx context.Context, id uint) (*models.QuestionStructure, error)
	GetByMetadata(ctx context.Context, metadataID uint) (*models.QuestionStructure, error)
	ListStructures(ctx context.Context, filters repositories.StructureFilters) (*StructureList, error)
	DeleteStructure(ctx context.Context, id uint) error
	CountByType(ctx context.Context) (map[models.QuestionType]int64, error)
}

type catalogService struct {
	repo      repositories.StructureRepository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    utils.Logger
	now       func() time.Time
}

func NewCatalogService(
	repo repositories.StructureRepository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger utils.Logger,
) CatalogService {
	return &catalogService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *catalogService) ListTypes(ctx context.Context) []registry.Descriptor {
	return registry.Types()
}

func (s *catalogService) GetStructure(ctx context.Context, id uint) (*models.QuestionStructure, error) {
	key := fmt.Sprintf("structures:id:%d", id)

	var cached models.QuestionStructure
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	structure, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrStructureNotFound, id)
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, key, structure, structureCacheTTL); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
	return structure, nil
}

func (s *catalogService) GetByMetadata(ctx context.Context, metadataID uint) (*models.QuestionStructure, error) {
	key := fmt.Sprintf("structures:metadata:%d", metadataID)

	var cached models.QuestionStructure
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	structure, err := s.repo.GetByMetadataID(ctx, metadataID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: metadata %d", ErrStructureNotFound, metadataID)
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, key, structure, structureCacheTTL); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
	return structure, nil
}

func (s *catalogService) ListStructures(ctx context.Context, filters repositories.StructureFilters) (*StructureList, error) {
	structures, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return &StructureList{
		Structures: structures,
		Total:      total,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	}, nil
}

func (s *catalogService) DeleteStructure(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%w: %d", ErrStructureNotFound, id)
		}
		return err
	}

	if err := s.cache.DeletePattern(ctx, "structures:*"); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", "error", err)
	}

	if s.publisher != nil {
		event := &events.BuilderEvent{
			ID:        uuid.NewString(),
			Type:      events.EventStructureDeleted,
			Timestamp: s.now().UTC(),
			Source:    eventSource,
			Version:   "1.0",
			Data: events.StructureDeletedEvent{
				StructureID: id,
				DeletedAt:   s.now().UTC(),
			},
		}
		if err := s.publisher.PublishBuilderEvent(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "event publish failed",
				"event_type", events.EventStructureDeleted,
				"error", err)
		}
	}

	s.logger.InfoContext(ctx, "structure deleted", "structure_id", id)
	return nil
}

func (s *catalogService) CountByType(ctx context.Context) (map[models.QuestionType]int64, error) {
	return s.repo.CountByType(ctx)
}
