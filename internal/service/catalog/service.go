package catalog

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/patient-api/internal/model"
	"github.com/jwalitptl/patient-api/internal/repository"
)

// Service answers "does this catalog code exist" for orchestrators.
// Catalogs are effectively immutable reference sets, so positive
// answers are cached; negatives are not, so a freshly seeded code is
// picked up without waiting out a TTL.
type Service struct {
	repo  repository.CatalogRepository
	cache *cache.Cache
}

func NewService(repo repository.CatalogRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(10*time.Minute, 30*time.Minute),
	}
}

func (s *Service) Exists(ctx context.Context, kind model.CatalogKind, code string) (bool, error) {
	key := string(kind) + ":" + code
	if _, ok := s.cache.Get(key); ok {
		return true, nil
	}

	exists, err := s.repo.Exists(ctx, kind, code)
	if err != nil {
		return false, err
	}
	if exists {
		s.cache.Set(key, struct{}{}, cache.DefaultExpiration)
	}
	return exists, nil
}

func (s *Service) List(ctx context.Context, kind model.CatalogKind) ([]*model.CatalogEntry, error) {
	return s.repo.List(ctx, kind)
}
