package settings

import (
	"context"
	"log"
	"time"

	"github.com/noorcaftan/boutique-backend/internal/cache"
)

const cacheKey = "settings"

type Service struct {
	repo  Repository
	cache *cache.Cache
}

// NewService wires the repository with an optional cache. A nil cache is
// valid; every read then goes straight to the store.
func NewService(repo Repository, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// Get serves the singleton cache-aside: a Redis hit skips the store, a miss
// reads through and backfills. Cache failures degrade to a store read.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	var cached Settings
	hit, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Printf("settings cache read failed: %v", err)
	}
	if hit {
		return cached, nil
	}

	stored, err := s.repo.Get()
	if err != nil {
		return Settings{}, err
	}
	if err := s.cache.Set(ctx, cacheKey, stored); err != nil {
		log.Printf("settings cache write failed: %v", err)
	}
	return stored, nil
}

// Update merge-patches the singleton, stamps updatedAt and invalidates the
// cached copy.
func (s *Service) Update(ctx context.Context, patch Patch) (Settings, error) {
	current, err := s.repo.Get()
	if err != nil {
		return Settings{}, err
	}

	patch.Apply(&current)
	current.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.repo.Upsert(current); err != nil {
		return Settings{}, err
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Printf("settings cache invalidation failed: %v", err)
	}
	return current, nil
}
