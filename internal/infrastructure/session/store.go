package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nutriquiz/backend/internal/domain"
)

const keyPrefix = "session:"

// Store keeps quiz sessions as JSON in a cache with a fixed lifetime
type Store struct {
	cache domain.CacheRepository
	ttl   time.Duration
}

// NewStore creates a session store over cache
func NewStore(cache domain.CacheRepository, ttl time.Duration) *Store {
	return &Store{cache: cache, ttl: ttl}
}

// Save stores the session until its ttl elapses
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidRequest
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.cache.Set(ctx, keyPrefix+session.ID, data, s.ttl)
}

// Get returns the session, or domain.ErrSessionNotFound when it is unknown or expired
func (s *Store) Get(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}

	data, err := s.cache.Get(ctx, keyPrefix+id)
	if errors.Is(err, domain.ErrCacheMiss) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}
