package database

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nrandle/image-downloader/internal/entity"
)

type tokenEntry struct {
	prep      *entity.CSVPreparation
	createdAt time.Time
}

type tokenStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]*tokenEntry
}

func NewTokenStore(ttl time.Duration) TokenStore {
	return &tokenStore{
		ttl:    ttl,
		tokens: make(map[string]*tokenEntry),
	}
}

func (s *tokenStore) Create(prep *entity.CSVPreparation) string {
	token := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = &tokenEntry{prep: prep, createdAt: time.Now()}
	return token
}

// Consume redeems a token exactly once. Under concurrent calls the first
// caller wins and the rest get ErrUnknownToken.
func (s *tokenStore) Consume(token string) (*entity.CSVPreparation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return nil, entity.ErrUnknownToken
	}
	delete(s.tokens, token)

	if time.Since(entry.createdAt) > s.ttl {
		return nil, entity.ErrUnknownToken
	}
	return entry.prep, nil
}

// Cleanup drops expired tokens and returns how many were removed.
func (s *tokenStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-s.ttl)
	for token, entry := range s.tokens {
		if entry.createdAt.Before(cutoff) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}
