// Package catalog holds the authoritative entry collection.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/animedex/internal/model"
	"github.com/nikbrunner/animedex/internal/storage"
)

// LoadError reports a failed catalog load. The previous collection stays in place.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store holds the current collection. Readers never see a partial load.
// A Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []model.Entry
	version uint64
	logger  zerolog.Logger
}

// NewStore creates an empty Store that reports load failures to logger.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		entries: []model.Entry{},
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// Get returns the current collection snapshot. Before the first successful
// load it is empty. Callers must not modify the returned slice.
func (s *Store) Get() []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// Version increments on every successful load.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Load fetches the collection from src and swaps it in on success.
// On failure the previous collection is kept, the failure is logged and a
// *LoadError is returned.
func (s *Store) Load(ctx context.Context, src storage.Source) error {
	log := s.logger.With().
		Str("load_id", uuid.NewString()).
		Str("source", src.Describe()).
		Logger()

	log.Debug().Msg("loading catalog")

	entries, err := src.Load(ctx)
	if err != nil {
		loadErr := &LoadError{Source: src.Describe(), Err: err}
		log.Error().Err(err).Msg("catalog load failed, keeping previous collection")
		return loadErr
	}

	collection := model.NewCollection(entries)

	s.mu.Lock()
	s.entries = collection
	s.version++
	version := s.version
	s.mu.Unlock()

	log.Info().
		Int("entries", len(collection)).
		Int("with_images", collection.CountWithImages()).
		Int("images", collection.ImageCount()).
		Uint64("version", version).
		Msg("catalog loaded")

	return nil
}
