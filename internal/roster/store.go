package roster

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zaqqye/evaluasi_backend/internal/logger"
	"github.com/zaqqye/evaluasi_backend/internal/metrics"
	"github.com/zaqqye/evaluasi_backend/internal/models"
	"github.com/zaqqye/evaluasi_backend/internal/storage"
	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

// Store owns the committed roster and mirrors it to one named blob.
type Store struct {
	blobs    storage.BlobStore
	key      string
	subjects []string
	defaults func() models.Roster
	log      zerolog.Logger

	mu      sync.RWMutex
	current models.Roster
	lastErr error
}

type Option func(*Store)

// WithDefaults replaces the generator used when no usable snapshot exists.
func WithDefaults(fn func() models.Roster) Option {
	return func(s *Store) { s.defaults = fn }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(blobs storage.BlobStore, key string, subjects []string, opts ...Option) *Store {
	s := &Store{
		blobs:    blobs,
		key:      key,
		subjects: append([]string(nil), subjects...),
		log:      logger.Component("roster"),
		current:  models.Roster{},
	}
	s.defaults = func() models.Roster {
		return DefaultRoster(s.subjects, rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Subjects() []string {
	return append([]string(nil), s.subjects...)
}

func (s *Store) Key() string {
	return s.key
}

// Load reads the persisted roster into memory. A missing or unusable blob is
// replaced by a generated default roster, which is then persisted. Load never
// fails.
func (s *Store) Load(ctx context.Context) models.Roster {
	r, err := s.LoadPersisted(ctx)
	if err != nil {
		evt := s.log.Warn()
		if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			evt = s.log.Error()
		}
		evt.Err(err).Str("key", s.key).Msg("Falling back to default roster")
		metrics.FallbackLoads.Inc()

		r = s.defaults()
		s.set(r)
		s.Save(ctx, r)
		return r.Clone()
	}

	s.set(r)
	s.log.Info().Int("students", len(r)).Str("key", s.key).Msg("Roster loaded")
	return r.Clone()
}

// LoadPersisted reads the last saved snapshot without touching the in-memory
// roster.
func (s *Store) LoadPersisted(ctx context.Context) (models.Roster, error) {
	data, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", s.key, err)
	}
	return Decode(data)
}

// Get returns a copy of the committed roster.
func (s *Store) Get() models.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Replace commits r as the new roster and persists it. A failed write is
// logged; the in-memory roster stays authoritative.
func (s *Store) Replace(ctx context.Context, r models.Roster) {
	s.set(r)
	metrics.RosterCommits.Inc()
	s.Save(ctx, r)
}

// Reset commits a freshly generated default roster.
func (s *Store) Reset(ctx context.Context) models.Roster {
	r := s.defaults()
	s.Replace(ctx, r)
	return r.Clone()
}

// Save writes r to the blob store, overwriting the previous snapshot.
// Failures are logged and kept for LastSaveErr, never returned.
func (s *Store) Save(ctx context.Context, r models.Roster) {
	err := s.write(ctx, r)

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		metrics.PersistFailures.Inc()
		s.log.Error().Err(err).Str("key", s.key).Msg("Failed to persist roster")
		return
	}
	s.log.Debug().Int("students", len(r)).Str("key", s.key).Msg("Roster persisted")
}

// LastSaveErr reports the outcome of the most recent Save.
func (s *Store) LastSaveErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) write(ctx context.Context, r models.Roster) error {
	data, err := Encode(r)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return s.blobs.Put(ctx, s.key, data)
}

func (s *Store) set(r models.Roster) {
	c := r.Clone()
	if c == nil {
		c = models.Roster{}
	}
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
}
