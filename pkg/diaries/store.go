package diaries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/unowned-ai/diary/pkg/kv"
)

// Store reads and writes the diary collection. Every write is a full
// read-modify-write of the collection under StorageKey; concurrent writers
// resolve as last write wins.
type Store struct {
	backend kv.Backend
	logger  *zap.Logger
	strict  bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for warnings and debug traces.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrictDecode makes GetAll fail with ErrCorruptState on an unreadable
// collection instead of treating it as empty.
func WithStrictDecode(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// NewStore builds a Store over backend. It logs nothing and decodes leniently unless configured.
func NewStore(backend kv.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAll returns the whole collection. A missing key is an empty collection.
func (s *Store) GetAll(ctx context.Context) (Collection, error) {
	raw, found, err := s.backend.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read diary collection: %w", err)
	}
	if !found {
		return Collection{}, nil
	}

	var c Collection
	if err := json.Unmarshal(raw, &c); err != nil {
		if s.strict {
			return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
		s.logger.Warn("stored diary collection is unreadable, treating it as empty",
			zap.String("key", StorageKey), zap.Error(err))
		return Collection{}, nil
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

// Lookup finds the entry saved for date.
func (s *Store) Lookup(ctx context.Context, date string) (Entry, bool, error) {
	c, err := s.GetAll(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	if i := c.IndexOf(date); i >= 0 {
		return c[i], true, nil
	}
	return Entry{}, false, nil
}

// GetByDate returns the entry for date, or a blank entry tagged with
// DefaultEmotion when nothing was saved for that day.
func (s *Store) GetByDate(ctx context.Context, date string) (Entry, error) {
	entry, found, err := s.Lookup(ctx, date)
	if err != nil {
		return Entry{}, err
	}
	if !found {
		return Entry{Date: date, Text: "", Emotion: DefaultEmotion}, nil
	}
	return entry, nil
}

// Require is GetByDate that reports absence as ErrEntryNotFound.
func (s *Store) Require(ctx context.Context, date string) (Entry, error) {
	entry, found, err := s.Lookup(ctx, date)
	if err != nil {
		return Entry{}, err
	}
	if !found {
		return Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, date)
	}
	return entry, nil
}

// Upsert validates entry and saves it, replacing any entry for the same date.
// Rejected entries leave the stored collection untouched.
func (s *Store) Upsert(ctx context.Context, entry Entry) (Entry, error) {
	entry, err := normalize(entry)
	if err != nil {
		return Entry{}, err
	}

	c, err := s.GetAll(ctx)
	if err != nil {
		return Entry{}, err
	}
	c = c.Upsert(entry)

	if err := s.save(ctx, c); err != nil {
		return Entry{}, err
	}

	s.logger.Debug("diary saved",
		zap.String("date", entry.Date),
		zap.String("emotion", entry.Emotion.String()),
		zap.Int("entries", len(c)))
	return entry, nil
}

// Count returns the number of saved entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	c, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(c), nil
}

func (s *Store) save(ctx context.Context, c Collection) error {
	raw, err := encodeCollection(c)
	if err != nil {
		return err
	}
	if err := s.backend.Put(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("failed to write diary collection: %w", err)
	}
	return nil
}

// encodeCollection produces the stored document: a JSON array without HTML escaping.
func encodeCollection(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode diary collection: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
