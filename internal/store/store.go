package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound = errors.New("entity not found")
	ErrStorage  = errors.New("storage failure")
	ErrInvalid  = errors.New("invalid entity")
)

const keyPrefix = "entity:"

// Entity is implemented by every record type kept in a Store.
type Entity interface {
	EntityID() string
}

// EntityKey returns the storage key holding the collection for name.
func EntityKey(name string) string {
	return keyPrefix + name
}

// NewID returns a fresh entity id.
func NewID() string {
	return "id-" + uuid.NewString()
}

type Option[T Entity] func(*Store[T])

// WithClock overrides the clock used for created_date.
func WithClock[T Entity](now func() time.Time) Option[T] {
	return func(s *Store[T]) { s.now = now }
}

// WithIDGenerator overrides how ids are assigned on Create.
func WithIDGenerator[T Entity](gen func() string) Option[T] {
	return func(s *Store[T]) { s.newID = gen }
}

// WithValidator installs a check run on every record before it is written.
func WithValidator[T Entity](validate func(T) error) Option[T] {
	return func(s *Store[T]) { s.validate = validate }
}

// Store keeps one entity collection as a single JSON array under entity:<name>.
// Every mutation rewrites the whole array; a failed write leaves the stored
// array as it was.
type Store[T Entity] struct {
	name     string
	key      string
	kv       KV
	logger   *logrus.Logger
	now      func() time.Time
	newID    func() string
	validate func(T) error

	mu       sync.RWMutex
	revision atomic.Uint64
}

func New[T Entity](kv KV, name string, logger *logrus.Logger, opts ...Option[T]) *Store[T] {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	s := &Store[T]{
		name:   name,
		key:    EntityKey(name),
		kv:     kv,
		logger: logger,
		now:    time.Now,
		newID:  NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the entity name the store is bound to.
func (s *Store[T]) Name() string {
	return s.name
}

// Revision increases after every successful write.
func (s *Store[T]) Revision() uint64 {
	return s.revision.Load()
}

// List returns the collection, optionally sorted by sortField ("-" prefix for
// descending) and truncated to limit records when limit > 0.
func (s *Store[T]) List(ctx context.Context, sortField string, limit int) ([]T, error) {
	s.mu.RLock()
	records, err := s.load(ctx)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if sortField != "" {
		records, err = sortRecords(records, sortField)
		if err != nil {
			return nil, err
		}
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Filter returns the records whose fields equal every value in criteria.
// An empty criteria map returns the whole collection in stored order.
func (s *Store[T]) Filter(ctx context.Context, criteria map[string]any) ([]T, error) {
	s.mu.RLock()
	records, err := s.load(ctx)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if len(criteria) == 0 {
		return records, nil
	}

	wanted, err := normalizeCriteria(criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	matched := make([]T, 0)
	for _, record := range records {
		f, err := fields(record)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to inspect %s record: %w", ErrStorage, s.name, err)
		}
		if matches(f, wanted) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// Get returns the record with id, or nil when there is none.
func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	s.mu.RLock()
	records, err := s.load(ctx)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if idx := indexOf(records, id); idx >= 0 {
		record := records[idx]
		return &record, nil
	}
	return nil, nil
}

// Create stores data under a fresh id, stamping created_date with the store clock.
func (s *Store[T]) Create(ctx context.Context, data T) (T, error) {
	var zero T

	f, err := fields(data)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	f["id"] = s.newID()
	f["created_date"] = s.now().UTC().Format(time.RFC3339Nano)

	entity, err := fromFields[T](f)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := s.check(entity); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return zero, err
	}
	if err := s.save(ctx, append(records, entity)); err != nil {
		return zero, err
	}

	s.logger.WithFields(logrus.Fields{"entity": s.name, "id": entity.EntityID()}).Debug("Created entity")
	return entity, nil
}

// Update merges patch into the record with id. The id itself never changes.
func (s *Store[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return zero, err
	}

	idx := indexOf(records, id)
	if idx < 0 {
		return zero, fmt.Errorf("%w: %s %s", ErrNotFound, s.name, id)
	}

	f, err := fields(records[idx])
	if err != nil {
		return zero, fmt.Errorf("%w: failed to inspect %s record: %w", ErrStorage, s.name, err)
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		f[k] = v
	}

	updated, err := fromFields[T](f)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := s.check(updated); err != nil {
		return zero, err
	}

	next := slices.Clone(records)
	next[idx] = updated
	if err := s.save(ctx, next); err != nil {
		return zero, err
	}
	return updated, nil
}

// Delete removes the record with id.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(records, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, s.name, id)
	}

	next := slices.Delete(slices.Clone(records), idx, idx+1)
	return s.save(ctx, next)
}

// Seed writes records as the initial collection if nothing has been stored yet.
// It reports whether the seed was written.
func (s *Store[T]) Seed(ctx context.Context, records []T) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return false, fmt.Errorf("%w: failed to read %s: %w", ErrStorage, s.key, err)
	}
	if ok {
		return false, nil
	}

	for _, record := range records {
		if err := s.check(record); err != nil {
			return false, err
		}
	}
	if err := s.save(ctx, slices.Clone(records)); err != nil {
		return false, err
	}

	s.logger.WithFields(logrus.Fields{"entity": s.name, "count": len(records)}).Info("Seeded collection")
	return true, nil
}

func (s *Store[T]) check(record T) error {
	if s.validate == nil {
		return nil
	}
	if err := s.validate(record); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (s *Store[T]) load(ctx context.Context) ([]T, error) {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrStorage, s.key, err)
	}
	if !ok {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrStorage, s.key, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (s *Store[T]) save(ctx context.Context, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %w", ErrStorage, s.key, err)
	}

	if err := s.kv.Put(ctx, s.key, data); err != nil {
		s.logger.WithError(err).WithField("key", s.key).Error("Failed to persist collection")
		return fmt.Errorf("%w: failed to write %s: %w", ErrStorage, s.key, err)
	}

	s.revision.Add(1)
	return nil
}

func indexOf[T Entity](records []T, id string) int {
	return slices.IndexFunc(records, func(r T) bool { return r.EntityID() == id })
}
