package catalog

import (
	"context"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"vicmar/server/internal/listing"
	"vicmar/server/internal/models"
	"vicmar/server/internal/store"
)

type snapshot struct {
	loaded   bool
	revision uint64
	props    []models.Property
}

// Service fronts the property store for the HTTP layer. It keeps an
// in-memory snapshot of the catalog for the listing engine and refreshes it
// after every mutation.
type Service struct {
	props  *store.Store[models.Property]
	engine *listing.Engine
	logger *logrus.Logger

	seq  listing.Sequencer
	mu   sync.RWMutex
	snap snapshot
}

func NewService(props *store.Store[models.Property], engine *listing.Engine, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Service{
		props:  props,
		engine: engine,
		logger: logger,
	}
}

// NewPropertyStore binds a store to the property collection with record validation.
func NewPropertyStore(kv store.KV, logger *logrus.Logger) *store.Store[models.Property] {
	return store.New[models.Property](kv, "property", logger,
		store.WithValidator[models.Property](models.Property.Validate))
}

// Seed writes the built-in catalog when the store holds no properties yet.
func (s *Service) Seed(ctx context.Context) error {
	written, err := s.props.Seed(ctx, SeedProperties())
	if err != nil {
		return err
	}
	if !written {
		s.logger.Debug("Property catalog already present, skipping seed")
	}
	return s.Refresh(ctx)
}

func (s *Service) List(ctx context.Context, sortField string, limit int) ([]models.Property, error) {
	return s.props.List(ctx, sortField, limit)
}

func (s *Service) Filter(ctx context.Context, criteria map[string]any) ([]models.Property, error) {
	return s.props.Filter(ctx, criteria)
}

// Get returns the property with id, or nil when there is none.
func (s *Service) Get(ctx context.Context, id string) (*models.Property, error) {
	return s.props.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, p models.Property) (models.Property, error) {
	created, err := s.props.Create(ctx, p)
	if err != nil {
		return created, err
	}
	s.refreshAfterWrite(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]any) (models.Property, error) {
	updated, err := s.props.Update(ctx, id, patch)
	if err != nil {
		return updated, err
	}
	s.refreshAfterWrite(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.props.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshAfterWrite(ctx)
	return nil
}

// Refresh reloads the snapshot. Concurrent refreshes may finish in any order;
// only the most recently started one that completes is kept.
func (s *Service) Refresh(ctx context.Context) error {
	ticket := s.seq.Next()
	revision := s.props.Revision()

	props, err := s.props.List(ctx, "", 0)
	if err != nil {
		return err
	}

	published := s.seq.Publish(ticket, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.snap = snapshot{loaded: true, revision: revision, props: props}
	})
	if !published {
		s.logger.WithField("ticket", ticket).Debug("Discarded stale catalog snapshot")
	}
	return nil
}

func (s *Service) refreshAfterWrite(ctx context.Context) {
	// the write already succeeded; a stale snapshot is reloaded on the next read
	if err := s.Refresh(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to refresh catalog snapshot")
	}
}

func (s *Service) current(ctx context.Context) (snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap.loaded && snap.revision == s.props.Revision() {
		return snap, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, nil
}

// Listings runs the listing filter over the current catalog.
func (s *Service) Listings(ctx context.Context, q listing.Query) ([]models.Property, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Filter(q, snap.revision, snap.props), nil
}

// TypeSummaries reports per-type counts and price spans of the catalog.
func (s *Service) TypeSummaries(ctx context.Context) ([]models.PropertyTypeSummary, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return listing.SummarizeTypes(snap.props), nil
}
