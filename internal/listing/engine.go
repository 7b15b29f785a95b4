package listing

import (
	"fmt"
	"os"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"vicmar/server/internal/models"
)

type cacheKey struct {
	query    Query
	revision uint64
}

// Engine memoizes Apply on the query and the catalog revision the
// properties were read at. A new revision never reuses older entries.
type Engine struct {
	cache  *lru.Cache[cacheKey, []models.Property]
	logger *logrus.Logger
}

func NewEngine(size int, logger *logrus.Logger) (*Engine, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	cache, err := lru.New[cacheKey, []models.Property](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing cache: %w", err)
	}
	return &Engine{cache: cache, logger: logger}, nil
}

// Filter returns the filtered and sorted listings for q. props must be the
// catalog as of revision.
func (e *Engine) Filter(q Query, revision uint64, props []models.Property) []models.Property {
	q = q.Normalize()
	key := cacheKey{query: q, revision: revision}
	key.query.Search = strings.ToLower(q.Search)

	if cached, ok := e.cache.Get(key); ok {
		return slices.Clone(cached)
	}

	result := Apply(props, q)
	e.cache.Add(key, result)
	e.logger.WithFields(logrus.Fields{
		"revision": revision,
		"search":   q.Search,
		"type":     q.PropertyType,
		"status":   q.Status,
		"results":  len(result),
	}).Debug("Computed listing filter")

	return slices.Clone(result)
}

// Len reports the number of memoized results.
func (e *Engine) Len() int {
	return e.cache.Len()
}
