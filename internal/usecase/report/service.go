package report

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/simulak/simulak-backend/internal/domain"
)

const (
	// DefaultCacheExpiration bounds how long a projected report is reused
	DefaultCacheExpiration = 5 * time.Minute
	// CacheCleanupInterval is how often expired projections are evicted
	CacheCleanupInterval = 10 * time.Minute
)

// Service serves report projections with caching. Cache keys include the
// simulation's UpdatedAt, so a recalculated simulation never serves stale
// rows; the superseded entries simply age out.
type Service struct {
	cache *cache.Cache
}

// NewService creates a new report Service instance
func NewService(reportCache *cache.Cache) *Service {
	if reportCache == nil {
		reportCache = cache.New(DefaultCacheExpiration, CacheCleanupInterval)
	}
	return &Service{cache: reportCache}
}

// Rows projects the simulation at the requested granularity, serving from
// cache when the same version of the simulation was projected before
func (s *Service) Rows(sim *domain.Simulation, granularity Granularity) ([]Row, error) {
	key := fmt.Sprintf("%s:%s:%d", sim.ID, granularity, sim.UpdatedAt.UnixNano())
	if cached, found := s.cache.Get(key); found {
		return cached.([]Row), nil
	}

	rows, err := Project(sim, granularity)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, rows, cache.DefaultExpiration)
	return rows, nil
}
