package materials

import (
	"context"
	"strings"

	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

// Searcher answers company lookups. The Elasticsearch backend implements it;
// nil means the in-memory catalog answers alone.
type Searcher interface {
	Search(ctx context.Context, query, category string) ([]models.Company, error)
}

type Service struct {
	searcher Searcher
	logger   logger.Logger
}

func NewService(searcher Searcher, log logger.Logger) *Service {
	return &Service{
		searcher: searcher,
		logger:   log.WithFields(map[string]interface{}{"component": "materials"}),
	}
}

// Companies returns the catalog filtered by name substring and category.
// When a search backend is configured it answers first; any backend failure
// falls back to the in-memory catalog.
func (s *Service) Companies(ctx context.Context, query, category string) []models.Company {
	if category == "" {
		category = models.CategoryAll
	}

	if s.searcher != nil {
		results, err := s.searcher.Search(ctx, query, category)
		if err == nil {
			return results
		}
		s.logger.Warn("search backend unavailable, using built-in catalog", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return filterCompanies(query, category)
}

// Company returns a single catalog entry by name, or nil.
func (s *Service) Company(name string) *models.Company {
	for i := range companies {
		if strings.EqualFold(companies[i].Name, name) {
			c := companies[i]
			return &c
		}
	}
	return nil
}

// Catalog exposes the full built-in catalog, for indexing.
func Catalog() []models.Company {
	out := make([]models.Company, len(companies))
	copy(out, companies)
	return out
}

func filterCompanies(query, category string) []models.Company {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []models.Company
	for _, c := range companies {
		if category != models.CategoryAll && c.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(strings.ToLower(c.FullName), query) {
			continue
		}
		out = append(out, c)
	}
	return out
}
