package materials

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

func TestCompaniesFiltering(t *testing.T) {
	svc := NewService(nil, logger.NewNoOpLogger())
	ctx := context.Background()

	t.Run("all companies", func(t *testing.T) {
		all := svc.Companies(ctx, "", "")
		assert.Len(t, all, 14)
	})

	t.Run("category filter", func(t *testing.T) {
		ecommerce := svc.Companies(ctx, "", models.CategoryEcommerce)
		require.Len(t, ecommerce, 2)
		assert.Equal(t, "Amazon", ecommerce[0].Name)
		assert.Equal(t, "Flipkart", ecommerce[1].Name)
	})

	t.Run("name search is case insensitive", func(t *testing.T) {
		hits := svc.Companies(ctx, "tcs", "")
		require.Len(t, hits, 1)
		assert.Equal(t, "TCS", hits[0].Name)
	})

	t.Run("full name matches too", func(t *testing.T) {
		hits := svc.Companies(ctx, "tata", "")
		require.Len(t, hits, 1)
		assert.Equal(t, "TCS", hits[0].Name)
	})

	t.Run("search and category combine", func(t *testing.T) {
		hits := svc.Companies(ctx, "a", models.CategoryConsulting)
		for _, c := range hits {
			assert.Equal(t, models.CategoryConsulting, c.Category)
		}
		assert.NotEmpty(t, hits)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, svc.Companies(ctx, "zzzz", ""))
	})
}

func TestCompanyLookup(t *testing.T) {
	svc := NewService(nil, logger.NewNoOpLogger())

	c := svc.Company("amazon")
	require.NotNil(t, c)
	assert.Equal(t, "Amazon", c.Name)
	assert.NotEmpty(t, c.Materials)

	assert.Nil(t, svc.Company("Unknown Corp"))
}

type failingSearcher struct{}

func (failingSearcher) Search(context.Context, string, string) ([]models.Company, error) {
	return nil, stderrors.New("connection refused")
}

type cannedSearcher struct{ result []models.Company }

func (c cannedSearcher) Search(context.Context, string, string) ([]models.Company, error) {
	return c.result, nil
}

func TestCompaniesBackendFallback(t *testing.T) {
	svc := NewService(failingSearcher{}, logger.NewNoOpLogger())

	// Backend failure degrades to the built-in catalog.
	hits := svc.Companies(context.Background(), "tcs", "")
	require.Len(t, hits, 1)
	assert.Equal(t, "TCS", hits[0].Name)
}

func TestCompaniesBackendAnswers(t *testing.T) {
	canned := []models.Company{{Name: "ES Corp", Category: models.CategoryITServices}}
	svc := NewService(cannedSearcher{result: canned}, logger.NewNoOpLogger())

	hits := svc.Companies(context.Background(), "anything", "")
	require.Len(t, hits, 1)
	assert.Equal(t, "ES Corp", hits[0].Name)
}

func TestBuildCompanyQuery(t *testing.T) {
	t.Run("match all", func(t *testing.T) {
		q := buildCompanyQuery("", models.CategoryAll)
		assert.Contains(t, q["query"].(map[string]interface{}), "match_all")
	})

	t.Run("bool with both clauses", func(t *testing.T) {
		q := buildCompanyQuery("amazon", models.CategoryEcommerce)
		boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
		must := boolQuery["must"].([]map[string]interface{})
		require.Len(t, must, 2)
	})
}

func TestCategoryDisplayName(t *testing.T) {
	assert.Equal(t, "All Companies", CategoryDisplayName(models.CategoryAll))
	assert.Equal(t, "IT Services", CategoryDisplayName(models.CategoryITServices))
	assert.Equal(t, "E-Commerce", CategoryDisplayName(models.CategoryEcommerce))
	assert.Equal(t, "other", CategoryDisplayName("other"))
}
