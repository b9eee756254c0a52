package materials

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

const companyIndex = "companies"

// ElasticSearcher serves company lookups from an Elasticsearch index.
type ElasticSearcher struct {
	client *elasticsearch.Client
	logger logger.Logger
}

func NewElasticSearcher(client *elasticsearch.Client, log logger.Logger) *ElasticSearcher {
	return &ElasticSearcher{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "materials-es"}),
	}
}

// IndexCatalog writes the built-in catalog into the company index so
// searches and the static page agree.
func (s *ElasticSearcher) IndexCatalog(ctx context.Context) error {
	for _, company := range Catalog() {
		body, err := json.Marshal(company)
		if err != nil {
			return fmt.Errorf("failed to marshal company %s: %w", company.Name, err)
		}

		req := esapi.IndexRequest{
			Index:      companyIndex,
			DocumentID: strings.ToLower(strings.ReplaceAll(company.Name, " ", "-")),
			Body:       strings.NewReader(string(body)),
		}
		res, err := req.Do(ctx, s.client)
		if err != nil {
			return errors.NewSearchQueryFailedError(err)
		}
		res.Body.Close()
		if res.IsError() {
			return errors.NewSearchQueryFailedError(fmt.Errorf("index %s: %s", company.Name, res.Status()))
		}
	}
	s.logger.Info("company catalog indexed", map[string]interface{}{"count": len(Catalog())})
	return nil
}

func (s *ElasticSearcher) Search(ctx context.Context, query, category string) ([]models.Company, error) {
	queryBody := buildCompanyQuery(query, category)
	body, _ := json.Marshal(queryBody)

	size := 50
	req := esapi.SearchRequest{
		Index: []string{companyIndex},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("search: %s", res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Company `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	out := make([]models.Company, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}

func buildCompanyQuery(query, category string) map[string]interface{} {
	var must []map[string]interface{}

	if query != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "full_name", "description"},
			},
		})
	}
	if category != "" && category != models.CategoryAll {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{
				"category": category,
			},
		})
	}

	if len(must) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
}
