// Package recommend is the client for the hosted generative-language
// service: skill recommendations for a predicted salary band and
// pseudo-predictions for roles the regression model was never trained on.
// Every failure mode degrades to a usable result; errors never reach the
// caller's user.
package recommend

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/common/metrics"
	"bcasprint-backend/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// Pseudo-prediction estimates are clamped to this admissible range.
const (
	PseudoPredictFloor   = 200000.0
	PseudoPredictCeiling = 2000000.0
)

// recommendationSchema validates the parsed array before it is trusted.
// Priority is requested by the prompt but tolerated when absent.
const recommendationSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name", "reason", "link"],
		"properties": {
			"name":     {"type": "string", "minLength": 1},
			"reason":   {"type": "string"},
			"link":     {"type": "string"},
			"priority": {"type": "string"}
		}
	}
}`

// Client wraps the generative-language transport with prompt construction,
// response extraction and the canned fallbacks.
type Client struct {
	transport Transport
	timeout   time.Duration
	schema    *gojsonschema.Schema
	logger    logger.Logger
}

func NewClient(cfg config.APIsConfig, log logger.Logger) *Client {
	return NewClientWithTransport(NewTransport(cfg, log), config.GetDuration(cfg.GenAI.Timeout), log)
}

// NewClientWithTransport wires a custom transport; used by tests.
func NewClientWithTransport(transport Transport, timeout time.Duration, log logger.Logger) *Client {
	schemaLoader := gojsonschema.NewStringLoader(recommendationSchema)
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		// The schema is a compile-time constant; this only fires on a typo.
		panic("recommend: invalid recommendation schema: " + err.Error())
	}
	return &Client{
		transport: transport,
		timeout:   timeout,
		schema:    schema,
		logger:    log.WithFields(map[string]interface{}{"component": "recommend"}),
	}
}

// Recommend returns at most 4 skill recommendations for the salary band and
// role. Any transport, parse or validation failure yields the fixed fallback
// list; the error is logged, never returned.
func (c *Client) Recommend(ctx context.Context, salaryMin, salaryMax float64, role, district string) []models.Recommendation {
	prompt := buildRecommendationPrompt(salaryMin, salaryMax, role, district)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.transport.Generate(callCtx, prompt)
	if err != nil {
		c.logger.Warn("recommendation call failed, using fallback", map[string]interface{}{
			"role":  role,
			"error": err.Error(),
		})
		metrics.GenAICalls.WithLabelValues("recommend", "fallback").Inc()
		return FallbackRecommendations(role)
	}

	recs, parseErr := c.parseRecommendations(raw)
	if parseErr != nil {
		c.logger.Warn("recommendation response unparseable, using fallback", map[string]interface{}{
			"role":  role,
			"error": parseErr.Error(),
		})
		metrics.GenAICalls.WithLabelValues("recommend", "fallback").Inc()
		return FallbackRecommendations(role)
	}

	metrics.GenAICalls.WithLabelValues("recommend", "ok").Inc()
	return recs
}

func (c *Client) parseRecommendations(raw string) ([]models.Recommendation, *errors.StandardError) {
	parsed := ExtractJSONArray(raw)
	if parsed == nil {
		return nil, errors.NewGenAIParseFailedError("no JSON array found in response")
	}

	result, err := c.schema.Validate(gojsonschema.NewGoLoader(parsed))
	if err != nil {
		return nil, errors.NewGenAIParseFailedError(err.Error())
	}
	if !result.Valid() {
		return nil, errors.NewGenAIParseFailedError(fmt.Sprintf("schema violations: %v", result.Errors()))
	}
	if len(parsed) == 0 {
		return nil, errors.NewGenAIParseFailedError("empty recommendation array")
	}

	recs := make([]models.Recommendation, 0, len(parsed))
	for _, obj := range parsed {
		rec := models.Recommendation{
			Name:     stringField(obj, "name"),
			Reason:   stringField(obj, "reason"),
			Link:     stringField(obj, "link"),
			Priority: stringField(obj, "priority"),
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func stringField(obj map[string]interface{}, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

// PseudoPredict asks the service for a bare numeric center salary for a
// free-text role. Returns (0, false) on any failure; the caller applies its
// own default. Successful estimates are clamped to the admissible range.
func (c *Client) PseudoPredict(ctx context.Context, profile models.Profile, customRole string) (float64, bool) {
	prompt := buildPseudoPredictPrompt(profile, customRole)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.transport.Generate(callCtx, prompt)
	if err != nil {
		c.logger.Warn("pseudo-prediction call failed", map[string]interface{}{
			"role":  customRole,
			"error": err.Error(),
		})
		metrics.GenAICalls.WithLabelValues("pseudo_predict", "error").Inc()
		return 0, false
	}

	estimate, err := strconv.ParseFloat(SanitizeNumber(raw), 64)
	if err != nil {
		metrics.GenAICalls.WithLabelValues("pseudo_predict", "error").Inc()
		return 0, false
	}

	if estimate < PseudoPredictFloor {
		estimate = PseudoPredictFloor
	}
	if estimate > PseudoPredictCeiling {
		estimate = PseudoPredictCeiling
	}

	metrics.GenAICalls.WithLabelValues("pseudo_predict", "ok").Inc()
	return estimate, true
}
