// Package prediction runs the salary pipeline: model inference or AI
// estimation, band construction, recommendations and the audit write.
package prediction

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"bcasprint-backend/internal/catalog"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/common/metrics"
	"bcasprint-backend/internal/common/observability"
	"bcasprint-backend/internal/models"
	"bcasprint-backend/internal/salarymodel"
)

const (
	// FallbackCenter is used when neither the model nor the AI estimator
	// can produce a center salary.
	FallbackCenter = 300000.0

	// Model output is scaled down before banding; entry-level offers run
	// below the dataset's reported averages.
	companyFactor = 0.90

	catalogFloor   = 180000.0
	catalogCeiling = 1500000.0

	bandRate      = 0.10
	bandMinOffset = 25000.0
	bandFloor     = 180000.0
)

const (
	branchCatalog = "catalog"
	branchCustom  = "custom"
)

// Recommender produces skill recommendations and free-text role estimates.
// Satisfied by recommend.Client.
type Recommender interface {
	Recommend(ctx context.Context, salaryMin, salaryMax float64, role, district string) []models.Recommendation
	PseudoPredict(ctx context.Context, profile models.Profile, customRole string) (float64, bool)
}

// Recorder persists completed predictions. Satisfied by store.Predictions.
type Recorder interface {
	LogPrediction(ctx context.Context, username, role, value string) error
}

type Orchestrator struct {
	model       salarymodel.Predictor
	catalog     *catalog.Catalog
	recommender Recommender
	recorder    Recorder
	obs         *observability.Observability
	logger      logger.Logger
}

func New(model salarymodel.Predictor, cat *catalog.Catalog, rec Recommender, recorder Recorder, obs *observability.Observability, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		model:       model,
		catalog:     cat,
		recommender: rec,
		recorder:    recorder,
		obs:         obs,
		logger:      log.WithFields(map[string]interface{}{"component": "prediction"}),
	}
}

// Predict runs the full pipeline for one profile. customRole is consulted
// only when profile.JobRoleLevel is the "Not Listed" sentinel. The returned
// result always carries a salary band and a non-empty recommendation list;
// degraded paths set Warning instead of failing.
func (o *Orchestrator) Predict(ctx context.Context, username string, profile models.Profile, customRole string) (*models.PredictionResult, error) {
	start := time.Now()

	isCustom := profile.JobRoleLevel == models.NotListedRole
	customRole = strings.TrimSpace(customRole)
	if isCustom && customRole == "" {
		return nil, errors.NewValidationError("custom role name is required when the role is not listed")
	}

	if err := o.validateProfile(profile, isCustom); err != nil {
		return nil, err
	}

	branch := branchCatalog
	role := profile.JobRoleLevel
	if isCustom {
		branch = branchCustom
		role = customRole
	}

	var center float64
	var warning string
	if isCustom {
		center, warning = o.estimateCustom(ctx, profile, customRole)
	} else {
		center, warning = o.predictCatalog(profile)
	}

	salaryMin, salaryMax := buildBand(center)

	recs := o.recommender.Recommend(ctx, salaryMin, salaryMax, role, profile.District)

	result := &models.PredictionResult{
		Center:          center,
		Min:             salaryMin,
		Max:             salaryMax,
		Recommendations: recs,
		Profile:         profile,
		CustomRole:      isCustom,
		Warning:         warning,
	}

	o.record(username, role, result)

	elapsed := time.Since(start)
	metrics.PredictionsTotal.WithLabelValues(branch).Inc()
	metrics.PredictionDuration.WithLabelValues(branch).Observe(elapsed.Seconds())
	if o.obs != nil {
		o.obs.RecordPrediction(ctx, branch)
		o.obs.RecordPredictionDuration(ctx, elapsed, branch)
	}

	o.logger.Info("prediction completed", map[string]interface{}{
		"username": username,
		"role":     role,
		"branch":   branch,
		"center":   center,
	})
	return result, nil
}

// validateProfile rejects field values outside the form options. The role
// field is exempt for custom predictions where it carries the sentinel.
func (o *Orchestrator) validateProfile(profile models.Profile, isCustom bool) error {
	if o.catalog == nil {
		return nil
	}
	options := o.catalog.FieldOptions()
	for _, field := range models.FeatureColumns {
		if field == models.FieldJobRoleLevel && isCustom {
			continue
		}
		allowed, ok := options[field]
		if !ok || len(allowed) == 0 {
			continue
		}
		value := profile.Get(field)
		found := false
		for _, v := range allowed {
			if v == value {
				found = true
				break
			}
		}
		if !found {
			return errors.NewValidationError(fmt.Sprintf("invalid value %q for %s", value, field))
		}
	}
	return nil
}

// estimateCustom asks the AI estimator for a center salary, falling back to
// the fixed default when it is unavailable.
func (o *Orchestrator) estimateCustom(ctx context.Context, profile models.Profile, customRole string) (float64, string) {
	estimate, ok := o.recommender.PseudoPredict(ctx, profile, customRole)
	if !ok {
		metrics.PredictionFallbacks.WithLabelValues("ai_unavailable").Inc()
		return FallbackCenter, "AI salary estimate unavailable; showing a typical fresher range."
	}
	return estimate, ""
}

// predictCatalog runs the regression model. The "None" internship bucket is
// folded into "< 6 months" before inference; the training data has no rows
// for it and the two buckets price identically at entry level.
func (o *Orchestrator) predictCatalog(profile models.Profile) (float64, string) {
	if profile.InternshipExp == "None" {
		profile.InternshipExp = "< 6 months"
	}

	raw, err := o.model.Predict(profile)
	if err != nil {
		modelErr := errors.NewModelPredictionFailedError(err)
		o.logger.Error("model inference failed", map[string]interface{}{"error": modelErr.Error()})
		metrics.PredictionFallbacks.WithLabelValues("model_error").Inc()
		return FallbackCenter, "Salary model unavailable; showing a typical fresher range."
	}

	center := raw * companyFactor
	if center < catalogFloor {
		center = catalogFloor
	}
	if center > catalogCeiling {
		center = catalogCeiling
	}
	return center, ""
}

// buildBand derives the displayed range from the center estimate. The band
// half-width is 10% of the center with a 25,000 minimum, the bounds are
// rounded to the nearest thousand (the center itself is never rounded),
// and the lower bound never drops below the entry-level floor.
func buildBand(center float64) (salaryMin, salaryMax float64) {
	offset := center * bandRate
	if offset < bandMinOffset {
		offset = bandMinOffset
	}

	salaryMin = roundThousand(center - offset)
	salaryMax = roundThousand(center + offset)

	if salaryMin < bandFloor {
		salaryMin = bandFloor
	}
	return salaryMin, salaryMax
}

func roundThousand(v float64) float64 {
	return math.Round(v/1000.0) * 1000.0
}

// record writes the prediction audit row without blocking the response.
func (o *Orchestrator) record(username, role string, result *models.PredictionResult) {
	if o.recorder == nil {
		return
	}
	value := FormatRange(result.Min, result.Max, result.Center)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := o.recorder.LogPrediction(ctx, username, role, value); err != nil {
			o.logger.Warn("failed to log prediction", map[string]interface{}{
				"username": username,
				"error":    err.Error(),
			})
		}
	}()
}
