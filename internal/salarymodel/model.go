// Package salarymodel wraps the pre-fitted salary regression artifact.
// The adapter is selected once at startup: the real model when the artifact
// file loads, a constant-output stub otherwise, so callers never block on a
// missing model file.
package salarymodel

import (
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

// StubSalary is the constant returned by the degraded-mode adapter.
const StubSalary = 350000

// Predictor estimates an annual salary for a fully-populated profile.
type Predictor interface {
	Predict(profile models.Profile) (float64, error)
}

// Load selects the adapter implementation for the artifact at path.
func Load(path string, log logger.Logger) Predictor {
	artifact, err := LoadArtifact(path)
	if err != nil {
		log.Warn("model artifact unavailable, using stub adapter", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return &StubModel{}
	}
	log.Info("salary model loaded", map[string]interface{}{
		"path":     path,
		"features": len(artifact.Coefficients),
	})
	return &LinearModel{artifact: artifact}
}

// LinearModel scores a one-hot encoded profile against the fitted
// coefficients: intercept plus the coefficient of each (field, value) pair.
// Unknown category values contribute nothing, the usual one-hot encoder
// treatment of unseen levels.
type LinearModel struct {
	artifact *Artifact
}

func (m *LinearModel) Predict(profile models.Profile) (float64, error) {
	salary := m.artifact.Intercept
	for _, field := range models.FeatureColumns {
		if weights, ok := m.artifact.Coefficients[field]; ok {
			salary += weights[profile.Get(field)]
		}
	}
	return salary, nil
}

// StubModel satisfies the Predictor contract with a fixed output.
type StubModel struct{}

func (m *StubModel) Predict(models.Profile) (float64, error) {
	return StubSalary, nil
}
