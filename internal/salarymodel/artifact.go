package salarymodel

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is the serialized regression estimator: an intercept and one
// coefficient per (feature column, category value) pair. It is exported from
// the training pipeline as JSON and loaded read-only, once, at startup.
type Artifact struct {
	Version      int                           `json:"version"`
	Intercept    float64                       `json:"intercept"`
	Coefficients map[string]map[string]float64 `json:"coefficients"`
}

// LoadArtifact reads and validates the artifact file at path.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if len(artifact.Coefficients) == 0 {
		return nil, fmt.Errorf("model artifact has no coefficients")
	}

	return &artifact, nil
}
