package prediction

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bcasprint-backend/internal/catalog"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

type fakePredictor struct {
	salary   float64
	err      error
	profiles []models.Profile
}

func (f *fakePredictor) Predict(p models.Profile) (float64, error) {
	f.profiles = append(f.profiles, p)
	if f.err != nil {
		return 0, f.err
	}
	return f.salary, nil
}

type fakeRecommender struct {
	estimate   float64
	estimateOK bool
	lastMin    float64
	lastMax    float64
	lastRole   string
}

func (f *fakeRecommender) Recommend(_ context.Context, salaryMin, salaryMax float64, role, _ string) []models.Recommendation {
	f.lastMin = salaryMin
	f.lastMax = salaryMax
	f.lastRole = role
	return []models.Recommendation{{Name: "Advanced SQL", Reason: "r", Link: "l", Priority: "High"}}
}

func (f *fakeRecommender) PseudoPredict(context.Context, models.Profile, string) (float64, bool) {
	return f.estimate, f.estimateOK
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []string
}

func (f *fakeRecorder) LogPrediction(_ context.Context, username, role, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, username+"|"+role+"|"+value)
	return nil
}

func (f *fakeRecorder) wait(t *testing.T) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		n := len(f.entries)
		f.mu.Unlock()
		if n > 0 {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.entries[0]
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("prediction was never recorded")
	return ""
}

func catalogProfile() models.Profile {
	return models.Profile{
		District:      "Pune",
		CompanyType:   "Startup",
		JobRoleLevel:  "Software Developer - GET",
		InternshipExp: "6-12 months",
		CGPA:          "8.0-8.9",
		CollegeTier:   "Tier-2",
	}
}

func newOrchestrator(model *fakePredictor, rec *fakeRecommender, recorder *fakeRecorder) *Orchestrator {
	cat := catalog.NewWithDataset(catalog.DummyDataset(), logger.NewNoOpLogger())
	var r Recorder
	if recorder != nil {
		r = recorder
	}
	return New(model, cat, rec, r, nil, logger.NewNoOpLogger())
}

func TestPredictCatalogBranch(t *testing.T) {
	model := &fakePredictor{salary: 500000}
	rec := &fakeRecommender{}
	recorder := &fakeRecorder{}
	o := newOrchestrator(model, rec, recorder)

	result, err := o.Predict(context.Background(), "asha", catalogProfile(), "")
	require.NoError(t, err)

	// 500000 * 0.90 = 450000, band half-width 45000.
	assert.Equal(t, 450000.0, result.Center)
	assert.Equal(t, 405000.0, result.Min)
	assert.Equal(t, 495000.0, result.Max)
	assert.False(t, result.CustomRole)
	assert.Empty(t, result.Warning)
	require.Len(t, result.Recommendations, 1)

	assert.Equal(t, 405000.0, rec.lastMin)
	assert.Equal(t, 495000.0, rec.lastMax)
	assert.Equal(t, "Software Developer - GET", rec.lastRole)

	entry := recorder.wait(t)
	assert.Equal(t, "asha|Software Developer - GET|₹ 405,000 - 495,000 (Center: 450,000)", entry)
}

func TestPredictInternshipNoneRewrite(t *testing.T) {
	model := &fakePredictor{salary: 500000}
	o := newOrchestrator(model, &fakeRecommender{}, nil)

	profile := catalogProfile()
	profile.InternshipExp = "None"

	result, err := o.Predict(context.Background(), "asha", profile, "")
	require.NoError(t, err)

	// The model sees the folded bucket; the response keeps the original.
	require.Len(t, model.profiles, 1)
	assert.Equal(t, "< 6 months", model.profiles[0].InternshipExp)
	assert.Equal(t, "None", result.Profile.InternshipExp)
}

func TestPredictModelFailure(t *testing.T) {
	model := &fakePredictor{err: stderrors.New("artifact corrupt")}
	o := newOrchestrator(model, &fakeRecommender{}, nil)

	result, err := o.Predict(context.Background(), "asha", catalogProfile(), "")
	require.NoError(t, err)

	assert.Equal(t, 300000.0, result.Center)
	assert.Equal(t, 270000.0, result.Min)
	assert.Equal(t, 330000.0, result.Max)
	assert.NotEmpty(t, result.Warning)
}

func TestPredictCatalogClamp(t *testing.T) {
	t.Run("ceiling", func(t *testing.T) {
		model := &fakePredictor{salary: 3000000}
		o := newOrchestrator(model, &fakeRecommender{}, nil)

		result, err := o.Predict(context.Background(), "asha", catalogProfile(), "")
		require.NoError(t, err)
		assert.Equal(t, 1500000.0, result.Center)
	})

	t.Run("floor with band floor", func(t *testing.T) {
		model := &fakePredictor{salary: 100000}
		o := newOrchestrator(model, &fakeRecommender{}, nil)

		result, err := o.Predict(context.Background(), "asha", catalogProfile(), "")
		require.NoError(t, err)
		// Clamped center 180000, half-width 25000; the lower bound stays
		// at the entry-level floor.
		assert.Equal(t, 180000.0, result.Center)
		assert.Equal(t, 180000.0, result.Min)
		assert.Equal(t, 205000.0, result.Max)
	})
}

func TestPredictCustomBranch(t *testing.T) {
	rec := &fakeRecommender{estimate: 800000, estimateOK: true}
	recorder := &fakeRecorder{}
	o := newOrchestrator(&fakePredictor{}, rec, recorder)

	profile := catalogProfile()
	profile.JobRoleLevel = models.NotListedRole

	result, err := o.Predict(context.Background(), "ravi", profile, "Game Developer")
	require.NoError(t, err)

	assert.True(t, result.CustomRole)
	assert.Equal(t, 800000.0, result.Center)
	assert.Equal(t, 720000.0, result.Min)
	assert.Equal(t, 880000.0, result.Max)
	assert.Equal(t, "Game Developer", rec.lastRole)

	entry := recorder.wait(t)
	assert.Contains(t, entry, "ravi|Game Developer|")
}

func TestPredictCustomEstimateUnavailable(t *testing.T) {
	rec := &fakeRecommender{estimateOK: false}
	o := newOrchestrator(&fakePredictor{}, rec, nil)

	profile := catalogProfile()
	profile.JobRoleLevel = models.NotListedRole

	result, err := o.Predict(context.Background(), "ravi", profile, "Game Developer")
	require.NoError(t, err)

	assert.Equal(t, 300000.0, result.Center)
	assert.NotEmpty(t, result.Warning)
}

func TestPredictCustomRoleRequired(t *testing.T) {
	o := newOrchestrator(&fakePredictor{}, &fakeRecommender{}, nil)

	profile := catalogProfile()
	profile.JobRoleLevel = models.NotListedRole

	_, err := o.Predict(context.Background(), "ravi", profile, "   ")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.CodeOf(err))
}

func TestPredictRejectsUnknownFieldValue(t *testing.T) {
	o := newOrchestrator(&fakePredictor{salary: 500000}, &fakeRecommender{}, nil)

	profile := catalogProfile()
	profile.CollegeTier = "Tier-9"

	_, err := o.Predict(context.Background(), "asha", profile, "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.CodeOf(err))
}

func TestBuildBandRounding(t *testing.T) {
	salaryMin, salaryMax := buildBand(333333)
	assert.Equal(t, 300000.0, salaryMin)
	assert.Equal(t, 367000.0, salaryMax)
}

// Only the band bounds are rounded; the center carries the exact clamped
// model output, fractions included.
func TestPredictKeepsExactCenter(t *testing.T) {
	o := newOrchestrator(&fakePredictor{salary: 512345}, &fakeRecommender{}, nil)

	result, err := o.Predict(context.Background(), "asha", catalogProfile(), "")
	require.NoError(t, err)

	assert.Equal(t, 461110.5, result.Center) // 512345 * 0.90, unrounded
	assert.Equal(t, 415000.0, result.Min)
	assert.Equal(t, 507000.0, result.Max)
}

func TestPredictCustomKeepsExactCenter(t *testing.T) {
	rec := &fakeRecommender{estimate: 456789, estimateOK: true}
	o := newOrchestrator(&fakePredictor{}, rec, nil)

	profile := catalogProfile()
	profile.JobRoleLevel = models.NotListedRole

	result, err := o.Predict(context.Background(), "asha", profile, "Blockchain Engineer")
	require.NoError(t, err)

	assert.Equal(t, 456789.0, result.Center)
	assert.Equal(t, 411000.0, result.Min)
	assert.Equal(t, 502000.0, result.Max)
}
