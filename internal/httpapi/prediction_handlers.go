package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/models"
	"bcasprint-backend/internal/prediction"
)

type predictRequest struct {
	Profile    models.Profile `json:"profile"`
	CustomRole string         `json:"custom_role"`
}

func (s *Server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	sess := currentSession(c)
	if err := s.sessions.CheckPredictionQuota(sess); err != nil {
		respondError(c, err)
		return
	}

	result, err := s.orchestrator.Predict(c.Request.Context(), sess.Username, req.Profile, req.CustomRole)
	if err != nil {
		respondError(c, err)
		return
	}

	// The slot is spent only once the prediction succeeded; rejected
	// submissions leave the quota untouched.
	if err := s.sessions.ConsumePrediction(c.Request.Context(), sess); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"range":           prediction.FormatRange(result.Min, result.Max, result.Center),
		"min":             result.Min,
		"max":             result.Max,
		"center":          result.Center,
		"recommendations": result.Recommendations,
		"custom_role":     result.CustomRole,
		"warning":         result.Warning,
	})
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.FieldOptions())
}

func (s *Server) handleHistory(c *gin.Context) {
	sess := currentSession(c)
	entries, err := s.store.UserHistory(c.Request.Context(), sess.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

type feedbackRequest struct {
	JobRole         string `json:"job_role" binding:"required"`
	PredictedSalary string `json:"predicted_salary"`
	ActualSalary    string `json:"actual_salary"`
	AccuracyRating  string `json:"accuracy_rating" binding:"required"`
}

func (s *Server) handleFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	sess := currentSession(c)
	fb := models.Feedback{
		Username:        sess.Username,
		JobRole:         req.JobRole,
		PredictedSalary: req.PredictedSalary,
		ActualSalary:    req.ActualSalary,
		AccuracyRating:  req.AccuracyRating,
	}
	if err := s.store.LogFeedback(c.Request.Context(), fb); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback recorded. Thank you!"})
}
