package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/models"
	"bcasprint-backend/internal/watchdog"
)

type watchdogAnalyzeRequest struct {
	ResumeText     string `json:"resume_text"`
	ManualRole     string `json:"manual_role"`
	ManualLocation string `json:"manual_location"`
}

func (s *Server) handleWatchdogAnalyze(c *gin.Context) {
	var req watchdogAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	analysis := watchdog.AnalyzeProfile(req.ResumeText, req.ManualRole, req.ManualLocation)
	if analysis == nil {
		respondError(c, errors.NewValidationError("provide resume text, or both a role and a location"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":  analysis.Query,
		"source": analysis.Source,
		"skills": analysis.Skills,
		"links":  watchdog.SearchLinks(analysis.Query),
	})
}

type watchdogSendRequest struct {
	Query  string `json:"query" binding:"required"`
	Source string `json:"source"`
	Phone  string `json:"phone"`
}

func (s *Server) handleWatchdogSend(c *gin.Context) {
	var req watchdogSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	sess := currentSession(c)
	if err := s.watchdogSvc.SendReport(c.Request.Context(), sess.Email, sess.Username, req.Phone, req.Query, req.Source); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report sent to " + sess.Email})
}

type watchdogSubscribeRequest struct {
	Query  string `json:"query" binding:"required"`
	Source string `json:"source"`
	Phone  string `json:"phone"`
}

func (s *Server) handleWatchdogSubscribe(c *gin.Context) {
	var req watchdogSubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	sess := currentSession(c)
	id, err := s.watchdogSvc.Subscribe(models.WatchdogSubscription{
		Username: sess.Username,
		Email:    sess.Email,
		Phone:    req.Phone,
		Query:    req.Query,
		Source:   req.Source,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) handleWatchdogUnsubscribe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, errors.NewValidationError("subscription id must be an integer"))
		return
	}

	if err := s.watchdogSvc.Unsubscribe(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription removed."})
}

// handleWatchdogTrack records a click on a report link. It is hit by a GET
// from the user's mail client, so it answers with a small HTML page rather
// than JSON.
func (s *Server) handleWatchdogTrack(c *gin.Context) {
	status := c.Query("status")
	role := c.Query("role")
	user := c.Query("user")
	source := c.Query("source")

	if err := s.watchdogSvc.TrackClick(c.Request.Context(), user, role, source, status); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<html><body><h3>Thanks! Your application status was recorded.</h3>You can close this tab.</body></html>"))
}
