package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bcasprint-backend/internal/common/errors"
)

func (s *Server) handleAdminKPIs(c *gin.Context) {
	kpis, err := s.adminSvc.KPIs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

func (s *Server) handleAdminUsers(c *gin.Context) {
	users, err := s.adminSvc.Users(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) handleAdminLogs(c *gin.Context) {
	logs, err := s.adminSvc.RecentLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (s *Server) handleAdminSetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	sess := currentSession(c)
	username := c.Param("username")
	if err := s.adminSvc.SetRole(c.Request.Context(), sess, username, req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated."})
}

func (s *Server) handleAdminDeleteUser(c *gin.Context) {
	sess := currentSession(c)
	username := c.Param("username")
	if err := s.adminSvc.DeleteUser(c.Request.Context(), sess, username); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}
