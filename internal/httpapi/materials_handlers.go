package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bcasprint-backend/internal/common/errors"
)

func (s *Server) handleMaterials(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")

	companies := s.materialsSvc.Companies(c.Request.Context(), query, category)
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (s *Server) handleMaterialByName(c *gin.Context) {
	name := c.Param("name")
	company := s.materialsSvc.Company(name)
	if company == nil {
		respondError(c, errors.NewResourceNotFoundError("company", name))
		return
	}
	c.JSON(http.StatusOK, company)
}
