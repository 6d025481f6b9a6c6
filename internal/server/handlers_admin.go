package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcana-labs/reportwriter/internal/models"
)

func (s *Server) handleAdminListUsers(c *gin.Context) {
	users, err := s.admin.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleAdminSetLimit(c *gin.Context) {
	var req struct {
		// ReportLimit null clears the limit (back to unlimited).
		ReportLimit *int `json:"reportLimit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ReportLimit != nil && *req.ReportLimit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reportLimit must not be negative"})
		return
	}

	found, err := s.admin.SetReportLimit(c.Request.Context(), c.Param("id"), req.ReportLimit)
	if err != nil {
		fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": c.Param("id"), "reportLimit": req.ReportLimit})
}

func (s *Server) handleAdminGetSettings(c *gin.Context) {
	settings, err := s.admin.Settings(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleAdminPutSettings(c *gin.Context) {
	var settings models.AdminSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.admin.UpdateSettings(c.Request.Context(), &settings); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
