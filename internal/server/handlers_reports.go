package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcana-labs/reportwriter/internal/middleware"
	"github.com/arcana-labs/reportwriter/internal/models"
	"github.com/arcana-labs/reportwriter/internal/service"
)

func (s *Server) handleGenerateReport(c *gin.Context) {
	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.reports.Generate(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (s *Server) handleListReports(c *gin.Context) {
	reports, err := s.reports.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (s *Server) handleGetReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	report, err := s.reports.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	// The ledger lookup is owner-agnostic; the API answers a foreign
	// owner exactly like a missing id.
	if report == nil || report.UserID != middleware.UserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handlePatchReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch models.ReportPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.reports.Update(c.Request.Context(), id, middleware.UserID(c), patch)
	if err != nil {
		fail(c, err)
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleDeleteReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	removed, err := s.reports.Delete(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
