package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arcana-labs/reportwriter/internal/dates"
	"github.com/arcana-labs/reportwriter/internal/middleware"
	"github.com/arcana-labs/reportwriter/internal/models"
)

type personRequest struct {
	Name      string `json:"name" binding:"required"`
	Birthdate string `json:"birthdate" binding:"required"`
}

// personView adds the display-form birthdate the UI renders: the
// verbatim text the user typed when we have it, otherwise MM/DD/YYYY
// (or the raw stored value if it somehow stopped parsing).
func personView(p *models.Person) gin.H {
	display := p.OriginalDateFormat
	if display == "" {
		display = dates.DisplayOrRaw(p.Birthdate)
	}
	return gin.H{
		"id":                 p.ID,
		"name":               p.Name,
		"birthdate":          p.Birthdate,
		"originalDateFormat": p.OriginalDateFormat,
		"displayBirthdate":   display,
		"createdAt":          p.CreatedAt,
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleCreatePerson(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := s.people.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Birthdate)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, personView(person))
}

func (s *Server) handleListPeople(c *gin.Context) {
	people, err := s.people.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(people))
	for _, p := range people {
		out = append(out, personView(p))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetPerson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	person, err := s.people.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if person == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}
	c.JSON(http.StatusOK, personView(person))
}

func (s *Server) handleUpdatePerson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := s.people.Update(c.Request.Context(), id, middleware.UserID(c), req.Name, req.Birthdate)
	if err != nil {
		fail(c, err)
		return
	}
	if person == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}
	c.JSON(http.StatusOK, personView(person))
}

func (s *Server) handleDeletePerson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	removed, err := s.people.Delete(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
