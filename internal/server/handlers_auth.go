package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcana-labs/reportwriter/internal/middleware"
	"github.com/arcana-labs/reportwriter/internal/models"
)

// userInfo is the API view of an account; the password hash never
// leaves the store layer.
func userInfo(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"displayName": u.DisplayName,
		"role":        u.Role,
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		DisplayName string `json:"displayName" binding:"required"`
		Password    string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := s.auth.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": userInfo(user)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userInfo(user)})
}

func (s *Server) handleMe(c *gin.Context) {
	email, _ := c.Get(middleware.EmailKey)
	role, _ := c.Get(middleware.RoleKey)
	c.JSON(http.StatusOK, gin.H{
		"id":    middleware.UserID(c),
		"email": email,
		"role":  role,
	})
}

func (s *Server) handleUsage(c *gin.Context) {
	usage, err := s.reports.Usage(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, usage)
}
