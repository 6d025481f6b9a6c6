// Package server wires the REST API surface over the service layer.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcana-labs/reportwriter/internal/auth"
	"github.com/arcana-labs/reportwriter/internal/dates"
	"github.com/arcana-labs/reportwriter/internal/metrics"
	"github.com/arcana-labs/reportwriter/internal/middleware"
	"github.com/arcana-labs/reportwriter/internal/service"
)

// Server holds the services the handlers delegate to.
type Server struct {
	auth    *service.AuthService
	people  *service.PersonService
	reports *service.ReportService
	admin   *service.AdminService
	jwt     *auth.JWTManager
}

// New creates a Server.
func New(
	authSvc *service.AuthService,
	people *service.PersonService,
	reports *service.ReportService,
	admin *service.AdminService,
	jwt *auth.JWTManager,
) *Server {
	return &Server{
		auth:    authSvc,
		people:  people,
		reports: reports,
		admin:   admin,
		jwt:     jwt,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(s.jwt))

	authed.GET("/me", s.handleMe)
	authed.GET("/usage", s.handleUsage)

	authed.POST("/people", s.handleCreatePerson)
	authed.GET("/people", s.handleListPeople)
	authed.GET("/people/:id", s.handleGetPerson)
	authed.PUT("/people/:id", s.handleUpdatePerson)
	authed.DELETE("/people/:id", s.handleDeletePerson)

	authed.POST("/reports", s.handleGenerateReport)
	authed.GET("/reports", s.handleListReports)
	authed.GET("/reports/:id", s.handleGetReport)
	authed.PATCH("/reports/:id", s.handlePatchReport)
	authed.DELETE("/reports/:id", s.handleDeleteReport)

	adminRoutes := authed.Group("/admin", middleware.RequireAdmin())
	adminRoutes.GET("/users", s.handleAdminListUsers)
	adminRoutes.PUT("/users/:id/limit", s.handleAdminSetLimit)
	adminRoutes.GET("/settings", s.handleAdminGetSettings)
	adminRoutes.PUT("/settings", s.handleAdminPutSettings)

	return r
}

// fail maps a service error onto the right HTTP status.
func fail(c *gin.Context, err error) {
	var formatErr *dates.FormatError
	switch {
	case errors.As(err, &formatErr),
		errors.Is(err, service.ErrInvalidReportType),
		errors.Is(err, service.ErrPartnerRequired),
		errors.Is(err, service.ErrPartnerNotAllowed),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, auth.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrLimitReached):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPersonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
