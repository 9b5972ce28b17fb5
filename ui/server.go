package ui

import (
	"log"
	"net/http"

	"cdtire/app"
	"cdtire/internal/config"
	"cdtire/internal/errors"
	"cdtire/ports"

	"github.com/gin-gonic/gin"
)

// Server is the JSON API for the CDTire test-matrix workflow
type Server struct {
	router         *gin.Engine
	matrix         *app.MatrixService
	protocol       ports.ProtocolGenerator
	summary        *app.SummaryService
	projects       ports.ProjectRepository
	maxUploadBytes int64
}

// NewServer creates the API server and registers its routes
func NewServer(cfg *config.Config, matrix *app.MatrixService, protocol ports.ProtocolGenerator, summary *app.SummaryService, projects ports.ProjectRepository) *Server {
	s := &Server{
		router:         gin.Default(),
		matrix:         matrix,
		protocol:       protocol,
		summary:        summary,
		projects:       projects,
		maxUploadBytes: int64(cfg.Upload.MaxSizeMB) * 1024 * 1024,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API endpoints
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/extract-test-matrix", s.handleExtractTestMatrix)
	api.POST("/store-test-data", s.handleStoreTestData)

	api.GET("/projects", s.handleListProjects)
	api.GET("/projects/:id/rows", s.handleProjectRows)
	api.GET("/projects/:id/summary", s.handleProjectSummary)

	api.POST("/projects/:id/protocol-folders", s.handleGenerateFolders)
	api.POST("/projects/:id/batch-files", s.handleGenerateBatchFiles)
}

// Run starts the API server
func (s *Server) Run(addr string) error {
	log.Printf("[Server] API listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the underlying handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// respondError maps application error codes to HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch errors.GetCode(err) {
	case errors.CodeParseError, errors.CodeInvalidInput, errors.CodeValidationError:
		status = http.StatusBadRequest
	case errors.CodeEmptyResult:
		status = http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
