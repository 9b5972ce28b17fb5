package ui

import (
	"log"
	"net/http"
	"strconv"

	"cdtire/internal/errors"
	"cdtire/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// handleListProjects returns projects ordered by creation time
func (s *Server) handleListProjects(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	projects, err := s.projects.List(c.Request.Context(), limit, offset)
	if err != nil {
		log.Printf("[Server] FAILED - listing projects: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// handleProjectRows returns the stored test rows for one project
func (s *Server) handleProjectRows(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	rows, err := s.matrix.GetProjectRows(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projectId": projectID, "data": rows})
}

// handleProjectSummary returns the KPI summary for one project
func (s *Server) handleProjectSummary(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	summary, err := s.summary.Summarize(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// handleGenerateFolders creates the protocol folder tree for a project
func (s *Server) handleGenerateFolders(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, rows, ok := s.loadProjectRows(c, projectID)
	if !ok {
		return
	}

	created, err := s.protocol.GenerateFolders(c.Request.Context(), project, rows)
	if err != nil {
		log.Printf("[Server] FAILED - folder generation: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Protocol folders created", "folders": created})
}

// handleGenerateBatchFiles writes the solver batch files for a project
func (s *Server) handleGenerateBatchFiles(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, rows, ok := s.loadProjectRows(c, projectID)
	if !ok {
		return
	}

	written, err := s.protocol.GenerateBatchFiles(c.Request.Context(), project, rows)
	if err != nil {
		log.Printf("[Server] FAILED - batch file generation: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Batch files generated", "files": written})
}

// loadProjectRows fetches a project and its rows, responding on failure
func (s *Server) loadProjectRows(c *gin.Context, projectID uuid.UUID) (*models.Project, []models.TestRow, bool) {
	project, err := s.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, errors.WithCode(errors.CodeNotFound, err))
		return nil, nil, false
	}

	rows, err := s.matrix.GetProjectRows(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}

	return project, rows, true
}

// parseProjectID reads and validates the :id path parameter
func parseProjectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return uuid.Nil, false
	}
	return id, true
}
