package ui

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"cdtire/models"

	"github.com/gin-gonic/gin"
)

// handleExtractTestMatrix accepts a multipart workbook upload plus the scalar
// user inputs, runs the extraction, and stores the result as a new project.
func (s *Server) handleExtractTestMatrix(c *gin.Context) {
	log.Printf("[Server] starting test-matrix extraction")

	file, header, err := c.Request.FormFile("matrix")
	if err != nil {
		log.Printf("[Server] FAILED - no workbook uploaded: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "No workbook uploaded"})
		return
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes {
		log.Printf("[Server] FAILED - workbook too large: %d bytes", header.Size)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File size (%.1f MB) exceeds the %d MB limit",
				float64(header.Size)/(1024*1024), s.maxUploadBytes/(1024*1024)),
		})
		return
	}

	if !validWorkbookExtension(header.Filename) {
		log.Printf("[Server] FAILED - invalid workbook extension: %s", header.Filename)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only Excel workbooks (.xlsx, .xlsm) are allowed"})
		return
	}

	var inputs models.MatrixInputs
	if err := c.ShouldBind(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user inputs"})
		return
	}

	projectName := strings.TrimSpace(c.PostForm("project_name"))
	if projectName == "" {
		projectName = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	project, rows, err := s.matrix.ExtractAndStore(c.Request.Context(), projectName, file, inputs)
	if err != nil {
		log.Printf("[Server] FAILED - extraction failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Test matrix extracted",
		"projectId": project.ID,
		"rowCount":  len(rows),
		"data":      rows,
	})
}

// handleStoreTestData accepts the raw store-rows payload
// { data: TestRow[], projectId: string|null }.
func (s *Server) handleStoreTestData(c *gin.Context) {
	var req models.StoreRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := s.matrix.StoreRows(c.Request.Context(), req)
	if err != nil {
		log.Printf("[Server] FAILED - store-rows failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Test data stored",
		"projectId": project.ID,
		"rowCount":  project.RowCount,
	})
}

// validWorkbookExtension checks the upload against the accepted extensions
func validWorkbookExtension(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm")
}
