package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/SAP-F-2025/quizmark/internal/services"
	"github.com/SAP-F-2025/quizmark/internal/utils"
	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	BaseHandler
	importService services.ImportService
}

func NewImportHandler(importService services.ImportService, logger utils.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   NewBaseHandler(logger),
		importService: importService,
	}
}

// ImportAnswerKeys loads tasks from an uploaded workbook or YAML file
// @Summary Import answer keys
// @Tags tasks
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx, yaml or yml file"
// @Success 200 {object} SuccessResponse{data=models.ImportSummary}
// @Failure 400 {object} ErrorResponse
// @Router /tasks/import [post]
func (h *ImportHandler) ImportAnswerKeys(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "File is required", err)
		return
	}

	h.LogRequest(c, "Importing answer keys", "filename", fileHeader.Filename, "size", fileHeader.Size)

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to open file", err)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	var summary *models.ImportSummary
	switch ext {
	case ".xlsx":
		summary, err = h.importService.ImportFromExcel(ctx, file)
	case ".yaml", ".yml":
		summary, err = h.importService.ImportFromYAML(ctx, file)
	default:
		err = fmt.Errorf("%w: %q", services.ErrImportUnsupported, ext)
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Import completed", summary,
		"imported", len(summary.ImportedTasks), "errors", summary.ErrorCount)
}
