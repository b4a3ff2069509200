package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/SAP-F-2025/quizmark/internal/services"
	"github.com/SAP-F-2025/quizmark/internal/utils"
	"github.com/gin-gonic/gin"
)

// SummaryHeader carries the JSON grading summary next to the annotated page
const SummaryHeader = "X-Review-Summary"

const defaultMaxPageBytes = 2 << 20

type ReviewHandler struct {
	BaseHandler
	reviewService services.ReviewService
	maxPageBytes  int64
}

func NewReviewHandler(reviewService services.ReviewService, maxPageBytes int64, logger utils.Logger) *ReviewHandler {
	if maxPageBytes <= 0 {
		maxPageBytes = defaultMaxPageBytes
	}
	return &ReviewHandler{
		BaseHandler:   NewBaseHandler(logger),
		reviewService: reviewService,
		maxPageBytes:  maxPageBytes,
	}
}

// ReviewPage annotates a submitted quiz page
// @Summary Review quiz page
// @Description Marks the answers of a rendered quiz page and returns the page
// @Tags tasks
// @Accept html
// @Produce html
// @Param task_id path string true "Task ID"
// @Param type query string false "multiple_choice or true_false"
// @Success 200 {string} string "annotated page"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /tasks/{task_id}/review [post]
func (h *ReviewHandler) ReviewPage(c *gin.Context) {
	taskID := ParseStringIDParam(c, "task_id")
	if taskID == "" {
		return
	}

	h.LogRequest(c, "Reviewing quiz page", "task_id", taskID)

	page, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxPageBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.RespondWithError(c, http.StatusRequestEntityTooLarge, "Page too large", err, tooLarge.Limit)
			return
		}
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read page", err)
		return
	}
	if len(bytes.TrimSpace(page)) == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Page is empty", nil)
		return
	}

	req := &services.ReviewRequest{
		TaskID: taskID,
		Type:   models.TaskType(c.Query("type")),
	}

	var out bytes.Buffer
	report, err := h.reviewService.Review(c.Request.Context(), req, bytes.NewReader(page), &out)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if summary, err := json.Marshal(report.Summary); err == nil {
		c.Header(SummaryHeader, string(summary))
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", out.Bytes())
}
