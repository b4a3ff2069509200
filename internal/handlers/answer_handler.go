package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/SAP-F-2025/quizmark/internal/services"
	"github.com/SAP-F-2025/quizmark/internal/utils"
	"github.com/SAP-F-2025/quizmark/internal/validator"
	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	BaseHandler
	answerKeyService services.AnswerKeyService
	validator        *validator.Validator
}

func NewAnswerHandler(
	answerKeyService services.AnswerKeyService,
	validator *validator.Validator,
	logger utils.Logger,
) *AnswerHandler {
	return &AnswerHandler{
		BaseHandler:      NewBaseHandler(logger),
		answerKeyService: answerKeyService,
		validator:        validator,
	}
}

// GetAnswers returns the answer key of a task
// @Summary Get task answers
// @Description Returns the correct answers of a task in question order
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body models.AnswersRequest true "Task reference"
// @Success 200 {object} models.AnswersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tasks/answers [post]
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	var req models.AnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Getting task answers", "task_id", req.TaskID)

	resp, err := h.answerKeyService.GetAnswerKey(c.Request.Context(), req.TaskID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
