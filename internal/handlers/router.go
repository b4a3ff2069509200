package handlers

import (
	"github.com/SAP-F-2025/quizmark/internal/services"
	"github.com/SAP-F-2025/quizmark/internal/utils"
	"github.com/SAP-F-2025/quizmark/internal/validator"
	"github.com/gin-gonic/gin"
)

// Options tunes the HTTP surface
type Options struct {
	MaxPageBytes     int64
	CSRFCookieSecure bool
}

type HandlerManager struct {
	answerHandler *AnswerHandler
	reviewHandler *ReviewHandler
	importHandler *ImportHandler
	csrfHandler   *CSRFHandler
	logger        utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	opts Options,
) *HandlerManager {
	return &HandlerManager{
		answerHandler: NewAnswerHandler(serviceManager.AnswerKey(), validator, logger),
		reviewHandler: NewReviewHandler(serviceManager.Review(), opts.MaxPageBytes, logger),
		importHandler: NewImportHandler(serviceManager.Import(), logger),
		csrfHandler:   NewCSRFHandler(opts.CSRFCookieSecure, logger),
		logger:        logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/csrf", hm.csrfHandler.IssueToken)

		tasks := v1.Group("/tasks", CSRFMiddleware(hm.logger))
		{
			tasks.POST("/answers", hm.answerHandler.GetAnswers)
			tasks.POST("/import", hm.importHandler.ImportAnswerKeys)
			tasks.POST("/:task_id/review", hm.reviewHandler.ReviewPage)
		}
	}
}
