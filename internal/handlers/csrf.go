package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/SAP-F-2025/quizmark/internal/client"
	"github.com/SAP-F-2025/quizmark/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const csrfCookieMaxAge = 12 * 60 * 60

type CSRFTokenResponse struct {
	Token string `json:"csrf_token"`
}

// CSRFHandler issues double-submit tokens
type CSRFHandler struct {
	BaseHandler
	secure bool
}

func NewCSRFHandler(secure bool, logger utils.Logger) *CSRFHandler {
	return &CSRFHandler{
		BaseHandler: NewBaseHandler(logger),
		secure:      secure,
	}
}

// IssueToken sets the csrftoken cookie, keeping an existing one.
// @Summary Issue CSRF token
// @Tags csrf
// @Produce json
// @Success 200 {object} CSRFTokenResponse
// @Router /csrf [get]
func (h *CSRFHandler) IssueToken(c *gin.Context) {
	token, err := c.Cookie(client.CSRFCookieName)
	if err != nil || token == "" {
		token = uuid.NewString()
	}

	// readable from scripts, which echo it in the header
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(client.CSRFCookieName, token, csrfCookieMaxAge, "/", "", h.secure, false)

	c.JSON(http.StatusOK, CSRFTokenResponse{Token: token})
}

// CSRFMiddleware rejects unsafe requests whose X-CSRFToken header does not
// match the csrftoken cookie.
func CSRFMiddleware(logger utils.Logger) gin.HandlerFunc {
	base := NewBaseHandler(logger)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		cookie, err := c.Cookie(client.CSRFCookieName)
		header := c.GetHeader(client.CSRFHeaderName)
		if err != nil || cookie == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			base.RespondWithError(c, http.StatusForbidden, "CSRF token missing or invalid", nil)
			return
		}

		c.Next()
	}
}
