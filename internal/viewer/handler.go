package viewer

import (
	"context"
	"net/http"

	"welcomecrm/internal/selection"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

//
// --------------------------------------------------
// GET /p/:token
// --------------------------------------------------
//

func (h *Handler) GetProposal() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
			return
		}

		view, err := h.service.BuildView(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
			return
		}

		// Fire and forget; the request context dies with the response.
		go h.service.TrackView(context.Background(), view.ID, c.GetHeader("User-Agent"))

		c.JSON(http.StatusOK, view)
	}
}

//
// --------------------------------------------------
// POST /p/:token/accept
// --------------------------------------------------
//

type acceptBody struct {
	Selections map[string]selection.Selection `json:"selections"`
	Notes      string                         `json:"notes"`
}

func (h *Handler) AcceptProposal() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		var body acceptBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		outcome, err := h.service.Accept(c.Request.Context(), token, body.Selections, body.Notes)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
			return
		}

		if len(outcome.ValidationErrors) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             outcome.ErrorMessage,
				"validation_errors": outcome.ValidationErrors,
			})
			return
		}

		if !outcome.Accepted {
			c.JSON(http.StatusBadGateway, gin.H{"error": outcome.ErrorMessage})
			return
		}

		c.JSON(http.StatusOK, outcome)
	}
}
