package handler

import (
	"errors"
	"net/http"

	"cartalk/internal/services"
	"cartalk/internal/transport/httpdto"
	cartalk_errors "cartalk/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AssistantHandler handles the car question endpoint.
type AssistantHandler struct {
	service *services.AssistantService
}

// NewAssistantHandler creates an assistant handler.
func NewAssistantHandler(service *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// Ask accepts a JSON payload with a question field, validates it and returns
// the model's answer about cars.
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req httpdto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Missing or invalid 'question' field"))
		return
	}

	exchange, err := h.service.Ask(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, cartalk_errors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Missing or invalid 'question' field"))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, httpdto.AskResponse{
		Success:  true,
		Question: exchange.Question,
		Answer:   exchange.Answer,
	})
}
