package handler

import (
	"net/http"

	"cartalk/internal/transport/httpdto"
	"cartalk/pkg/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// HealthHandler reports whether the backend and its database are reachable.
type HealthHandler struct {
	client *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

// Message handles GET /message.
func (h *HealthHandler) Message(c *gin.Context) {
	dbStatus := "connected"
	if h.client == nil || database.HealthCheck(c.Request.Context(), h.client) != nil {
		dbStatus = "not connected"
	}

	c.JSON(http.StatusOK, httpdto.HealthResponse{
		Message:  "Backend is running!",
		DBStatus: dbStatus,
	})
}
