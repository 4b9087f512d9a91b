package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/wordquiz/internal/database"
)

type HealthHandler struct {
	store *database.Store
}

func NewHealthHandler(store *database.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, "ok")
}
