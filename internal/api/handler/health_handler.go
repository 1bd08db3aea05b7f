package handler

import (
	"loan-portal/internal/api/handler/dto"
	"net/http"
)

type HealthHandler struct {
	backend string
}

func NewHealthHandler(gatewayBackend string) *HealthHandler {
	return &HealthHandler{backend: gatewayBackend}
}

// Health handles GET /health
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Gateway: h.backend})
}
