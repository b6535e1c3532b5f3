package handler

import (
	"net/http"

	"github.com/invoiceiq/vanna-service/internal/models"
)

// InitStatus reports engine readiness without side effects.
type InitStatus interface {
	IsInitialized() bool
}

// HealthHandler handles GET /health
type HealthHandler struct {
	status InitStatus
}

func NewHealthHandler(status InitStatus) *HealthHandler {
	return &HealthHandler{status: status}
}

// Health always answers 200. It reads the initialization flag and never
// starts initialization itself.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	models.WriteJSON(w, http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		VannaInitialized: h.status.IsInitialized(),
	})
}
