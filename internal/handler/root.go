package handler

import (
	"net/http"

	"github.com/invoiceiq/vanna-service/internal/models"
)

const (
	serviceName = "Vanna AI"
	version     = "1.0.0"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// Root handles GET /
func (h *RootHandler) Root(w http.ResponseWriter, r *http.Request) {
	models.WriteJSON(w, http.StatusOK, models.RootResponse{
		Service: serviceName,
		Version: version,
		Status:  "running",
		Endpoints: models.Endpoints{
			Query:  "/query",
			Health: "/health",
		},
	})
}
