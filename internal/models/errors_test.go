package models_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/invoiceiq/vanna-service/internal/models"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	models.WriteJSON(rr, http.StatusCreated, map[string]int{"rows_returned": 2})

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := rr.Body.String(); got != "{\"rows_returned\":2}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestWriteJSONUnencodableValue(t *testing.T) {
	tests := []struct {
		name string
		v    any
	}{
		{"nan float", map[string]any{"total": math.NaN()}},
		{"nan number", map[string]any{"total": json.Number("NaN")}},
		{"infinity", []float64{math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			models.WriteJSON(rr, http.StatusOK, tt.v)

			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rr.Code)
			}
			var body models.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v (%q)", err, rr.Body.String())
			}
			if body.Detail == "" {
				t.Error("detail should not be empty")
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	models.WriteError(rr, http.StatusBadRequest, "question is required")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
	if got := rr.Body.String(); got != "{\"detail\":\"question is required\"}\n" {
		t.Errorf("body = %q", got)
	}
}
