package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200"))

	if after-before != 1 {
		t.Errorf("request counter delta = %v, want 1", after-before)
	}
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(sqlGenerationsTotal.WithLabelValues(OutcomeEmpty))
	ObserveGeneration(OutcomeEmpty)
	if got := testutil.ToFloat64(sqlGenerationsTotal.WithLabelValues(OutcomeEmpty)) - before; got != 1 {
		t.Errorf("generation counter delta = %v, want 1", got)
	}

	SetEngineInitialized(true)
	if got := testutil.ToFloat64(engineInitialized); got != 1 {
		t.Errorf("engine gauge = %v, want 1", got)
	}
	SetEngineInitialized(false)
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveExecution(OutcomeSuccess)
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "vanna_query_executions_total") {
		t.Error("metrics output should include vanna_query_executions_total")
	}
}
