package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/invoiceiq/vanna-service/internal/database"
	"github.com/invoiceiq/vanna-service/internal/middleware"
	"github.com/invoiceiq/vanna-service/internal/models"
	"github.com/invoiceiq/vanna-service/internal/security"
	"github.com/rs/zerolog/log"
)

// QueryService is the generation and execution pair behind POST /query.
type QueryService interface {
	GenerateSQL(ctx context.Context, question string) (string, error)
	RunQuery(ctx context.Context, sql string) ([]database.Row, error)
}

// QueryHandler answers natural-language questions with SQL and its results.
type QueryHandler struct {
	svc         QueryService
	sqlVal      *security.SQLValidator
	enableGuard bool
	auditLogger *security.AuditLogger
}

func NewQueryHandler(
	svc QueryService,
	sqlVal *security.SQLValidator,
	enableGuard bool,
	auditLogger *security.AuditLogger,
) *QueryHandler {
	return &QueryHandler{
		svc:         svc,
		sqlVal:      sqlVal,
		enableGuard: enableGuard,
		auditLogger: auditLogger,
	}
}

// Query handles POST /query
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Blank() {
		models.WriteError(w, http.StatusBadRequest, "question is required")
		return
	}

	start := time.Now()
	resp, err := h.answer(r.Context(), req.Question)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		sql := ""
		if resp != nil {
			sql = resp.SQL
		}
		h.auditLogger.LogQuery(req.Question, sql, 0, elapsed, false, err.Error())
		writeQueryError(w, r, err)
		return
	}

	h.auditLogger.LogQuery(req.Question, resp.SQL, len(resp.Results), elapsed, true, "")
	models.WriteJSON(w, http.StatusOK, resp)
}

// answer runs generation then execution. On failure the returned response,
// when non-nil, carries the SQL generated so far.
func (h *QueryHandler) answer(ctx context.Context, question string) (*models.QueryResponse, error) {
	sql, err := h.svc.GenerateSQL(ctx, question)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sql) == "" {
		return nil, models.NewHTTPError(http.StatusBadRequest, "Could not generate SQL from question")
	}
	resp := &models.QueryResponse{SQL: sql}

	if h.enableGuard && h.sqlVal != nil {
		if reason := h.sqlVal.Validate(sql); reason != "" {
			return resp, models.NewHTTPError(http.StatusBadRequest, "SQL validation failed: "+reason)
		}
	}

	rows, err := h.svc.RunQuery(ctx, sql)
	if err != nil {
		return resp, err
	}
	if rows == nil {
		rows = []database.Row{}
	}
	resp.Results = rows
	resp.Metadata = models.QueryMetadata{
		RowsReturned: len(rows),
		Question:     question,
	}
	return resp, nil
}

func writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *models.HTTPError
	if errors.As(err, &httpErr) {
		models.WriteError(w, httpErr.Status, httpErr.Detail)
		return
	}
	log.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Msg("query failed")
	models.WriteError(w, http.StatusInternalServerError, err.Error())
}
