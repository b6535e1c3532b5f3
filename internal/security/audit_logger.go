package security

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/rs/zerolog/log"
)

// AuditLogger writes one structured event per answered question. The question
// and SQL text are hashed so the audit stream never carries raw user input.
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

func (a *AuditLogger) Enabled() bool {
	return a != nil && a.enabled
}

// LogQuery records the outcome of a /query request. sql is empty when
// generation never produced a statement.
func (a *AuditLogger) LogQuery(question, sql string, rows int, durationMs int64, success bool, errMsg string) {
	if !a.Enabled() {
		return
	}

	evt := log.Info().
		Str("event", "query_audit").
		Str("question_hash", Fingerprint(question)).
		Int("row_count", rows).
		Int64("execution_time_ms", durationMs).
		Bool("success", success)
	if sql != "" {
		evt = evt.Str("sql_hash", Fingerprint(sql))
	}
	if errMsg != "" {
		evt = evt.Str("error", errMsg)
	}
	evt.Msg("audit")
}

// Fingerprint is the first 16 hex characters of the SHA-256 of s.
func Fingerprint(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:16]
}
