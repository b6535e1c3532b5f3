package security

import (
	"regexp"
	"strings"
)

// statements that must never follow a terminator in generated SQL
var stackedStatement = regexp.MustCompile(`(?i);\s*(DROP|DELETE|INSERT|UPDATE|ALTER|CREATE|TRUNCATE|GRANT|REVOKE|COPY|EXEC(UTE)?)\b`)

// data-modifying CTEs are legal PostgreSQL but never what a read question wants
var writingCTE = regexp.MustCompile(`(?is)\bAS\s*\(\s*(DELETE|INSERT|UPDATE)\b`)

var sqlDangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bINTO\s+OUTFILE\b`),
	regexp.MustCompile(`(?i)\bINTO\s+DUMPFILE\b`),
	regexp.MustCompile(`(?i)\bLOAD_FILE\s*\(`),
	regexp.MustCompile(`(?i)\bPG_READ_FILE\s*\(`),
	regexp.MustCompile(`(?i)\bPG_SLEEP\s*\(`),
	regexp.MustCompile(`(?i)\bDBLINK(_EXEC)?\s*\(`),
	regexp.MustCompile(`(?i)\bLO_IMPORT\s*\(`),
	regexp.MustCompile(`;\s*--`),
	regexp.MustCompile(`(?i)\bor\s+1\s*=\s*1\b`),
	regexp.MustCompile(`(?i)\bor\s+'1'\s*=\s*'1'`),
}

// SQLValidator rejects generated SQL that is not a single read-only query.
type SQLValidator struct{}

func NewSQLValidator() *SQLValidator {
	return &SQLValidator{}
}

// Validate returns a reason when sql is rejected, or "" when it may run.
func (v *SQLValidator) Validate(sql string) string {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return "SQL cannot be empty"
	}

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return "only SELECT queries are allowed"
	}
	if stackedStatement.MatchString(trimmed) {
		return "multiple statements are not allowed"
	}
	if strings.HasPrefix(upper, "WITH") && writingCTE.MatchString(trimmed) {
		return "data-modifying CTEs are not allowed"
	}

	for _, pattern := range sqlDangerousPatterns {
		if pattern.MatchString(trimmed) {
			return "disallowed SQL pattern detected: " + pattern.String()
		}
	}
	return ""
}
