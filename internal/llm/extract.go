package llm

import (
	"regexp"
	"strings"
)

var (
	// matched on the original text; lowercasing first can shift byte offsets
	reSQLFence = regexp.MustCompile("(?is)```sql[ \t\r]*\n?(.*?)```")
	// CTE: WITH name AS ( ... ) SELECT ...
	reMultilineSQL = regexp.MustCompile(`(?is)(WITH\s+\w+\s+AS\s*\(.+?(?:LIMIT\s+\d+|;\s*$|\z))`)
	// Plain SELECT spanning multiple lines ending with LIMIT or semicolon
	reSelectBlock = regexp.MustCompile(`(?is)(SELECT\s+.+?FROM\s+.+?(?:LIMIT\s+\d+|;|\z))`)
	reSingleSQL   = regexp.MustCompile(`(?i)(SELECT\s+\S.+?\bFROM\b\s+\S+)`)
)

// ExtractSQL pulls the SQL statement out of a model reply, trying in order:
//  1. a ```sql fenced block
//  2. any fenced block whose body starts with SELECT or WITH
//  3. a reply that is itself a bare SELECT/WITH statement
//  4. a CTE or SELECT ... FROM statement embedded in prose
//
// It returns "" when the reply contains no recognizable query.
func ExtractSQL(text string) string {
	if m := reSQLFence.FindStringSubmatch(text); m != nil {
		if sql := strings.TrimSpace(m[1]); sql != "" {
			return sql
		}
	}

	parts := strings.Split(text, "```")
	for i := 1; i < len(parts); i += 2 {
		candidate := strings.TrimSpace(parts[i])
		// strip a language tag line such as "postgresql\nSELECT"
		if nl := strings.Index(candidate, "\n"); nl != -1 {
			firstLine := strings.ToUpper(strings.TrimSpace(candidate[:nl]))
			if !strings.Contains(firstLine, "SELECT") && !strings.Contains(firstLine, "WITH") {
				candidate = strings.TrimSpace(candidate[nl:])
			}
		}
		if startsWithQuery(candidate) {
			return candidate
		}
	}

	if trimmed := strings.TrimSpace(text); startsWithQuery(trimmed) {
		return trimmed
	}

	if m := reMultilineSQL.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	if m := reSelectBlock.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	if m := reSingleSQL.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

func startsWithQuery(s string) bool {
	up := strings.ToUpper(s)
	return strings.HasPrefix(up, "SELECT") || strings.HasPrefix(up, "WITH")
}
