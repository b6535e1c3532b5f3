package vanna

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

func buildSystemPrompt(dialect string, ddl []string, examples []Example) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a %s expert. Generate a SQL query that answers the user's question. ", dialect)
	sb.WriteString("Base your answer only on the context below and follow the response guidelines.\n")

	sb.WriteString("\n===Tables\n")
	for _, d := range ddl {
		sb.WriteString(d)
		sb.WriteString("\n\n")
	}

	if len(examples) > 0 {
		sb.WriteString("===Examples\n")
		for _, ex := range examples {
			fmt.Fprintf(&sb, "Question: %s\nSQL:\n%s\n\n", ex.Question, ex.SQL)
		}
	}

	sb.WriteString("===Response Guidelines\n")
	sb.WriteString("1. If the context is sufficient, reply with a single valid SQL query and no explanation.\n")
	sb.WriteString("2. If the context is insufficient, explain why the query cannot be generated.\n")
	sb.WriteString("3. Use the most relevant tables.\n")
	fmt.Fprintf(&sb, "4. The query must be %s-compliant, executable and free of syntax errors.\n", dialect)
	sb.WriteString("5. Wrap the query in a ```sql code block.\n")
	return sb.String()
}

// rankExamples orders examples by how many question words they share with
// question, keeping training order for ties, and returns at most limit.
func rankExamples(question string, examples []Example, limit int) []Example {
	if len(examples) == 0 || limit <= 0 {
		return nil
	}
	words := tokenize(question)

	type scored struct {
		ex    Example
		score int
	}
	ranked := make([]scored, len(examples))
	for i, ex := range examples {
		score := 0
		for w := range tokenize(ex.Question) {
			if _, ok := words[w]; ok {
				score++
			}
		}
		ranked[i] = scored{ex: ex, score: score}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]Example, len(ranked))
	for i, r := range ranked {
		out[i] = r.ex
	}
	return out
}

func tokenize(s string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
