package db

import (
	"fmt"
	"strings"
)

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName string
	// Prefilter is an FT query string restricting the candidate set
	// ("*" semantics when empty).
	Prefilter    string
	Vector       []float32
	K            int
	ScoreField   string // name of the computed distance field, e.g. "__embedding_score"
	ReturnFields []string
}

// SortKey is one SORTBY clause of a sorted search.
type SortKey struct {
	Field string
	Desc  bool
}

// SortedQuery is the input for a sorted, paginated FT.AGGREGATE search.
// Load lists the hash fields to bring into each row; empty loads all.
type SortedQuery struct {
	IndexName string
	Query     string
	Load      []string
	SortBy    []SortKey
	Offset    int
	Limit     int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// TagFilter builds an FT tag clause matching any of the given values:
// @field:{a|b|c}. Returns "" when values is empty.
func TagFilter(field string, values ...string) string {
	if len(values) == 0 {
		return ""
	}
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = tagEscaper.Replace(v)
	}
	return fmt.Sprintf("@%s:{%s}", field, strings.Join(escaped, "|"))
}

// ContainsTerm builds a dialect-2 infix wildcard term w'*text*' for
// contains matching on TEXT or TAG fields with a suffix trie.
func ContainsTerm(text string) string {
	return "w'*" + wildcardEscaper.Replace(text) + "*'"
}

// MissingClause builds an ismissing(@field) clause (requires INDEXMISSING
// on the field and dialect 2).
func MissingClause(field string) string {
	return fmt.Sprintf("ismissing(@%s)", field)
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

// wildcardEscaper escapes characters meaningful inside w'...' terms.
var wildcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`*`, `\*`,
	`?`, `\?`,
)
