package search

import (
	"strings"

	"github.com/nikbrunner/animedex/internal/model"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Matcher tests entries against a lower-cased query.
// A Matcher is not safe for concurrent use.
type Matcher struct {
	query  string
	caser  cases.Caser
	active bool
}

// NewMatcher prepares a matcher for query. An empty query matches everything.
func NewMatcher(query string) *Matcher {
	caser := cases.Lower(language.Und)
	return &Matcher{
		query:  caser.String(query),
		caser:  caser,
		active: query != "",
	}
}

// Match reports whether any title of e contains the query.
func (m *Matcher) Match(e model.Entry) bool {
	if !m.active {
		return true
	}
	for _, title := range e.SearchableTitles() {
		if strings.Contains(m.caser.String(title), m.query) {
			return true
		}
	}
	return false
}

// Filter returns the entries matching query, in their original order.
func Filter(entries []model.Entry, query string) []model.Entry {
	m := NewMatcher(query)
	result := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if m.Match(e) {
			result = append(result, e)
		}
	}
	return result
}

// Suggest returns the candidate closest to input, or "" when nothing is close.
// Used for "did you mean" hints on command-line values, not for catalog search.
func Suggest(input string, candidates []string) string {
	if input == "" {
		return ""
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
