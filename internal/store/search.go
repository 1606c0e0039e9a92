package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/isidore-books/isidore/internal/util"
)

// SearchOptions captures a free-text search term. The term is only ever
// passed through bind parameters; nothing from it is interpolated into SQL
// text.
type SearchOptions struct {
	Term string
	// RespectCase switches to case-sensitive GLOB matching with * and ?
	// wildcards.
	RespectCase bool
	// Translit folds the field through lower_ascii before comparing, for
	// diacritic-insensitive matching.
	Translit bool
}

// Empty reports whether no search restriction is needed.
func (o *SearchOptions) Empty() bool {
	return o == nil || o.Term == ""
}

// Condition returns the parenthesized predicate for field, referencing the
// bind parameters produced by Args. Empty when no term is set.
//
// The case-insensitive form tests both a lowercased and a title-cased
// pattern (:search_l / :search_t). The doubled parameter cheaply covers both
// the prefix and the general substring conventions of Calibre sort keys, and
// both binds are kept even when set to the same pattern.
func (o *SearchOptions) Condition(field string) string {
	if o.Empty() {
		return ""
	}
	if o.RespectCase {
		return fmt.Sprintf("(%s GLOB :search_g)", field)
	}
	if o.Translit {
		return fmt.Sprintf("(lower_ascii(%s) LIKE :search_l OR %s LIKE :search_t)", field, field)
	}
	return fmt.Sprintf("(lower(%s) LIKE :search_l OR %s LIKE :search_t)", field, field)
}

// Args returns the bind parameters matching Condition.
func (o *SearchOptions) Args() []any {
	if o.Empty() {
		return nil
	}
	if o.RespectCase {
		return []any{sql.Named("search_g", o.Term)}
	}

	// Normalize GLOB-style wildcards to LIKE wildcards and wrap for
	// substring matching.
	pattern := strings.ReplaceAll(o.Term, "*", "%")
	pattern = strings.ReplaceAll(pattern, "?", "_")
	if !strings.Contains(pattern, "%") {
		pattern = "%" + pattern + "%"
	}

	lower := strings.ToLower(pattern)
	if o.Translit {
		lower = strings.ToLower(util.Transliterate(pattern))
	}
	title := util.TitleCaseWords(lower)

	return []any{sql.Named("search_l", lower), sql.Named("search_t", title)}
}
