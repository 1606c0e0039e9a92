package store

import (
	"database/sql"

	"github.com/isidore-books/isidore/internal/model"
)

// CalibreFilter restricts every book query to what one user may see: an
// optional language the catalog is limited to, and an optional tag whose
// books are hidden. The two restrictions are asymmetric: the language filter
// keeps only matching books, the tag filter excludes matching books.
type CalibreFilter struct {
	LangID *int
	TagID  *int
}

// BooksFilter returns the table expression all book queries select from,
// plus the bind arguments it references. One of four shapes depending on
// which restrictions are set.
func (f *CalibreFilter) BooksFilter() (string, []any) {
	if f == nil || (f.LangID == nil && f.TagID == nil) {
		return "books", nil
	}

	lang := `(SELECT b.* FROM books b
		JOIN books_languages_link bll ON b.id = bll.book AND bll.lang_code = :lang)`
	tag := `(SELECT b.* FROM books b
		WHERE NOT EXISTS (SELECT 1 FROM books_tags_link btl WHERE btl.book = b.id AND btl.tag = :tag))`
	both := `(SELECT b.* FROM (SELECT b2.* FROM books b2
		JOIN books_languages_link bll ON b2.id = bll.book AND bll.lang_code = :lang) b
		WHERE NOT EXISTS (SELECT 1 FROM books_tags_link btl WHERE btl.book = b.id AND btl.tag = :tag))`

	switch {
	case f.LangID != nil && f.TagID != nil:
		return both, []any{sql.Named("lang", *f.LangID), sql.Named("tag", *f.TagID)}
	case f.LangID != nil:
		return lang, []any{sql.Named("lang", *f.LangID)}
	default:
		return tag, []any{sql.Named("tag", *f.TagID)}
	}
}

// GetLanguageID resolves an ISO 639-2 code to its row id. Returns (nil, nil)
// when the language is not present in the library.
func (s *Store) GetLanguageID(code string) (*int, error) {
	var id int
	err := s.metaDb.QueryRow(`SELECT id FROM languages WHERE lang_code = ?`, code).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GetTagID resolves a tag name to its row id. Returns (nil, nil) when no such
// tag exists.
func (s *Store) GetTagID(name string) (*int, error) {
	var id int
	err := s.metaDb.QueryRow(`SELECT id FROM tags WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// FilterForUser derives the catalog filter from a user's configured
// restrictions. Unresolvable restrictions degrade to no restriction.
func (s *Store) FilterForUser(user *model.User) *CalibreFilter {
	f := &CalibreFilter{}
	if user == nil {
		return f
	}
	if user.RestrictLang != "" {
		if id, err := s.GetLanguageID(user.RestrictLang); err == nil {
			f.LangID = id
		}
	}
	if user.RestrictTag != "" {
		if id, err := s.GetTagID(user.RestrictTag); err == nil {
			f.TagID = id
		}
	}
	return f
}
