package store

import (
	"database/sql"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/model"
	"go.uber.org/zap"
)

func scanBook(rows *sql.Rows) (*model.Book, error) {
	var b model.Book
	if err := rows.Scan(
		&b.ID,
		&b.Title,
		&b.SortTitle,
		&b.TimeStamp,
		&b.PublishDate,
		&b.SeriesIndex,
		&b.AuthorSort,
		&b.Path,
		&b.UUID,
		&b.HasCover,
		&b.LastModified,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBook returns one book row, or (nil, nil) when the id does not exist.
// Not-found is never an error here; every lookup in this store follows the
// same convention.
func (s *Store) GetBook(id int) (*model.Book, error) {
	var b model.Book
	err := s.metaDb.QueryRow(`
		SELECT id, title, sort, timestamp, pubdate, series_index, author_sort,
		       path, uuid, has_cover, last_modified
		FROM books WHERE id = ?`, id).
		Scan(
			&b.ID,
			&b.Title,
			&b.SortTitle,
			&b.TimeStamp,
			&b.PublishDate,
			&b.SeriesIndex,
			&b.AuthorSort,
			&b.Path,
			&b.UUID,
			&b.HasCover,
			&b.LastModified,
		)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to query book", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &b, nil
}

// BookAuthors lists the authors of one book.
func (s *Store) BookAuthors(bookID int) ([]*model.Author, error) {
	rows, err := s.metaDb.Query(`
		SELECT a.id, a.name, a.sort FROM authors a
		JOIN books_authors_link bal ON a.id = bal.author
		WHERE bal.book = ? ORDER BY a.sort`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := make([]*model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// BookSeries returns the series of one book, or (nil, nil) when it has none.
func (s *Store) BookSeries(bookID int) (*model.Series, error) {
	var sr model.Series
	err := s.metaDb.QueryRow(`
		SELECT s.id, s.name, s.sort FROM series s
		JOIN books_series_link bsl ON s.id = bsl.series
		WHERE bsl.book = ?`, bookID).
		Scan(&sr.ID, &sr.Name, &sr.Sort)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// BookTags lists the tags of one book.
func (s *Store) BookTags(bookID int) ([]*model.Tag, error) {
	rows, err := s.metaDb.Query(`
		SELECT t.id, t.name FROM tags t
		JOIN books_tags_link btl ON t.id = btl.tag
		WHERE btl.book = ? ORDER BY t.name`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*model.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// BookLanguageCodes lists the ISO 639-2 codes of one book in item order.
func (s *Store) BookLanguageCodes(bookID int) ([]string, error) {
	rows, err := s.metaDb.Query(`
		SELECT l.lang_code FROM languages l
		JOIN books_languages_link bll ON l.id = bll.lang_code
		WHERE bll.book = ? ORDER BY bll.item_order`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := make([]string, 0)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// BookFormats lists the stored file formats of one book.
func (s *Store) BookFormats(bookID int) ([]*model.Data, error) {
	rows, err := s.metaDb.Query(`
		SELECT id, book, format, uncompressed_size, name FROM data
		WHERE book = ? ORDER BY format`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	formats := make([]*model.Data, 0)
	for rows.Next() {
		var d model.Data
		if err := rows.Scan(&d.ID, &d.BookID, &d.Format, &d.Size, &d.Name); err != nil {
			return nil, err
		}
		formats = append(formats, &d)
	}
	return formats, rows.Err()
}

// BookComment returns the comment text of one book, empty when there is none.
func (s *Store) BookComment(bookID int) (string, error) {
	var text string
	err := s.metaDb.QueryRow(`SELECT text FROM comments WHERE book = ?`, bookID).Scan(&text)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

// BookIdentifiers lists the external identifiers of one book.
func (s *Store) BookIdentifiers(bookID int) ([]*model.Identifier, error) {
	rows, err := s.metaDb.Query(`
		SELECT id, book, type, val FROM identifiers
		WHERE book = ? ORDER BY type`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]*model.Identifier, 0)
	for rows.Next() {
		var ident model.Identifier
		if err := rows.Scan(&ident.ID, &ident.BookID, &ident.Type, &ident.Value); err != nil {
			return nil, err
		}
		ids = append(ids, &ident)
	}
	return ids, rows.Err()
}
