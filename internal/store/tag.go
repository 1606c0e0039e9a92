package store

import (
	"database/sql"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/model"
	"go.uber.org/zap"
)

func scanTag(rows *sql.Rows) (*model.Tag, error) {
	var t model.Tag
	if err := rows.Scan(&t.ID, &t.Name); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTag returns one tag row, or (nil, nil) when the id does not exist.
func (s *Store) GetTag(id int) (*model.Tag, error) {
	var t model.Tag
	err := s.metaDb.QueryRow(`SELECT id, name FROM tags WHERE id = ?`, id).
		Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to query tag", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &t, nil
}

// TagDetails returns the tag plus all its books ordered by book sort key.
func (s *Store) TagDetails(id int) (*model.TagDetails, error) {
	tag, err := s.GetTag(id)
	if err != nil || tag == nil {
		return nil, err
	}

	bookIDs, err := s.linkedBookIDs(
		`SELECT b.id FROM books_tags_link btl JOIN books b ON b.id = btl.book
		 WHERE btl.tag = ? ORDER BY b.sort`, id)
	if err != nil {
		return nil, err
	}

	books := make([]*model.Book, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		book, err := s.GetBook(bookID)
		if err != nil {
			return nil, err
		}
		if book != nil {
			books = append(books, book)
		}
	}

	return &model.TagDetails{Tag: tag, Books: books}, nil
}

// TagDetailsSlice returns the tag plus one page of its visible books.
func (s *Store) TagDetailsSlice(id, index, length int, filter *CalibreFilter) (*model.Tag, *model.Slice[*model.Book], error) {
	tag, err := s.GetTag(id)
	if err != nil || tag == nil {
		return nil, nil, err
	}
	slice, err := s.TagBooksSlice(id, index, length, nil, filter)
	if err != nil {
		return nil, nil, err
	}
	return tag, slice, nil
}
