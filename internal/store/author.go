package store

import (
	"database/sql"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/model"
	"go.uber.org/zap"
)

func scanAuthor(rows *sql.Rows) (*model.Author, error) {
	var a model.Author
	if err := rows.Scan(&a.ID, &a.Name, &a.Sort); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAuthor returns one author row, or (nil, nil) when the id does not exist.
func (s *Store) GetAuthor(id int) (*model.Author, error) {
	var a model.Author
	err := s.metaDb.QueryRow(`SELECT id, name, sort FROM authors WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &a.Sort)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to query author", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &a, nil
}

// AuthorDetails returns the author plus all their books ordered by book sort
// key. Each book is fetched by its own query; at Calibre's typical scale of
// hundreds of books per author this stays cheap.
func (s *Store) AuthorDetails(id int) (*model.AuthorDetails, error) {
	author, err := s.GetAuthor(id)
	if err != nil || author == nil {
		return nil, err
	}

	bookIDs, err := s.linkedBookIDs(
		`SELECT b.id FROM books_authors_link bal JOIN books b ON b.id = bal.book
		 WHERE bal.author = ? ORDER BY b.sort`, id)
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

	return &model.AuthorDetails{Author: author, Books: books}, nil
}

// AuthorDetailsSlice returns the author plus one page of their visible books.
// An unknown id yields (nil, nil, nil).
func (s *Store) AuthorDetailsSlice(id, index, length int, filter *CalibreFilter) (*model.Author, *model.Slice[*model.Book], error) {
	author, err := s.GetAuthor(id)
	if err != nil || author == nil {
		return nil, nil, err
	}
	slice, err := s.AuthorBooksSlice(id, index, length, nil, filter)
	if err != nil {
		return nil, nil, err
	}
	return author, slice, nil
}

func (s *Store) linkedBookIDs(query string, id int) ([]int, error) {
	rows, err := s.metaDb.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var bookID int
		if err := rows.Scan(&bookID); err != nil {
			return nil, err
		}
		ids = append(ids, bookID)
	}
	return ids, rows.Err()
}
