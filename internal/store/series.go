package store

import (
	"database/sql"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/model"
	"go.uber.org/zap"
)

func scanSeries(rows *sql.Rows) (*model.Series, error) {
	var sr model.Series
	if err := rows.Scan(&sr.ID, &sr.Name, &sr.Sort); err != nil {
		return nil, err
	}
	return &sr, nil
}

// GetSeries returns one series row, or (nil, nil) when the id does not exist.
func (s *Store) GetSeries(id int) (*model.Series, error) {
	var sr model.Series
	err := s.metaDb.QueryRow(`SELECT id, name, sort FROM series WHERE id = ?`, id).
		Scan(&sr.ID, &sr.Name, &sr.Sort)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to query series", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &sr, nil
}

// SeriesDetails returns the series plus all its books ordered by series index.
func (s *Store) SeriesDetails(id int) (*model.SeriesDetails, error) {
	series, err := s.GetSeries(id)
	if err != nil || series == nil {
		return nil, err
	}

	bookIDs, err := s.linkedBookIDs(
		`SELECT b.id FROM books_series_link bsl JOIN books b ON b.id = bsl.book
		 WHERE bsl.series = ? ORDER BY b.series_index`, id)
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

	return &model.SeriesDetails{Series: series, Books: books}, nil
}

// SeriesDetailsSlice returns the series plus one page of its visible books.
func (s *Store) SeriesDetailsSlice(id, index, length int, filter *CalibreFilter) (*model.Series, *model.Slice[*model.Book], error) {
	series, err := s.GetSeries(id)
	if err != nil || series == nil {
		return nil, nil, err
	}
	slice, err := s.SeriesBooksSlice(id, index, length, nil, filter)
	if err != nil {
		return nil, nil, err
	}
	return series, slice, nil
}
