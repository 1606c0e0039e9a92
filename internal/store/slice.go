package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/metrics"
	"github.com/isidore-books/isidore/internal/model"
	"go.uber.org/zap"
)

func (s *Store) queryContext() (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(context.Background(), s.timeout)
	}
	return context.WithCancel(context.Background())
}

// findSliceFiltered is the pagination core. Given a query family, a 0-based
// page index and a page length, it runs the family's count query, computes
// the page count, and fetches one page of rows with the same predicate.
//
// Degenerate input (negative index, length below one, unknown family) returns
// the empty envelope instead of an error. A zero count short-circuits without
// running the data query. A page index beyond the last page is echoed back
// with empty entries, never clamped.
func findSliceFiltered[T any](s *Store, t SearchType, index, length int, filter *CalibreFilter, so *SearchOptions, scopeID int, scan func(*sql.Rows) (T, error)) (*model.Slice[T], error) {
	if index < 0 || length < 1 || !t.valid() {
		return model.EmptySlice[T](), nil
	}

	fragment, args := filter.BooksFilter()
	countSQL, dataSQL, ok := mkSliceQueries(t, fragment, so)
	if !ok {
		return model.EmptySlice[T](), nil
	}

	args = append(args, so.Args()...)
	if t.scoped() {
		args = append(args, sql.Named("id", scopeID))
	}

	ctx, cancel := s.queryContext()
	defer cancel()

	started := time.Now()
	defer func() {
		metrics.ObserveSliceQuery(t.String(), time.Since(started))
	}()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", countSQL, args))

	var total int
	if err := s.metaDb.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		log.Error("Failed to count slice", zap.Error(err))
		return nil, err
	}

	if total == 0 {
		return &model.Slice[T]{Page: index, Pages: 0, Total: 0, Entries: []T{}}, nil
	}

	pages := total / length
	if total%length > 0 {
		pages++
	}

	dataArgs := append(args, sql.Named("length", length), sql.Named("offset", index*length))

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", dataSQL, dataArgs))

	rows, err := s.metaDb.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		log.Error("Failed to query slice", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	entries := make([]T, 0, length)
	for rows.Next() {
		entry, err := scan(rows)
		if err != nil {
			log.Error("Failed to scan slice row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.Slice[T]{Page: index, Pages: pages, Total: total, Entries: entries}, nil
}

// AuthorsSlice lists authors with at least one visible book, ordered by sort
// key.
func (s *Store) AuthorsSlice(index, length int, so *SearchOptions, filter *CalibreFilter) (*model.Slice[*model.Author], error) {
	return findSliceFiltered(s, SearchAuthor, index, length, filter, so, 0, scanAuthor)
}

// AuthorBooksSlice lists the visible books of one author, ordered by book
// sort key. An unknown author id yields zero entries, not an error.
func (s *Store) AuthorBooksSlice(authorID, index, length int, so *SearchOptions, filter *CalibreFilter) (*model.Slice[*model.Book], error) {
	return findSliceFiltered(s, SearchAuthorBook, index, length, filter, so, authorID, scanBook)
}

// BooksSlice lists visible books under one of the four book orderings.
// Passing a non-book SearchType yields the degenerate envelope.
func (s *Store) BooksSlice(t SearchType, index, length int, so *SearchOptions, filter *CalibreFilter) (*model.Slice[*model.Book], error) {
	switch t {
	case SearchBook, SearchBookByTimestamp, SearchBookByPubdate, SearchBookByLastModified:
		return findSliceFiltered(s, t, index, length, filter, so, 0, scanBook)
	default:
		return model.EmptySlice[*model.Book](), nil
	}
}

// SeriesSlice lists series with at least one visible book, ordered by name.
func (s *Store) SeriesSlice(index, length int, so *SearchOptions, filter *CalibreFilter) (*model.Slice[*model.Series], error) {
	return findSliceFiltered(s, SearchSeries, index, length, filter, so, 0, scanSeries)
}

// SeriesBooksSlice lists the visible books of one series, ordered by series
// index.
func (s *Store) SeriesBooksSlice(seriesID, index, length int, so *SearchOptions, filter *CalibreFilter) (*model.Slice[*model.Book], error) {
	return findSliceFiltered(s, SearchSeriesBook, index, length, filter, so, seriesID, scanBook)
}

// TagsSlice lists tags with at least one visible book, ordered by name.
func (s *Store) TagsSlice(index, length int, so *SearchOptions, filter *CalibreFilter) (*model.Slice[*model.Tag], error) {
	return findSliceFiltered(s, SearchTag, index, length, filter, so, 0, scanTag)
}

// TagBooksSlice lists the visible books carrying one tag, ordered by book
// sort key.
func (s *Store) TagBooksSlice(tagID, index, length int, so *SearchOptions, filter *CalibreFilter) (*model.Slice[*model.Book], error) {
	return findSliceFiltered(s, SearchTagBook, index, length, filter, so, tagID, scanBook)
}
