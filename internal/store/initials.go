package store

import (
	"database/sql"
	"fmt"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/model"
	"go.uber.org/zap"
)

// initialTables whitelists the (field, table) pairs the jump index may be
// built over. The names end up in SQL text, so nothing outside this map is
// ever accepted.
var initialTables = map[string]string{
	"authors": "sort",
	"series":  "name",
	"tags":    "name",
	"books":   "sort",
}

func initialExpr(table string) (string, bool) {
	field, ok := initialTables[table]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("substr(upper(%s), 1, 1)", field), true
}

const yearExpr = "substr(pubdate, 1, 4)"

// Initials returns (initial, count) rows over a table's sort field, grouped
// and ordered ascending. Drives the alphabetical jump navigation.
func (s *Store) Initials(table string, so *SearchOptions) ([]model.Initial, error) {
	expr, ok := initialExpr(table)
	if !ok {
		return nil, fmt.Errorf("initials: unsupported table %q", table)
	}
	field := initialTables[table]

	where := ""
	if cond := so.Condition(field); cond != "" {
		where = " WHERE " + cond
	}

	query := fmt.Sprintf(`SELECT %s AS initial, count(*) AS ctr FROM %s%s GROUP BY initial ORDER BY initial ASC`,
		expr, table, where)
	return s.initialRows(query, so.Args())
}

// TitlesYears returns (year, count) rows over book publication dates, newest
// first.
func (s *Store) TitlesYears(so *SearchOptions) ([]model.Initial, error) {
	where := ""
	if cond := so.Condition("sort"); cond != "" {
		where = " WHERE " + cond
	}

	query := fmt.Sprintf(`SELECT %s AS initial, count(*) AS ctr FROM books%s GROUP BY initial ORDER BY initial DESC`,
		yearExpr, where)
	return s.initialRows(query, so.Args())
}

func (s *Store) initialRows(query string, args []any) ([]model.Initial, error) {
	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.metaDb.Query(query, args...)
	if err != nil {
		log.Error("Failed to query initials", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	initials := make([]model.Initial, 0)
	for rows.Next() {
		var i model.Initial
		if err := rows.Scan(&i.Initial, &i.Count); err != nil {
			return nil, err
		}
		initials = append(initials, i)
	}
	return initials, rows.Err()
}

// CalcInitialPos computes where an initial letter first appears in a table's
// sort order: the 0-based rank of its first row, plus the number of rows
// sharing the initial. The primary strategy ranks the grouped initials with a
// window function; SQLite builds older than 3.25 fall back to two plain count
// queries. Both strategies return identical pairs for identical data.
func (s *Store) CalcInitialPos(table, initial string, so *SearchOptions) (pos, count int, err error) {
	expr, ok := initialExpr(table)
	if !ok {
		return 0, 0, fmt.Errorf("initial position: unsupported table %q", table)
	}
	field := initialTables[table]

	if s.supportsWindowFunctions {
		pos, count, err = s.initialPosWindow(table, expr, field, initial, so, "ASC")
		if err == nil {
			return pos, count, nil
		}
		// The probe can pass while a specific window query still fails on
		// exotic builds; degrade permanently and recompute.
		log.Warn("Window-function rank failed, switching to two-pass fallback", zap.Error(err))
		s.supportsWindowFunctions = false
	}
	return s.initialPosFallback(table, expr, field, initial, so, false)
}

// CalcYearPos is CalcInitialPos over publication years, which sort newest
// first.
func (s *Store) CalcYearPos(year string, so *SearchOptions) (pos, count int, err error) {
	if s.supportsWindowFunctions {
		pos, count, err = s.initialPosWindow("books", yearExpr, "sort", year, so, "DESC")
		if err == nil {
			return pos, count, nil
		}
		log.Warn("Window-function rank failed, switching to two-pass fallback", zap.Error(err))
		s.supportsWindowFunctions = false
	}
	return s.initialPosFallback("books", yearExpr, "sort", year, so, true)
}

func (s *Store) initialPosWindow(table, expr, searchField, initial string, so *SearchOptions, direction string) (int, int, error) {
	where := ""
	if cond := so.Condition(searchField); cond != "" {
		where = " WHERE " + cond
	}

	query := fmt.Sprintf(`
		SELECT cum - ctr AS pos, ctr FROM (
			SELECT initial, ctr, sum(ctr) OVER (ORDER BY initial %s) AS cum FROM (
				SELECT %s AS initial, count(*) AS ctr FROM %s%s GROUP BY initial
			)
		) WHERE initial = :initial`, direction, expr, table, where)

	args := append(so.Args(), sql.Named("initial", initial))

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	var pos, count int
	err := s.metaDb.QueryRow(query, args...).Scan(&pos, &count)
	if err == sql.ErrNoRows {
		// Letter not present: its insertion point still has a defined rank.
		return s.initialPosFallback(table, expr, searchField, initial, so, direction == "DESC")
	}
	if err != nil {
		return 0, 0, err
	}
	return pos, count, nil
}

// initialPosFallback computes the same pair with two count queries: rows
// whose initial sorts before the target, and rows whose initial equals it.
func (s *Store) initialPosFallback(table, expr, searchField, initial string, so *SearchOptions, descending bool) (int, int, error) {
	op := "<"
	if descending {
		op = ">"
	}

	conds := ""
	if cond := so.Condition(searchField); cond != "" {
		conds = " AND " + cond
	}
	args := append(so.Args(), sql.Named("initial", initial))

	var pos int
	before := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s %s :initial%s`, table, expr, op, conds)
	if err := s.metaDb.QueryRow(before, args...).Scan(&pos); err != nil {
		return 0, 0, err
	}

	var count int
	equal := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = :initial%s`, table, expr, conds)
	if err := s.metaDb.QueryRow(equal, args...).Scan(&count); err != nil {
		return 0, 0, err
	}

	return pos, count, nil
}
