package store

import (
	"fmt"
	"strings"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/model"
	"go.uber.org/zap"
)

// ListCustomColumns reads the custom column definitions. Composite and
// series-typed columns carry no data in their value tables by Calibre's own
// design, so they are excluded here once instead of at every call site.
func (s *Store) ListCustomColumns() ([]*model.CustomColumn, error) {
	rows, err := s.metaDb.Query(`
		SELECT id, label, name, datatype, is_multiple, normalized
		FROM custom_columns
		WHERE datatype NOT IN ('composite', 'series')
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make([]*model.CustomColumn, 0)
	for rows.Next() {
		var c model.CustomColumn
		if err := rows.Scan(&c.ID, &c.Label, &c.Name, &c.Datatype, &c.IsMulti, &c.Normalized); err != nil {
			return nil, err
		}
		columns = append(columns, &c)
	}
	return columns, rows.Err()
}

// CustomColumns folds the custom column values of one book into one display
// entry per column name. Multiple values of the same column are joined with
// ", ". The dynamic table names are built only from ids read out of
// custom_columns, never from request input.
func (s *Store) CustomColumns(bookID int) ([]model.CustomColumnValue, error) {
	columns, err := s.ListCustomColumns()
	if err != nil {
		return nil, err
	}

	values := make([]model.CustomColumnValue, 0, len(columns))
	for _, column := range columns {
		if column.ID <= 0 {
			continue
		}

		var query string
		switch column.Datatype {
		case "text", "enumeration", "rating":
			query = fmt.Sprintf(`
				SELECT c.value FROM books_custom_column_%d_link l
				JOIN custom_column_%d c ON c.id = l.value
				WHERE l.book = ?`, column.ID, column.ID)
		default:
			query = fmt.Sprintf(`SELECT value FROM custom_column_%d WHERE book = ?`, column.ID)
		}

		parts, err := s.customColumnValues(query, bookID)
		if err != nil {
			log.Error("Failed to query custom column",
				zap.Int("column", column.ID),
				zap.String("datatype", column.Datatype),
				zap.Error(err))
			return nil, err
		}
		if len(parts) == 0 {
			continue
		}

		values = append(values, model.CustomColumnValue{
			Name:  column.Name,
			Value: strings.Join(parts, ", "),
		})
	}
	return values, nil
}

func (s *Store) customColumnValues(query string, bookID int) ([]string, error) {
	rows, err := s.metaDb.Query(query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := make([]string, 0)
	for rows.Next() {
		var raw any
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		parts = append(parts, formatColumnValue(raw))
	}
	return parts, rows.Err()
}

func formatColumnValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		// Integral floats render without the trailing ".0".
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprintf("%v", v)
	}
}
