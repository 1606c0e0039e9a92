package store

import (
	"database/sql"

	"github.com/isidore-books/isidore/internal/model"
)

// GetNote reads one entry of the optional Calibre notes database, keyed by
// the column name ("authors", "tags", ...) and the item id within it.
// Returns (nil, nil) when notes are unavailable or no note exists.
func (s *Store) GetNote(colName string, itemID int) (*model.Note, error) {
	if !s.hasNotes {
		return nil, nil
	}

	var note model.Note
	err := s.metaDb.QueryRow(`
		SELECT item, colname, doc FROM notes_db.notes
		WHERE colname = ? AND item = ?`, colName, itemID).
		Scan(&note.Item, &note.ColName, &note.Doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}
