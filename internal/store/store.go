package store // import "github.com/isidore-books/isidore/internal/store"

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/util"
	"go.uber.org/zap"
)

// Store reads a Calibre library database. The database is never written;
// the only state owned here are two memoized scalars (user version, file
// modification time) and the capability flags probed at open.
type Store struct {
	metaDb  *sql.DB
	metaDSN string
	ok      bool

	// Query timeout, zero means none.
	timeout time.Duration

	mu           sync.Mutex
	userVersion  int
	lastModified time.Time

	// Probed once at open, see capabilities().
	supportsWindowFunctions bool
	hasNotes                bool
}

// Open opens the Calibre metadata database read-only and probes the
// capabilities of the underlying SQLite build. A missing or unreadable
// database leaves the store in a permanently not-ok state; callers check
// LibraryOk before anything else.
func Open(metaDSN string, timeoutSeconds int) (*Store, error) {
	util.RegisterSQLFunctions()

	s := &Store{
		metaDSN: metaDSN,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}

	if _, err := os.Stat(metaDSN); err != nil {
		log.Error("Calibre database not accessible", zap.String("path", metaDSN), zap.Error(err))
		return s, err
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", metaDSN))
	if err != nil {
		return s, err
	}
	// ATTACH applies per connection, keep a single one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		log.Error("Calibre database not readable", zap.String("path", metaDSN), zap.Error(err))
		db.Close()
		return s, err
	}

	s.metaDb = db
	s.ok = true
	s.capabilities()
	s.attachNotes()
	s.Refresh()
	return s, nil
}

// NewStore wraps an already opened database handle; used by tests.
func NewStore(metaDb *sql.DB) *Store {
	util.RegisterSQLFunctions()
	s := &Store{metaDb: metaDb, ok: true}
	s.capabilities()
	return s
}

// LibraryOk reports whether the Calibre database was opened successfully.
func (s *Store) LibraryOk() bool {
	return s.ok
}

func (s *Store) Close() {
	if s.metaDb != nil {
		s.metaDb.Close()
	}
}

func (s *Store) Ping() error {
	if !s.ok {
		return fmt.Errorf("calibre library not open")
	}
	return s.metaDb.Ping()
}

func (s *Store) DBStats() sql.DBStats {
	return s.metaDb.Stats()
}

// capabilities probes the SQLite build once instead of catching failures at
// every call site. Window functions need SQLite >= 3.25.
func (s *Store) capabilities() {
	var n int
	err := s.metaDb.QueryRow(`SELECT count(*) OVER () FROM (SELECT 1)`).Scan(&n)
	s.supportsWindowFunctions = err == nil
	if !s.supportsWindowFunctions {
		log.Warn("SQLite build lacks window functions, using two-pass jump index")
	}
}

// attachNotes attaches the optional Calibre notes database. Failure only
// disables the notes feature, it never aborts startup.
func (s *Store) attachNotes() {
	notesPath := filepath.Join(filepath.Dir(s.metaDSN), ".calnotes", "notes.db")
	if _, err := os.Stat(notesPath); err != nil {
		s.hasNotes = false
		return
	}
	if _, err := s.metaDb.Exec(`ATTACH DATABASE ? AS notes_db`, notesPath); err != nil {
		log.Warn("Failed to attach notes database", zap.String("path", notesPath), zap.Error(err))
		s.hasNotes = false
		return
	}
	s.hasNotes = true
}

// Refresh recomputes the memoized user version and the database file
// modification time. Called at open and by the library watcher when the
// file changes on disk.
func (s *Store) Refresh() {
	if !s.ok {
		return
	}

	var version int
	if err := s.metaDb.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		log.Warn("Failed to read user_version", zap.Error(err))
	}

	var modified time.Time
	if fi, err := os.Stat(s.metaDSN); err == nil {
		modified = fi.ModTime()
	}

	s.mu.Lock()
	s.userVersion = version
	s.lastModified = modified
	s.mu.Unlock()
}

// UserVersion returns the memoized PRAGMA user_version of the library.
func (s *Store) UserVersion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userVersion
}

// LastModified returns the library file modification time seen at the last
// refresh.
func (s *Store) LastModified() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastModified
}

// HasNotes reports whether the optional notes database is attached.
func (s *Store) HasNotes() bool {
	return s.hasNotes
}

// LibraryStats is a set of per-entity counts for the stats endpoint.
type LibraryStats struct {
	Books   int `json:"books"`
	Authors int `json:"authors"`
	Tags    int `json:"tags"`
	Series  int `json:"series"`
}

func (s *Store) Stats() (*LibraryStats, error) {
	stats := &LibraryStats{}
	for _, c := range []struct {
		table string
		dst   *int
	}{
		{"books", &stats.Books},
		{"authors", &stats.Authors},
		{"tags", &stats.Tags},
		{"series", &stats.Series},
	} {
		if err := s.metaDb.QueryRow(`SELECT count(*) FROM ` + c.table).Scan(c.dst); err != nil {
			return nil, err
		}
	}
	return stats, nil
}
