package storage // import "github.com/isidore-books/isidore/internal/storage"

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/util"
	"go.uber.org/zap"
)

// BookFile resolves the on-disk file of one book format inside the library
// directory. Calibre title-cases the words of the first path segment for some
// multi-word author names, so a miss on the stored path retries with that
// segment capitalized.
func BookFile(libraryDir, bookPath, name, format string) (string, bool) {
	filename := name + "." + strings.ToLower(format)

	full := filepath.Join(libraryDir, bookPath, filename)
	if _, err := os.Stat(full); err == nil {
		return full, true
	}

	segments := strings.SplitN(bookPath, "/", 2)
	segments[0] = util.TitleCaseWords(segments[0])
	retryPath := strings.Join(segments, "/")
	full = filepath.Join(libraryDir, retryPath, filename)
	if _, err := os.Stat(full); err == nil {
		return full, true
	}

	log.Debug("Book file not found",
		zap.String("path", bookPath),
		zap.String("name", name),
		zap.String("format", format))
	return "", false
}

// CoverFile resolves a book's cover image, with the same path fallback.
func CoverFile(libraryDir, bookPath string) (string, bool) {
	full := filepath.Join(libraryDir, bookPath, "cover.jpg")
	if _, err := os.Stat(full); err == nil {
		return full, true
	}

	segments := strings.SplitN(bookPath, "/", 2)
	segments[0] = util.TitleCaseWords(segments[0])
	full = filepath.Join(libraryDir, strings.Join(segments, "/"), "cover.jpg")
	if _, err := os.Stat(full); err == nil {
		return full, true
	}
	return "", false
}
