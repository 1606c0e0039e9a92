package worker

import (
	"context"
	"os"
	"time"

	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/store"
	"go.uber.org/zap"
)

// Watch polls the library database's modification time and pushes a refresh
// job whenever it changes. Calibre rewrites metadata.db on edits, so mtime is
// the only change signal available.
func Watch(ctx context.Context, s *store.Store, pool *Pool, path string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := s.LastModified()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fi, err := os.Stat(path)
			if err != nil {
				log.Warn("Library database not accessible", zap.String("path", path), zap.Error(err))
				continue
			}
			if fi.ModTime().After(last) {
				last = fi.ModTime()
				pool.Push(Job{Reason: "metadata.db changed"})
			}
		}
	}
}
