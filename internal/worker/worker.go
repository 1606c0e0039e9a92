package worker

import (
	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/store"
	"go.uber.org/zap"
)

type Worker struct {
	id    int
	store *store.Store
}

func (w *Worker) Run(c <-chan Job) {
	log.Debug("Worker started", zap.Int("worker_id", w.id))

	for job := range c {
		log.Debug("Refreshing library metadata",
			zap.Int("worker_id", w.id),
			zap.String("reason", job.Reason))
		w.store.Refresh()
	}
}
