package worker // import "github.com/isidore-books/isidore/internal/worker"

import (
	"github.com/isidore-books/isidore/internal/store"
)

// Job asks a worker to re-check the library database on disk.
type Job struct {
	Reason string
}

type Pool struct {
	queue chan Job
}

func (p *Pool) Push(job Job) {
	p.queue <- job
}

// NewPool creates a pool of background workers serving refresh jobs.
func NewPool(store *store.Store, size int) *Pool {
	workerPool := &Pool{
		queue: make(chan Job),
	}

	for i := 0; i < size; i++ {
		worker := &Worker{id: i, store: store}
		go worker.Run(workerPool.queue)
	}
	return workerPool
}
