package mealplan

import (
	"context"
	"sync"

	"github.com/poiesic/mealplan/core"
	"github.com/poiesic/mealplan/storage"
)

// writeJob is one backend write waiting in a kind's queue.
type writeJob struct {
	ctx  context.Context
	kind storage.EntityType
	snap core.Snapshot
	done chan error
}

// writeQueue holds the pending writes for a single entity kind. At most
// one drainer runs per queue, so writes for a kind reach the backend in
// the order they were enqueued.
type writeQueue struct {
	mu       sync.Mutex
	pending  []*writeJob
	draining bool
}

// push appends job and reports whether the caller must start a drainer.
func (q *writeQueue) push(job *writeJob) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, job)
	if q.draining {
		return false
	}
	q.draining = true
	return true
}

// next pops the oldest job. It returns nil and marks the queue idle when
// nothing is left.
func (q *writeQueue) next() *writeJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		q.draining = false
		return nil
	}
	job := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return job
}

// drain runs queued jobs until the queue is empty.
func (q *writeQueue) drain(write func(*writeJob) error) {
	for job := q.next(); job != nil; job = q.next() {
		job.done <- write(job)
	}
}

// fail empties the queue, answering every job with err.
func (q *writeQueue) fail(err error) {
	for job := q.next(); job != nil; job = q.next() {
		job.done <- err
	}
}

// queueKey maps a kind to the queue of the document it is written to.
// The catalog kinds share data.json in a folder, so they share a queue.
func queueKey(kind storage.EntityType) storage.EntityType {
	if kind.IsCatalog() {
		return storage.Recipes
	}
	return kind
}
