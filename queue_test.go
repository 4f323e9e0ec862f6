package mealplan

import (
	"errors"
	"testing"

	"github.com/poiesic/mealplan/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(kind storage.EntityType) *writeJob {
	return &writeJob{kind: kind, done: make(chan error, 1)}
}

func TestWriteQueue_SingleDrainer(t *testing.T) {
	var q writeQueue
	assert.True(t, q.push(newJob(storage.Recipes)))
	assert.False(t, q.push(newJob(storage.Recipes)))
	assert.False(t, q.push(newJob(storage.Recipes)))
}

func TestWriteQueue_DrainsInOrder(t *testing.T) {
	var q writeQueue
	jobs := []*writeJob{newJob(storage.Recipes), newJob(storage.Recipes), newJob(storage.Recipes)}
	for _, job := range jobs {
		q.push(job)
	}

	var order []*writeJob
	q.drain(func(job *writeJob) error {
		order = append(order, job)
		// Jobs pushed while draining run in the same pass.
		if len(order) == 1 {
			assert.False(t, q.push(newJob(storage.Recipes)))
		}
		return nil
	})

	require.Len(t, order, 4)
	assert.Equal(t, jobs, order[:3])
	for _, job := range jobs {
		assert.NoError(t, <-job.done)
	}

	// Idle again: the next push starts a new drainer.
	assert.True(t, q.push(newJob(storage.Recipes)))
}

func TestWriteQueue_Fail(t *testing.T) {
	var q writeQueue
	first, second := newJob(storage.Allergens), newJob(storage.Allergens)
	q.push(first)
	q.push(second)

	boom := errors.New("pool closed")
	q.fail(boom)
	assert.ErrorIs(t, <-first.done, boom)
	assert.ErrorIs(t, <-second.done, boom)
	assert.True(t, q.push(newJob(storage.Allergens)))
}

func TestQueueKey(t *testing.T) {
	assert.Equal(t, queueKey(storage.Recipes), queueKey(storage.Ingredients))
	assert.Equal(t, queueKey(storage.Recipes), queueKey(storage.Allergens))
	assert.Equal(t, storage.CurrentMenu, queueKey(storage.CurrentMenu))
	assert.Equal(t, storage.AppSettings, queueKey(storage.AppSettings))
	assert.NotEqual(t, queueKey(storage.CurrentMenu), queueKey(storage.Recipes))
}
