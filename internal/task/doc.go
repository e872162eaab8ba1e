// Package task runs letter generation in the background. Tasks are persisted
// before they are queued so that a restart can recover pending and
// interrupted work; a fixed pool of workers drains the queue.
package task
