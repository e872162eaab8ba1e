// Package events decouples the surfaces that accept letter requests from the
// task runner that fulfils them. The webhook handler emits a
// TypeLetterRequested event; the task package registers a handler that turns
// it into a background task.
package events
