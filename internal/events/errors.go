package events

import "errors"

var (
	// ErrQueueFull is returned by SendEvent when the queue has no room left
	ErrQueueFull = errors.New("event queue full")

	// ErrClosed is returned by SendEvent after Close
	ErrClosed = errors.New("event bus closed")
)
