package crmapp

import "github.com/bft-labs/crmapp/internal/app"

// State is the lifecycle state of a Frontend.
type State = app.State

const (
	StateStopped  = app.StateStopped
	StateStarting = app.StateStarting
	StateRunning  = app.StateRunning
	StateStopping = app.StateStopping
	StateCrashed  = app.StateCrashed
)

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler receives lifecycle events. Calls are synchronous, so
// implementations should return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
}

// eventEmitter fans app.EventEmitter calls out to EventHandlers.
type eventEmitter struct {
	handlers []EventHandler
}

func (e *eventEmitter) OnStateChange(previous, current app.State, reason string) {
	event := StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	}
	for _, h := range e.handlers {
		h.OnStateChange(event)
	}
}
