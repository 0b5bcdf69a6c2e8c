// Package events carries task lifecycle notifications from the engine to
// any interested handlers.
//
// The primary components are:
// - TaskEvent: one successful transition (started, paused, completed, ...)
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - InMemoryEventEmitter: synchronous fan-out to registered handlers
package events
