// Package memory provides an in-process implementation of store.TaskStore.
// Data lives only as long as the process; it is the default backend for
// local runs and the store used by engine and handler tests.
package memory
