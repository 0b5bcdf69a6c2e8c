// Package store defines the TaskStore contract shared by the memory,
// postgres and redis backends, together with the partial TaskUpdate they
// all apply and the sentinel errors they return.
package store
