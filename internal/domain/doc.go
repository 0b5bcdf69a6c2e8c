// Package domain holds the Task entity, its status machine and the errors
// raised when a task is invalid or a transition is not allowed.
package domain
