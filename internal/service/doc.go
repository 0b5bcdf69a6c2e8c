// Package service contains the application use cases for tasks. It sits
// between the HTTP layer and the task store and lifecycle engine.
//
// Creation, listing and lookup go straight to the store. Every status
// change goes through the lifecycle engine, which owns the countdown timers
// and is the only writer of status, elapsed time and results.
//
// Errors returned by the service are one of:
//   - ErrTaskNotFound when the task does not exist
//   - *domain.ValidationError when input fails validation
//   - *domain.TransitionError when the action is illegal from the current status
//   - *TaskServiceError for anything unexpected
package service
