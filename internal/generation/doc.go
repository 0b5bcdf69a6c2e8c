// Package generation produces the random result a task reports when its
// simulated work completes.
package generation
