// Package task runs the task lifecycle: it enforces the legal transitions
// between statuses, accounts for elapsed work across pause and resume, and
// completes a task when its countdown expires.
//
// The Engine owns a TimerRegistry holding at most one countdown per task and
// serializes every operation on the same task ID, including the countdown
// callback itself. Store writes happen before timers are scheduled or
// cancelled, so a failed write leaves the registry and the store agreeing.
//
// Countdowns live in memory only. The Reconciler closes the gap after a
// restart by re-arming timers for tasks the store still reports as running,
// and repeats that sweep on a cron schedule.
package task
