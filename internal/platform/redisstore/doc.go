// Package redisstore implements store.TaskStore on Redis.
//
// Each task is kept as a JSON document under its own key. A sorted set
// scored by creation time keeps the list order stable. Updates are
// read-modify-write inside WATCH/MULTI so concurrent writers to the same
// task never lose each other's changes.
package redisstore
