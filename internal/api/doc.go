// Package api exposes the task service over HTTP. It decodes and validates
// requests, calls the service, and maps service errors to status codes and
// client-safe messages:
//
//	not found            404 "Task not found."
//	illegal transition   400 with the status and the allowed sources
//	validation           400 listing missing fields
//	anything else        500 "An error occurred while ... the task."
package api
