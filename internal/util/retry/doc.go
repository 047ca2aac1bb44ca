// Package retry retries AWS calls that fail transiently (throttling) with
// exponential backoff.
//
// Errors marked with [Fatal] stop the loop and are returned unwrapped.
package retry
