// Package async runs independent tasks concurrently.
//
// [RunParallel] starts every task, waits for all of them and joins their
// errors. Preflight checks use it to query several AWS APIs at once.
package async
