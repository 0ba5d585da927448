// Package store holds the current dataset snapshot and its computed report
// bundle behind a read-write lock. Reloads swap both atomically; the HTTP
// API and WebSocket hub only ever read.
package store
