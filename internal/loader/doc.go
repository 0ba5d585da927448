// Package loader reads the JSON Sprint/Task dataset into an immutable
// snapshot and enforces the load-boundary invariants the report engine
// relies on: unique IDs, start < end, non-negative story points, known
// statuses, and referential integrity from every task to its sprint.
//
// Watch reloads the dataset on file changes, keeping the previous snapshot
// when a reload fails. Dirty categorical data (inconsistent type labels,
// missing estimates) is deliberately passed through untouched — that is the
// report normalizer's territory.
package loader
