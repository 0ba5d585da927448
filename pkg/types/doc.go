// Package types defines the shared domain records loaded from a team's
// dataset: sprints, tasks and the immutable snapshot that bundles them.
// These are the canonical in-memory representations consumed by the report
// engine and the serving layer, separate from any file format.
package types
