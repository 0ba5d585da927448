// Package report computes agile-team performance reports from a loaded
// Sprint/Task snapshot.
//
// normalize.go maps dirty free-text task types to the canonical set
// {STORY, BUG, OTHER} and coalesces missing story points to 0.
//
// aggregate.go provides the grouped reductions: velocity by sprint, bug
// ratio by sprint and workload by assignee. Velocity follows inner-join
// semantics — a sprint with no Done tasks is omitted, not reported as zero.
//
// rank.go assigns standard competition ranks (ties share a rank, the next
// distinct score skips by the tie-group size: [10,10,8] → [1,1,3]).
//
// trend.go computes period-over-period velocity deltas over sprints sorted
// by start date; the earliest sprint has no previous period.
//
// engine.go composes the above into the seven named reports. Every
// computation is a pure pass over the immutable snapshot — reports can be
// built independently and in any order.
package report
