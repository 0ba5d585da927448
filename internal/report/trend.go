package report

import "sort"

// TrendRow compares one sprint's velocity with the immediately preceding
// sprint's. Previous and Delta are nil for the earliest sprint — "no prior
// period" is distinct from a zero delta.
type TrendRow struct {
	Sprint   string `json:"sprint"`
	Velocity int    `json:"velocity"`
	Previous *int   `json:"previous_velocity,omitempty"`
	Delta    *int   `json:"velocity_change,omitempty"`
}

// Trend sorts the metrics ascending by sprint start date (chronology is the
// ordering key, not name or ID) and computes period-over-period deltas in a
// single forward pass carrying the previous velocity.
func Trend(metrics []SprintMetric) []TrendRow {
	ordered := make([]SprintMetric, len(metrics))
	copy(ordered, metrics)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	out := make([]TrendRow, len(ordered))
	for i, m := range ordered {
		row := TrendRow{Sprint: m.Sprint, Velocity: m.Velocity}
		if i > 0 {
			prev := ordered[i-1].Velocity
			delta := m.Velocity - prev
			row.Previous = &prev
			row.Delta = &delta
		}
		out[i] = row
	}
	return out
}
