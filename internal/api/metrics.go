package api

import (
	"net/http"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/sprintlens/sprintlens/internal/report"
)

// metrics serves GET /metrics in Prometheus text exposition format:
// per-sprint velocity and bug percentage gauges plus the loaded task count.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	bundle, ok := h.store.Bundle()
	if !ok {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))
	enc := expfmt.NewEncoder(w, format)
	for _, mf := range metricFamilies(bundle) {
		if err := enc.Encode(mf); err != nil {
			return
		}
	}
}

// metricFamilies converts the report bundle into Prometheus metric families.
func metricFamilies(b *report.Bundle) []*dto.MetricFamily {
	velocity := gaugeFamily("sprintlens_sprint_velocity_points",
		"Total story points of completed work per sprint.")
	for _, m := range b.Velocity {
		velocity.Metric = append(velocity.Metric,
			gauge(float64(m.Velocity), "sprint", m.Sprint))
	}

	bugPct := gaugeFamily("sprintlens_sprint_bug_percentage",
		"Share of bug-type tasks per sprint, 0-100.")
	for _, row := range b.BugRatio {
		bugPct.Metric = append(bugPct.Metric,
			gauge(row.BugPercentage, "sprint", row.Sprint))
	}

	tasks := gaugeFamily("sprintlens_tasks_loaded",
		"Number of tasks in the current dataset snapshot.")
	tasks.Metric = append(tasks.Metric, gauge(float64(len(b.Cleaned))))

	return []*dto.MetricFamily{velocity, bugPct, tasks}
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	typ := dto.MetricType_GAUGE
	return &dto.MetricFamily{Name: &name, Help: &help, Type: &typ}
}

// gauge builds one gauge sample with optional name/value label pairs.
func gauge(value float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: &value}}
	for i := 0; i+1 < len(labels); i += 2 {
		name, val := labels[i], labels[i+1]
		m.Label = append(m.Label, &dto.LabelPair{Name: &name, Value: &val})
	}
	return m
}
