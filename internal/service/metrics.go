package service

import "github.com/prometheus/client_golang/prometheus"

// ImportMetrics counts import batches and written records. A nil
// *ImportMetrics records nothing.
type ImportMetrics struct {
	imports  *prometheus.CounterVec
	records  prometheus.Counter
	failures *prometheus.CounterVec
}

// NewImportMetrics creates the import counters and registers them with reg.
func NewImportMetrics(reg prometheus.Registerer) (*ImportMetrics, error) {
	m := &ImportMetrics{
		imports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profile_view_imports_total",
				Help: "Total number of snapshot import batches by result.",
			},
			[]string{"result"},
		),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "profile_view_records_imported_total",
			Help: "Total number of profile-view records upserted.",
		}),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profile_view_import_failures_total",
				Help: "Total number of failed import batches by error kind.",
			},
			[]string{"kind"},
		),
	}

	for _, c := range []prometheus.Collector{m.imports, m.records, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *ImportMetrics) observe(count int, err error) {
	if m == nil {
		return
	}
	m.records.Add(float64(count))
	if err != nil {
		m.imports.WithLabelValues("failure").Inc()
		m.failures.WithLabelValues(ErrorKind(err)).Inc()
		return
	}
	m.imports.WithLabelValues("success").Inc()
}
