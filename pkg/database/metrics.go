package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPoolMetrics exposes pgx pool statistics as Prometheus gauges that
// read the pool stats on every scrape. Registration errors (e.g. duplicate
// registration in tests) are ignored.
func RegisterPoolMetrics(pool *pgxpool.Pool, service string) {
	labels := prometheus.Labels{"service": service}

	gauges := []struct {
		name string
		help string
		read func(*pgxpool.Stat) float64
	}{
		{
			name: "pgx_pool_acquired_connections",
			help: "Number of currently acquired connections in the pool",
			read: func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) },
		},
		{
			name: "pgx_pool_idle_connections",
			help: "Number of currently idle connections in the pool",
			read: func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) },
		},
		{
			name: "pgx_pool_total_connections",
			help: "Total number of connections in the pool",
			read: func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) },
		},
	}

	for _, g := range gauges {
		read := g.read
		gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        g.name,
			Help:        g.help,
			ConstLabels: labels,
		}, func() float64 {
			return read(pool.Stat())
		})
		_ = prometheus.DefaultRegisterer.Register(gauge)
	}
}
