// Package metrics exposes handler statistics to Prometheus.
//
//	col := metrics.NewCollector("")
//	col.AddHandler("file", fileHandler)
//	prometheus.MustRegister(col)
package metrics
