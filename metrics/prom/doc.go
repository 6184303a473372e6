// Package prom exports edit metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c := prom.New(reg, prom.WithNamespace("stylealign"))
//	runner := stylealign.NewRunner(editor, stylealign.WithMetricsCollector(c))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom
