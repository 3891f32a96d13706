// Package metrics exposes Prometheus counters for the error pipeline.
//
// A single Metrics value owns every collector and registers them on the
// Registerer it is given, so tests can use a private registry:
//
//	reg := prometheus.NewRegistry()
//	m, err := metrics.New(reg, "errorlog")
//	if err != nil {
//	    return err
//	}
//	m.ReportSent("apiError", "ios-safari")
//
// Exported series:
//
//	<ns>_reports_total{segment,client}       reports handed to the metrics sink
//	<ns>_deliveries_total{sink,outcome}      sink deliveries by outcome
//	<ns>_duplicates_total                    reports dropped as already seen
//	<ns>_collected_total{segment,client}     stats received by the collector
//	<ns>_logs_collected_total{env,api_failure} log records received by the collector
//
// A nil *Metrics is valid and records nothing.
package metrics
