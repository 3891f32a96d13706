// Package collector receives the payloads the error pipeline sends to its
// sinks.
//
//	POST /log      {"error": <LogRecord>}          logged as one structured line
//	POST /stats    {"<segment>": {"<client>": n}}   added to <ns>_collected_total
//	GET  /metrics  Prometheus exposition
//	GET  /health   readiness, JSON
//
// Segments must be one of the configured segment names and clients one of
// the useragent categories; anything else is rejected with 400 so label
// cardinality stays bounded. Accepted writes answer 204.
//
// Router wires the handlers on chi with request IDs, real client IPs and the
// errorlog recoverer, so the collector reports its own panics through the
// same pipeline:
//
//	c := collector.New(m, collector.WithLogger(log))
//	handler := collector.Router(c, collector.RouterOptions{
//	    Reporter: reporter,
//	    Gatherer: registry,
//	})
package collector
