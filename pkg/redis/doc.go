// Package redis connects to the Redis server that backs the shared dedup
// set, so several processes report a given failure once per window.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    if err != nil {
//	        return err
//	    }
//	    defer client.Close()
//	    reporter := errorlog.New(errCfg, errorlog.WithRedis(client))
//	}
//
// Connect pings the server and retries up to RetryAttempts times,
// RetryInterval apart, within ConnectTimeout. Healthcheck adapts a client to
// a readiness probe.
package redis
