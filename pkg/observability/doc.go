/*
Package observability turns guide lifecycle events into Prometheus metrics
and structured log lines.

Both are exposed as domain.LifecycleHooks, so they plug into the guide with
WithLifecycleHooks and can be stacked with Combine:

	metrics, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Combine(metrics.Hooks(), observability.LoggingHooks(logger))
	guide, _ := waypoint.New(env, factory, waypoint.WithLifecycleHooks(hooks))
*/
package observability
