/*
Package monitoring collects Prometheus metrics for the desktop backend.

Metrics live on a private registry so tests can build as many collectors as they
like. The collector satisfies the recorder interfaces of the filesystem, the shell
and the service registry, so those packages never import Prometheus.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	fs := vfs.New(seed, logger).WithRecorder(metrics)
	registry.SetRecorder(metrics)
*/
package monitoring
