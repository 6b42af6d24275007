// Package observability wires OpenTelemetry tracing and metrics into tablekit.
//
// Telemetry is off by default. When enabled, spans and metrics are exported
// over OTLP/HTTP; when disabled the global no-op providers stay in place and
// every helper here is free to call.
//
//	shutdown, err := observability.Setup(ctx, cfg.Telemetry, "tablekit", version.Short())
//	defer shutdown(ctx)
//
//	op := observability.Start(ctx, "lazytable", "collect")
//	defer func() { op.End(err) }()
//
// Health checks back the CLI doctor command:
//
//	health := observability.NewServiceHealth("tablekit", version.Short())
//	health.AddComponent(checker.CheckHealth(ctx))
package observability
