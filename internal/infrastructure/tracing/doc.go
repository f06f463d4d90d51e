// Package tracing attaches request-scoped trace and span ids to contexts and logs
// finished spans through zap.
//
// Ids are prefixed ULIDs (req_* for traces, span_* for spans). Callers may continue a
// trace by sending X-Trace-ID and X-Span-ID; responses always carry both headers.
//
//	tracer := tracing.New("webdesk", logger)
//	defer tracer.Close()
//	router.Use(tracing.HTTPMiddleware(tracer))
//
//	span, ctx := tracer.StartSpan(ctx, "service.execute")
//	defer func() { span.Finish(); tracer.Submit(span) }()
package tracing
