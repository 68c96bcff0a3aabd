package analyses

import "context"

type requestIDKey struct{}

func withRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// WithRequestID attaches the originating request ID so job logs can be correlated.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withRequestID(ctx, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// backgroundWithRequestID detaches from the request lifetime but keeps its ID.
func backgroundWithRequestID(ctx context.Context) context.Context {
	return withRequestID(context.Background(), requestIDFromContext(ctx))
}
