package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const requestIDKey ctxKey = "req_id"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Time starts timing op. Call the returned func with a pointer to the
// operation's error when it finishes:
//
//	defer obs.Time(ctx, logger, "fetch_venue")(&err)
func Time(ctx context.Context, logger *slog.Logger, op string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.WarnContext(ctx, "operation failed",
				"req_id", reqID, "op", op, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		logger.DebugContext(ctx, "operation finished",
			"req_id", reqID, "op", op, "dur_ms", dur.Milliseconds())
	}
}
