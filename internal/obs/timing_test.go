package obs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestRequestID(t *testing.T) {
	if id := RequestID(context.Background()); id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
	ctx := WithRequestID(context.Background(), "abc")
	if id := RequestID(ctx); id != "abc" {
		t.Fatalf("got %q, want abc", id)
	}
}

func TestTimeLogsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := WithRequestID(context.Background(), "req-1")

	err := errors.New("boom")
	Time(ctx, logger, "fetch_venue")(&err)

	out := buf.String()
	for _, want := range []string{"operation failed", "req_id=req-1", "op=fetch_venue", "err=boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %q", out, want)
		}
	}

	buf.Reset()
	var ok error
	Time(ctx, logger, "fetch_venue")(&ok)
	if !strings.Contains(buf.String(), "operation finished") {
		t.Fatalf("unexpected log %q", buf.String())
	}
}
