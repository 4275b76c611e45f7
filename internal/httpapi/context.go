package httpapi

import (
	"context"
)

// serverBaseCtx is the process lifetime context. main cancels it on
// shutdown so long-running NDJSON streams stop instead of holding the
// server open. Background until SetBaseContext is called.
var serverBaseCtx = context.Background()

// SetBaseContext installs the process lifetime context joined into every
// chat handler. Passing nil resets to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context canceled when either the request or the
// server lifetime context ends, so a stream dies on client disconnect and
// on shutdown alike. Callers must invoke cancel to reap the goroutine.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-a.Done():
			cancel()
		case <-b.Done():
			cancel()
		}
	}()
	return ctx, cancel
}
