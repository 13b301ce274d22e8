package httpapi

import "context"

// serverBaseCtx is canceled when the process starts shutting down.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level context that bounds long-lived
// handlers (event streams, proxied requests). nil restores Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// withServerLifetime derives from the request context, keeping its values,
// and is additionally canceled when the base context ends.
func withServerLifetime(req context.Context) (context.Context, context.CancelFunc) {
	return bindContext(req, serverBaseCtx)
}

func bindContext(req, base context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	stop := context.AfterFunc(base, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
