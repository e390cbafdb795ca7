// Package shutdown runs cleanup hooks when a long-running command ends.
//
// The watch command blocks until SIGINT, SIGTERM or context cancellation,
// then flushes any pending session save and closes the store:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return svc.Close(ctx) })
//	err := h.Wait(ctx)
package shutdown
