package repository

import (
	"context"
	"time"

	mongotx "courtbook/pkg/db/mongo"
)

// withTimeout wraps the context with a timeout unless it carries a session.
// A SessionContext cannot be wrapped without detaching it from its
// transaction, so it is returned unchanged with a no-op cancel.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if mongotx.InSession(ctx) {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}
