package cli

import (
	"context"

	"github.com/thenoetrevino/tally/internal/app"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// AppKey carries a prebuilt *app.App through a command context
const AppKey ContextKey = "app"

// WithApp returns a context that makes GetCLIFromContext reuse a
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, AppKey, a)
}

// GetCLIFromContext returns a CLI over the app stored in ctx, or opens a
// new one from the user's config. Always Close the result.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if a, ok := ctx.Value(AppKey).(*app.App); ok && a != nil {
			return &CLI{App: a}, nil
		}
	} else {
		ctx = context.Background()
	}
	return NewCLI(ctx)
}
