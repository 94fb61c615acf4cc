package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services

	// owned is false when the app came from the context and belongs to the caller
	owned bool
}

// NewCLI loads config, opens the store and runs the startup migration check
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}

	if _, err := application.EnsureMigrated(ctx); err != nil {
		// Commands still work on unmigrated data; missing labelIds read as empty
		slog.Error("startup migration failed", "error", err)
	}

	return &CLI{App: application, owned: true}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
