package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/thenoetrevino/tally/cmd"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return cli.ExitError
	}

	// Logging is best effort; commands still run without a log file
	if closer, err := logging.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	} else {
		defer closer.Close()
	}

	styles.Init(cfg.ColorScheme)

	if err := cmd.Execute(context.Background()); err != nil {
		var reported *cli.ReportedError
		// ReportedErrors were already printed by the command's formatter
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		slog.Debug("command failed", "error", err)
		return cli.ExitCodeFor(err)
	}
	return cli.ExitSuccess
}
