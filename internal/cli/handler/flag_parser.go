package handler

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/filter"
	"github.com/thenoetrevino/tally/internal/models"
)

// RequireArgs returns a parseFlags func demanding n non-blank positional args
func RequireArgs(n int, usage string) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return &cli.UsageError{Msg: "usage: " + usage}
		}
		for _, a := range args[:n] {
			if strings.TrimSpace(a) == "" {
				return &cli.UsageError{Msg: "usage: " + usage}
			}
		}
		return nil
	}
}

// RequireFlags returns a parseFlags func demanding non-blank string flags
func RequireFlags(names ...string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		for _, name := range names {
			v, err := cmd.Flags().GetString(name)
			if err != nil || strings.TrimSpace(v) == "" {
				return &cli.UsageError{Msg: "--" + name + " is required"}
			}
		}
		return nil
	}
}

// Chain runs parseFlags funcs in order, stopping at the first error
func Chain(fns ...func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for _, fn := range fns {
			if err := fn(cmd, args); err != nil {
				return err
			}
		}
		return nil
	}
}

// ParseKind parses a --kind value; empty means any kind
func ParseKind(s string) (models.TaskKind, error) {
	kind := models.TaskKind(strings.ToLower(strings.TrimSpace(s)))
	if kind == "" || kind.Valid() {
		return kind, nil
	}
	return "", &cli.UsageError{Msg: "--kind must be one of todo, activity, habit"}
}

// ParseOperator parses an --op value, OR when empty
func ParseOperator(s string) (models.Operator, error) {
	if strings.TrimSpace(s) == "" {
		return models.OperatorOr, nil
	}
	return filter.ParseOperator(s)
}
