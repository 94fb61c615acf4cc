package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tally/internal/cli"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"label", "task", "migrate", "browse", "tutorial"} {
		assert.Contains(t, names, want)
	}
}

func TestNewRootCmd_UnknownFlagIsUsageError(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"label", "list", "--no-such-flag"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)

	var usageErr *cli.UsageError
	assert.ErrorAs(t, err, &usageErr)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}
