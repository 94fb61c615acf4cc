// Package cli holds helpers for command tests. It is kept apart from
// testutil so service tests can import testutil without a cycle.
package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/app"
	tallycli "github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
	labelservice "github.com/thenoetrevino/tally/internal/services/label"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
	"github.com/thenoetrevino/tally/internal/storage"
	"github.com/thenoetrevino/tally/internal/testutil"
)

// SetupCLITest creates an in-memory store and returns both the store and App instance
func SetupCLITest(t *testing.T) (*storage.MemoryStore, *app.App) {
	t.Helper()

	store := storage.NewMemoryStore()
	appInstance := app.New(store)
	t.Cleanup(func() {
		if err := appInstance.Close(); err != nil {
			t.Logf("Warning: app close error during cleanup: %v", err)
		}
	})

	return store, appInstance
}

// CreateTestLabel creates a label through the service and returns its ID
func CreateTestLabel(t *testing.T, a *app.App, name, color string) string {
	t.Helper()

	label, err := a.LabelService.CreateLabel(context.Background(), labelservice.CreateLabelRequest{
		Name:  name,
		Color: color,
	})
	if err != nil {
		t.Fatalf("Failed to create label %q: %v", name, err)
	}
	return label.ID
}

// CreateTestTask creates a todo carrying labelIDs and returns its ID
func CreateTestTask(t *testing.T, a *app.App, title string, labelIDs ...string) string {
	t.Helper()

	task, err := a.TaskService.CreateTask(context.Background(), taskservice.CreateTaskRequest{
		Title:    title,
		Kind:     models.KindTodo,
		LabelIDs: labelIDs,
	})
	if err != nil {
		t.Fatalf("Failed to create task %q: %v", title, err)
	}
	return task.ID
}

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app is injected through the context so commands never open the user's store.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctxWithApp := tallycli.WithApp(ctx, testApp)
	testutil.SetupCobraCommand(cmd, args)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})

	return output, executeErr
}
