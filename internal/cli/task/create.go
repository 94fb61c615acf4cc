package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/forms"
	"github.com/thenoetrevino/tally/internal/models"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a todo, activity or habit, optionally tagged with labels.
Labels are given by ID or name and may be repeated.

Examples:
  # Create a todo
  tally task create --title="Fix login bug"

  # Create a labeled habit with notes
  tally task create --title="Stretch" --kind=habit --label=health --notes="10 minutes"

  # Fill in the task with a form
  tally task create --interactive

  # Quiet mode for bash capture
  TASK_ID=$(tally task create --title="Ship it" --label=bug --label=urgent --quiet)
`,
		RunE: handler.Command(&createHandler{}, parseCreateFlags),
	}

	cmd.Flags().String("title", "", "Task title (required unless --interactive)")
	cmd.Flags().String("kind", "", "Task kind: todo, activity or habit (default todo)")
	cmd.Flags().String("notes", "", "Task notes in markdown")
	cmd.Flags().StringArray("label", nil, "Label ID or name (repeatable)")
	cmd.Flags().BoolP("interactive", "i", false, "Fill in the task with a form")

	cli.AddOutputFlags(cmd)

	return cmd
}

// createHandler implements handler.Handler for task creation
type createHandler struct{}

// Execute implements the Handler interface
func (h *createHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	title := args.GetString("title", "")
	notes := args.GetString("notes", "")
	kind, err := handler.ParseKind(args.GetString("kind", ""))
	if err != nil {
		return nil, err
	}

	labelIDs, err := cli.ResolveLabelIDs(ctx, args.App.LabelService, args.GetStringSlice("label", nil))
	if err != nil {
		return nil, err
	}

	if args.GetBool("interactive") {
		labels, err := args.App.LabelService.ListLabels(ctx)
		if err != nil {
			return nil, err
		}
		form := forms.CreateTaskForm(&title, &kind, &notes, &labelIDs, labels).
			WithTheme(forms.Theme(args.App.Config.ColorScheme))
		if err := form.Run(); err != nil {
			return nil, fmt.Errorf("task form: %w", err)
		}
	}

	task, err := args.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:    title,
		Kind:     kind,
		Notes:    notes,
		LabelIDs: labelIDs,
	})
	if err != nil {
		return nil, err
	}

	return newTaskResult(ctx, args.App, task, "created")
}

func parseCreateFlags(cmd *cobra.Command, _ []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	if _, err := handler.ParseKind(kind); err != nil {
		return err
	}
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return nil
	}
	return handler.RequireFlags("title")(cmd, nil)
}

// kindPtr returns nil for "any kind" so updates leave the kind alone
func kindPtr(k models.TaskKind) *models.TaskKind {
	if k == "" {
		return nil
	}
	return &k
}
