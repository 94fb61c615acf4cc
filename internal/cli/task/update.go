package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task>",
		Short: "Update a task",
		Long: `Change a task's title, kind, notes or completion. Only the flags
you pass are changed. Use attach, detach and labels to change labels.

Examples:
  tally task update 8ZK3QF2M --title="Fix login bug for real"
  tally task update 8ZK3QF2M --done
  tally task update 8ZK3QF2M --done=false --kind=activity --json
`,
		RunE: handler.Command(&updateHandler{}, handler.Chain(
			handler.RequireArgs(1, "tally task update <task> [flags]"),
			parseUpdateFlags,
		)),
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("kind", "", "New kind: todo, activity or habit")
	cmd.Flags().String("notes", "", "New notes in markdown")
	cmd.Flags().Bool("done", false, "Mark the task completed (--done=false reopens it)")

	cli.AddOutputFlags(cmd)

	return cmd
}

type updateHandler struct{}

// Execute implements the Handler interface
func (h *updateHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	existing, err := cli.ResolveTask(ctx, args.App.TaskService, args.Arg(0))
	if err != nil {
		return nil, err
	}

	kind, err := handler.ParseKind(args.GetString("kind", ""))
	if err != nil {
		return nil, err
	}

	req := taskservice.UpdateTaskRequest{
		ID:    existing.ID,
		Title: args.StringPtr("title"),
		Kind:  kindPtr(kind),
		Notes: args.StringPtr("notes"),
	}
	if args.Has("done") {
		done := args.GetBool("done")
		req.Completed = &done
	}

	task, err := args.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		return nil, err
	}

	return newTaskResult(ctx, args.App, task, "updated")
}

func parseUpdateFlags(cmd *cobra.Command, _ []string) error {
	changed := false
	for _, name := range []string{"title", "kind", "notes", "done"} {
		changed = changed || cmd.Flags().Changed(name)
	}
	if !changed {
		return &cli.UsageError{Msg: "nothing to update: pass --title, --kind, --notes or --done"}
	}
	kind, _ := cmd.Flags().GetString("kind")
	_, err := handler.ParseKind(kind)
	return err
}
