package migrate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/migration"
)

// ValidateCmd returns the migrate validate subcommand
func ValidateCmd() *cobra.Command {
	h := &validateHandler{}
	run := handler.SimpleCommand(h)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every stored task's labelIds",
		Long: `Check that every stored task has a labelIds array of at most 12 unique
string ids, and that each id names an existing label.
Exits with code 4 when problems are found.

Examples:
  tally migrate validate
  tally migrate validate --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd, args); err != nil {
				return err
			}
			if h.report != nil && !h.report.Valid() {
				return &cli.ReportedError{
					Code: cli.ExitDataErr,
					Err:  errors.New("integrity check found problems"),
				}
			}
			return nil
		},
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type validateHandler struct {
	report *migration.IntegrityReport
}

// Execute implements the Handler interface
func (h *validateHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	report, err := args.App.Migrator.ValidateIntegrity(ctx)
	if err != nil {
		return nil, err
	}
	h.report = report
	return &reportResult{IntegrityReport: report}, nil
}

type reportResult struct {
	*migration.IntegrityReport
}

// GetIDs implements quiet mode output: one violation code per line
func (r *reportResult) GetIDs() []string {
	codes := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		codes = append(codes, v.Code)
	}
	return codes
}

func (r *reportResult) Render() string {
	if r.Valid() {
		return fmt.Sprintf("%s %d task(s) checked, no problems", styles.SuccessStyle.Render("✓"), r.Total)
	}

	var b strings.Builder
	b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("%d problem(s) in %d task(s)", len(r.Violations), r.Total)))
	for _, v := range r.Violations {
		who := fmt.Sprintf("#%d", v.Index)
		if v.TaskID != "" {
			who += " " + v.TaskID
		}
		fmt.Fprintf(&b, "\n  %s %s %s", styles.SubtitleStyle.Render(who), styles.WarningStyle.Render(v.Code), v.Message)
	}
	return b.String()
}
