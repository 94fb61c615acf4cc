// Package tutorial prints the built-in quick start guide
package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli/styles"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Print a quick start guide",
		Long: `Print the tally quick start guide as markdown.

Pass --render to format it for the terminal instead of printing the raw
markdown, which is handy for piping into other tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := tutorialContent
			if render {
				out = styles.RenderMarkdown(tutorialContent, styles.CardWidth)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Render the markdown for the terminal")
	return cmd
}
