package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/planloom/planloom/internal/ai"
	"github.com/planloom/planloom/internal/plan"
)

var flagPlain bool

var generateCmd = &cobra.Command{
	Use:   "generate <feature description>",
	Short: "Generate an implementation checklist without the interactive UI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.TrimSpace(strings.Join(args, " "))
		if prompt == "" {
			return nil
		}

		cfg, logger, closer, err := setup()
		if err != nil {
			return err
		}
		defer closer()

		client := ai.NewClient(cfg.APIKey, cfg.Model, logger)
		client.BaseURL = cfg.BaseURL

		p, err := client.GeneratePlan(cmd.Context(), prompt)
		if err != nil {
			return err
		}

		markdown := planMarkdown(p)
		if flagPlain {
			fmt.Fprint(cmd.OutOrStdout(), markdown)
			return nil
		}

		rendered, err := glamour.Render(markdown, "auto")
		if err != nil {
			// Fall back to raw markdown when the terminal renderer fails
			fmt.Fprint(cmd.OutOrStdout(), markdown)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&flagPlain, "plain", false, "print raw markdown instead of rendering it")
}

// planMarkdown renders a plan as a markdown task list.
func planMarkdown(p *plan.Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	for _, task := range p.Tasks {
		box := " "
		if task.Status == plan.TaskStatusDone {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] **%d. %s**\n", box, task.ID, task.Title)
		if task.Description != "" {
			fmt.Fprintf(&b, "  %s\n", task.Description)
		}
		if task.FilePath != "" {
			fmt.Fprintf(&b, "  `%s`\n", task.FilePath)
		}
		if task.CodeSnippet != "" {
			fmt.Fprintf(&b, "\n  ```\n%s\n  ```\n", indent(task.CodeSnippet, "  "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
