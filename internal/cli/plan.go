package cli

import (
	"github.com/spf13/cobra"

	"github.com/paupedrejon/conceptmap/pkg/pipeline"
)

// planCommand creates the plan command, which prints the RenderPlan JSON.
func (c *CLI) planCommand() *cobra.Command {
	var (
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "plan [file]",
		Short: "Compute the render plan for a model answer",
		Long: `Extract the diagram JSON from a model answer (a file, or stdin when the
argument is omitted or "-") and print the positioned RenderPlan as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.readInput(args)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Plan(cmd.Context(), text, pipeline.Options{
				Layout:  c.Config.Layout,
				Refresh: refresh,
			})
			if err != nil {
				return err
			}

			if err := writeOutput(output, append(res.PlanJSON, '\n')); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Planned %s diagram", res.Plan.Template)
				printStats(res.Stats.NodeCount, res.Stats.ConnectorCount, res.Cached)
				printDiagnostics(res)
				printFile(output)
				printNextStep("Draw it", appName+" render --from-plan "+output+" -o diagram.svg")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when the plan is cached")

	return cmd
}
