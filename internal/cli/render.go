package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/pipeline"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (default: stdout)
	format   string // svg, dot or json
	engine   string // native or graphviz (svg only)
	detailed bool   // descriptions in dot labels
	fromPlan bool   // the input is a RenderPlan JSON file
	refresh  bool
}

// renderCommand creates the render command for generating diagram artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format: pipeline.FormatSVG,
		engine: pipeline.EngineNative,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a model answer as SVG or DOT",
		Long: `Plan the diagram in a model answer and draw it.

The native engine draws the plan exactly as positioned. The graphviz engine
hands the DOT export to Graphviz, which computes its own layout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro := pipeline.RenderOptions{Format: opts.format, Engine: opts.engine, Detailed: opts.detailed}
			if err := ro.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, &opts, ro)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(pipeline.Formats, ", "))
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "svg engine: "+strings.Join(pipeline.Engines, ", "))
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node descriptions (dot and graphviz)")
	cmd.Flags().BoolVar(&opts.fromPlan, "from-plan", false, "treat the input as a RenderPlan JSON file")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when the plan is cached")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(pipeline.Formats...))
	_ = cmd.RegisterFlagCompletionFunc("engine", fixedCompletion(pipeline.Engines...))

	return cmd
}

func (c *CLI) runRender(ctx context.Context, args []string, opts *renderOpts, ro pipeline.RenderOptions) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := c.planFor(ctx, runner, args, opts)
	if err != nil {
		return err
	}
	if ro.LineHeight == 0 {
		ro.LineHeight = c.Config.Layout.LineHeight
	}

	var spinner *Spinner
	if opts.output != "" && ro.Engine == pipeline.EngineGraphviz {
		spinner = newSpinnerWithContext(ctx, "Running graphviz...")
		spinner.Start()
	}
	data, hit, err := runner.Render(ctx, res, ro)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Graphviz failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Stop()
	}

	if err := writeOutput(opts.output, data); err != nil {
		return err
	}
	if opts.output != "" {
		prog.done("Rendered "+opts.output, "format", ro.Format, "engine", ro.Engine)
		printSuccess("Rendered %s diagram", res.Plan.Template)
		printStats(res.Stats.NodeCount, res.Stats.ConnectorCount, hit || res.Cached)
		printDiagnostics(res)
		printFile(opts.output)
	}
	return nil
}

// planFor plans the input text, or loads a stored plan with --from-plan.
func (c *CLI) planFor(ctx context.Context, runner *pipeline.Runner, args []string, opts *renderOpts) (*pipeline.Result, error) {
	if opts.fromPlan {
		if len(args) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--from-plan needs a file argument")
		}
		p, err := plan.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		data, err := plan.Marshal(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal plan")
		}
		return &pipeline.Result{
			Plan:     p,
			PlanJSON: data,
			Stats:    pipeline.Stats{NodeCount: len(p.Nodes), ConnectorCount: len(p.Connectors)},
		}, nil
	}

	text, err := c.readInput(args)
	if err != nil {
		return nil, err
	}
	return runner.Plan(ctx, text, pipeline.Options{Layout: c.Config.Layout, Refresh: opts.refresh})
}
