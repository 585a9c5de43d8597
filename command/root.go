// Package command wires the cobra CLI: run, plot, paths, serve and watch.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"poisson/config"
	"poisson/layout"
	"poisson/pipeline"
	"poisson/render"
	"poisson/solver"
)

type options struct {
	configPath string
	verbose    bool

	cfg      config.Config
	logger   *log.Logger
	prompter Prompter
}

// NewRootCmd builds the CLI. prompter asks for missing run parameters; nil
// uses interactive terminal prompts.
func NewRootCmd(prompter Prompter, stderr io.Writer) *cobra.Command {
	if prompter == nil {
		prompter = surveyPrompter{}
	}
	o := &options{prompter: prompter, logger: log.New()}
	o.logger.SetOutput(stderr)

	root := &cobra.Command{
		Use:   "poisson",
		Short: "Solve -u''=100e^{-10x} on (0,1) and plot it against the exact solution",
		Long: `poisson runs the tridiagonal solver for a given number of mesh points and
algorithm, moves the data file to ./results/<algorithm>/ and writes a plot
comparing it with the analytical solution to ./plots/<algorithm>/.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			o.cfg = cfg
			o.logger.SetLevel(cfg.Level)
			if o.verbose {
				o.logger.SetLevel(log.DebugLevel)
			}
			o.logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", config.DefaultPath, "ini configuration file")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRunCmd(o),
		newPlotCmd(o),
		newPathsCmd(o),
		newServeCmd(o),
		newWatchCmd(o),
	)
	return root
}

// Execute 运行 CLI，出错时输出失败阶段和原因
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(nil, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func (o *options) layout() layout.Layout {
	return layout.Layout{
		ResultsRoot: o.cfg.ResultsRoot,
		PlotsRoot:   o.cfg.PlotsRoot,
		PlotExt:     o.cfg.PlotExt,
	}
}

// newRunner 按配置组装流水线; mode 为空时不求解
func (o *options) newRunner(mode, bin string) (*pipeline.Runner, error) {
	r, err := render.New(o.cfg.Backend, render.Size{Width: o.cfg.Width, Height: o.cfg.Height})
	if err != nil {
		return nil, err
	}
	var exec solver.Executor
	switch mode {
	case "":
	case "builtin":
		exec = solver.NewBuiltin(o.logger)
	case "external":
		exec = solver.NewExternal(bin, o.cfg.SolverTimeout, o.logger)
	default:
		return nil, fmt.Errorf("unknown solver mode %q", mode)
	}
	runner := pipeline.NewRunner(o.layout(), exec, r, o.logger)
	runner.WorkDir = o.cfg.WorkDir
	runner.Overwrite = o.cfg.Overwrite
	return runner, nil
}
