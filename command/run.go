package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"poisson/model"
)

type runFlags struct {
	n       int
	variant string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.n, "mesh", "n", 0, "number of mesh points N")
	cmd.Flags().StringVarP(&f.variant, "algorithm", "a", "", "algorithm: general/special")
}

// params 命令行未给出的参数交互式输入
func (f *runFlags) params(o *options, external bool) (model.RunParams, error) {
	p := model.RunParams{N: f.n, Variant: f.variant}
	if p.N == 0 || p.Variant == "" {
		if err := o.prompter.Ask(&p, external); err != nil {
			return p, err
		}
	}
	return p, nil
}

func newRunCmd(o *options) *cobra.Command {
	var (
		f    runFlags
		mode string
		bin  string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Solve, move the data file into place and plot it",
		Example: `  poisson run -n 10 -a general
  poisson run -n 1000 -a special --solver external --bin ./main.out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" {
				mode = o.cfg.SolverMode
			}
			if bin == "" {
				bin = o.cfg.SolverBin
			}
			params, err := f.params(o, mode == "external")
			if err != nil {
				return err
			}
			runner, err := o.newRunner(mode, bin)
			if err != nil {
				return err
			}
			res, err := runner.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Paths.PlotPath())
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&mode, "solver", "", "builtin or external (default from config)")
	cmd.Flags().StringVar(&bin, "bin", "", "external solver executable (default from config)")
	return cmd
}

func newPlotCmd(o *options) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot an existing data file from ./results/<algorithm>/",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := f.params(o, true)
			if err != nil {
				return err
			}
			runner, err := o.newRunner("", "")
			if err != nil {
				return err
			}
			res, err := runner.Plot(cmd.Context(), params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Paths.PlotPath())
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newPathsCmd(o *options) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the data and plot paths for N and algorithm",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := f.params(o, true)
			if err != nil {
				return err
			}
			paths, err := o.layout().Resolve(params.N, params.Variant)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "data_file:", paths.DataFileName)
			fmt.Fprintln(out, "plot_file:", paths.PlotFileName)
			fmt.Fprintln(out, "data_dir: ", paths.DataDir)
			fmt.Fprintln(out, "plot_dir: ", paths.PlotDir)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
