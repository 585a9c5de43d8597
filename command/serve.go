package command

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"poisson/layout"
	"poisson/model"
	"poisson/server"
	"poisson/watcher"
)

func newServeCmd(o *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept run requests over a websocket at /ws",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = o.cfg.Addr
			}
			runner, err := o.newRunner(o.cfg.SolverMode, o.cfg.SolverBin)
			if err != nil {
				return err
			}
			upgrader := websocket.Upgrader{
				ReadBufferSize:  1024,
				WriteBufferSize: 1024,
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			}
			return server.NewServer(addr, upgrader, runner, o.logger).Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func newWatchCmd(o *options) *cobra.Command {
	var (
		variant  string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-plot whenever a data file in ./results/<algorithm>/ changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			// 只用于得到数据目录
			paths, err := o.layout().Resolve(1, variant)
			if err != nil {
				return err
			}
			if err := paths.Ensure(layout.OSDirMaker{}); err != nil {
				return err
			}
			runner, err := o.newRunner("", "")
			if err != nil {
				return err
			}
			w, err := watcher.New(paths.DataDir, debounce, func(ctx context.Context, p model.RunParams) error {
				_, err := runner.Replot(ctx, p)
				return err
			}, o.logger)
			if err != nil {
				return err
			}
			defer w.Close()
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&variant, "algorithm", "a", "", "algorithm whose results directory is watched")
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "wait for writes to settle")
	_ = cmd.MarkFlagRequired("algorithm")
	return cmd
}
