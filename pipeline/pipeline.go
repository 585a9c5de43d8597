// Package pipeline runs one solve-and-plot pass:
// resolve paths, ensure directories, solve and relocate the data file,
// load and augment the series, compute the reference curve, render.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"poisson/layout"
	"poisson/model"
	"poisson/render"
	"poisson/solution"
	"poisson/solver"
)

// 运行阶段
const (
	StageParams = "params"
	StageLayout = "layout"
	StageSolve  = "solve"
	StageLoad   = "load"
	StageRender = "render"
)

// StageError 标记失败的阶段
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Result 一次运行的结果
type Result struct {
	Params      model.RunParams
	Paths       layout.Paths
	Points      int
	MaxAbsError float64
	Elapsed     time.Duration
}

type Runner struct {
	Layout   layout.Layout
	Dirs     layout.DirMaker
	Solver   solver.Executor // 为空时跳过求解，直接读取已有数据文件
	Renderer render.Renderer
	WorkDir  string // 求解器写出数据文件的目录

	// 同名文件已存在时是否覆盖
	Overwrite bool

	Log log.FieldLogger
}

func NewRunner(l layout.Layout, exec solver.Executor, r render.Renderer, logger log.FieldLogger) *Runner {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Runner{
		Layout:    l,
		Dirs:      layout.OSDirMaker{},
		Solver:    exec,
		Renderer:  r,
		WorkDir:   ".",
		Overwrite: true,
		Log:       logger,
	}
}

// Run 完整流程: 求解 -> 移动数据文件 -> 绘图
func (r *Runner) Run(ctx context.Context, params model.RunParams) (Result, error) {
	return r.run(ctx, params, true, r.Overwrite)
}

// Plot 只对已有的数据文件绘图
func (r *Runner) Plot(ctx context.Context, params model.RunParams) (Result, error) {
	return r.run(ctx, params, false, r.Overwrite)
}

// Replot 数据文件更新后重新绘图，总是替换已有的图片
func (r *Runner) Replot(ctx context.Context, params model.RunParams) (Result, error) {
	return r.run(ctx, params, false, true)
}

func (r *Runner) run(ctx context.Context, params model.RunParams, solve, overwrite bool) (Result, error) {
	start := time.Now()
	res := Result{Params: params}
	logger := r.Log.WithFields(log.Fields{"n": params.N, "variant": params.Variant})

	paths, err := r.Layout.Resolve(params.N, params.Variant)
	if err != nil {
		return res, stageErr(StageParams, err)
	}
	res.Paths = paths

	if err := paths.Ensure(r.Dirs); err != nil {
		return res, stageErr(StageLayout, err)
	}

	if solve && r.Solver != nil {
		if err := checkOverwrite(paths.DataPath(), overwrite, logger); err != nil {
			return res, stageErr(StageSolve, err)
		}
		src := filepath.Join(r.WorkDir, paths.DataFileName)
		logger.Info("executing...")
		if err := r.Solver.Execute(ctx, params, src); err != nil {
			return res, stageErr(StageSolve, err)
		}
		if err := solver.Relocate(src, paths.DataPath()); err != nil {
			return res, stageErr(StageSolve, err)
		}
	}

	series, err := solution.Load(paths.DataPath())
	if err != nil {
		return res, stageErr(StageLoad, err)
	}
	if len(series) != params.N {
		return res, stageErr(StageLoad, fmt.Errorf("%s has %d points, want %d: %w",
			paths.DataPath(), len(series), params.N, model.ErrMalformedData))
	}
	augmented := solution.Augment(series)
	res.Points = len(augmented)
	res.MaxAbsError = solution.MaxAbsError(series)

	if err := ctx.Err(); err != nil {
		return res, stageErr(StageRender, err)
	}
	if err := checkOverwrite(paths.PlotPath(), overwrite, logger); err != nil {
		return res, stageErr(StageRender, err)
	}
	logger.Info("creating plots...")
	refX, refY := solution.Reference()
	if err := r.Renderer.Render(render.SolutionFigure(augmented, refX, refY), paths.PlotPath()); err != nil {
		return res, stageErr(StageRender, err)
	}

	res.Elapsed = time.Since(start)
	logger.WithFields(log.Fields{
		"plot":          paths.PlotPath(),
		"points":        res.Points,
		"max_abs_error": res.MaxAbsError,
		"elapsed":       res.Elapsed,
	}).Info("done.")
	return res, nil
}

// 同名文件已存在: 允许覆盖时只记录警告，否则报错
func checkOverwrite(path string, overwrite bool, logger log.FieldLogger) error {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w: %w", path, model.ErrIOFailure, err)
	}
	if !overwrite {
		return fmt.Errorf("%s already exists: %w", path, model.ErrIOFailure)
	}
	logger.WithField("path", path).Warn("覆盖已有文件")
	return nil
}
