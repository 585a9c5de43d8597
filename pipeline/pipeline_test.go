package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poisson/layout"
	"poisson/model"
	"poisson/render"
	"poisson/solver"
)

type fakeRenderer struct {
	calls []string
	fig   render.Figure
}

func (f *fakeRenderer) Render(fig render.Figure, path string) error {
	f.calls = append(f.calls, path)
	f.fig = fig
	return os.WriteFile(path, []byte("plot"), 0o644)
}

func newTestRunner(t *testing.T, exec solver.Executor, r render.Renderer) (*Runner, string) {
	t.Helper()
	root := t.TempDir()
	logger, _ := test.NewNullLogger()
	l := layout.Layout{
		ResultsRoot: filepath.Join(root, "results"),
		PlotsRoot:   filepath.Join(root, "plots"),
		PlotExt:     model.PlotExt,
	}
	runner := NewRunner(l, exec, r, logger)
	runner.WorkDir = root
	return runner, root
}

func writeData(t *testing.T, runner *Runner, params model.RunParams, lines []string) layout.Paths {
	t.Helper()
	paths, err := runner.Layout.Resolve(params.N, params.Variant)
	require.NoError(t, err)
	require.NoError(t, paths.Ensure(layout.OSDirMaker{}))
	require.NoError(t, os.WriteFile(paths.DataPath(), []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return paths
}

func TestRunner_RunEndToEnd(t *testing.T) {
	r, err := render.New(render.BackendGonum, render.Size{Width: 4, Height: 3})
	require.NoError(t, err)
	runner, root := newTestRunner(t, solver.NewBuiltin(nil), r)

	res, err := runner.Run(context.Background(), model.RunParams{N: 10, Variant: "general"})
	require.NoError(t, err)

	assert.Equal(t, 12, res.Points)
	assert.Less(t, res.MaxAbsError, 0.1)
	assert.Equal(t, "general_N_10.txt", res.Paths.DataFileName)
	assert.Equal(t, "general_solution_10.pdf", res.Paths.PlotFileName)
	assert.FileExists(t, filepath.Join(root, "results", "general", "general_N_10.txt"))
	assert.FileExists(t, filepath.Join(root, "plots", "general", "general_solution_10.pdf"))
	// 数据文件已从工作目录移走
	assert.NoFileExists(t, filepath.Join(root, "general_N_10.txt"))
}

func TestRunner_PlotContract(t *testing.T) {
	fake := &fakeRenderer{}
	runner, _ := newTestRunner(t, nil, fake)
	params := model.RunParams{N: 10, Variant: "general"}

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("%.1f %.3f", float64(i+1)/10, 0.05*float64(9-i)/9)
	}
	paths := writeData(t, runner, params, lines)

	res, err := runner.Plot(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Points)
	assert.Equal(t, []string{paths.PlotPath()}, fake.calls)

	assert.Equal(t, "x", fake.fig.XLabel)
	assert.Equal(t, "u(x)", fake.fig.YLabel)
	require.Len(t, fake.fig.Curves, 2)
	num := fake.fig.Curves[0]
	assert.Equal(t, "Numerical solution", num.Label)
	require.Len(t, num.X, 12)
	assert.Equal(t, 0.0, num.X[0])
	assert.Equal(t, 0.0, num.Y[0])
	assert.Equal(t, 1.0, num.X[11])
	assert.Equal(t, 0.0, num.Y[11])
	assert.Equal(t, 0.1, num.X[1])
	assert.Equal(t, 0.05, num.Y[1])
	assert.Equal(t, "analytical", fake.fig.Curves[1].Label)
	assert.Len(t, fake.fig.Curves[1].X, 1001)
}

func requireStage(t *testing.T, err error, stage string, kind error) {
	t.Helper()
	require.Error(t, err)
	var se *StageError
	require.True(t, errors.As(err, &se), "not a stage error: %v", err)
	assert.Equal(t, stage, se.Stage)
	assert.True(t, errors.Is(err, kind), "got %v", err)
	assert.True(t, strings.HasPrefix(err.Error(), stage+": "))
}

func TestRunner_InvalidParams(t *testing.T) {
	fake := &fakeRenderer{}
	runner, _ := newTestRunner(t, solver.NewBuiltin(nil), fake)

	_, err := runner.Run(context.Background(), model.RunParams{N: 0, Variant: "general"})
	requireStage(t, err, StageParams, model.ErrInvalidParameter)
	_, err = runner.Run(context.Background(), model.RunParams{N: 3})
	requireStage(t, err, StageParams, model.ErrInvalidParameter)
	assert.Empty(t, fake.calls)
}

func TestRunner_UnknownVariantFailsInSolve(t *testing.T) {
	fake := &fakeRenderer{}
	runner, _ := newTestRunner(t, solver.NewBuiltin(nil), fake)
	_, err := runner.Run(context.Background(), model.RunParams{N: 3, Variant: "lu"})
	requireStage(t, err, StageSolve, model.ErrInvalidParameter)
	assert.Empty(t, fake.calls)
}

func TestRunner_LoadFailures(t *testing.T) {
	params := model.RunParams{N: 3, Variant: "special"}

	t.Run("missing", func(t *testing.T) {
		fake := &fakeRenderer{}
		runner, _ := newTestRunner(t, nil, fake)
		_, err := runner.Plot(context.Background(), params)
		requireStage(t, err, StageLoad, model.ErrNotFound)
		assert.Empty(t, fake.calls)
	})

	t.Run("malformed", func(t *testing.T) {
		fake := &fakeRenderer{}
		runner, _ := newTestRunner(t, nil, fake)
		writeData(t, runner, params, []string{"0.25 0.1", "0.5", "0.75 0.1"})
		_, err := runner.Plot(context.Background(), params)
		requireStage(t, err, StageLoad, model.ErrMalformedData)
		assert.Empty(t, fake.calls)
	})

	t.Run("wrong line count", func(t *testing.T) {
		fake := &fakeRenderer{}
		runner, _ := newTestRunner(t, nil, fake)
		writeData(t, runner, params, []string{"0.25 0.1", "0.5 0.2"})
		_, err := runner.Plot(context.Background(), params)
		requireStage(t, err, StageLoad, model.ErrMalformedData)
		assert.Empty(t, fake.calls)
	})
}

type brokenDirs struct{}

func (brokenDirs) MkdirAll(string) error { return os.ErrPermission }

func TestRunner_LayoutFailure(t *testing.T) {
	fake := &fakeRenderer{}
	runner, _ := newTestRunner(t, solver.NewBuiltin(nil), fake)
	runner.Dirs = brokenDirs{}
	_, err := runner.Run(context.Background(), model.RunParams{N: 3, Variant: "general"})
	requireStage(t, err, StageLayout, model.ErrIOFailure)
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.Empty(t, fake.calls)
}

func TestRunner_Overwrite(t *testing.T) {
	params := model.RunParams{N: 4, Variant: "general"}

	t.Run("allowed", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		runner, _ := newTestRunner(t, solver.NewBuiltin(logger), &fakeRenderer{})
		runner.Log = logger
		_, err := runner.Run(context.Background(), params)
		require.NoError(t, err)
		_, err = runner.Run(context.Background(), params)
		require.NoError(t, err)

		warnings := 0
		for _, e := range hook.AllEntries() {
			if e.Level == log.WarnLevel {
				warnings++
			}
		}
		// 数据文件和图片各一次
		assert.Equal(t, 2, warnings)
	})

	t.Run("refused", func(t *testing.T) {
		runner, _ := newTestRunner(t, solver.NewBuiltin(nil), &fakeRenderer{})
		runner.Overwrite = false
		_, err := runner.Run(context.Background(), params)
		require.NoError(t, err)
		_, err = runner.Run(context.Background(), params)
		requireStage(t, err, StageSolve, model.ErrIOFailure)

		_, err = runner.Plot(context.Background(), params)
		requireStage(t, err, StageRender, model.ErrIOFailure)
	})

	t.Run("replot ignores policy", func(t *testing.T) {
		fake := &fakeRenderer{}
		runner, _ := newTestRunner(t, solver.NewBuiltin(nil), fake)
		runner.Overwrite = false
		_, err := runner.Run(context.Background(), params)
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			_, err = runner.Replot(context.Background(), params)
			require.NoError(t, err)
		}
		assert.Len(t, fake.calls, 3)
	})
}

func TestRunner_CanceledBeforeRender(t *testing.T) {
	fake := &fakeRenderer{}
	runner, _ := newTestRunner(t, nil, fake)
	params := model.RunParams{N: 1, Variant: "general"}
	writeData(t, runner, params, []string{"0.5 0.2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.Plot(ctx, params)
	requireStage(t, err, StageRender, context.Canceled)
	assert.Empty(t, fake.calls)
}
