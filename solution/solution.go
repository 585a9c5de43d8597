// Package solution loads the two-column data file written by a solver, adds
// the Dirichlet boundary points and computes the analytical reference curve.
package solution

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"poisson/deque"
	"poisson/model"
)

// Load 逐行读取数据文件，空行跳过，每行前两列为 x 和 u
func Load(path string) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("data file %s: %w", path, model.ErrNotFound)
		}
		return nil, fmt.Errorf("open data file %s: %w: %w", path, model.ErrIOFailure, err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Read parses the data format from r. On error no partial series is returned.
func Read(r io.Reader) (model.Series, error) {
	var s model.Series
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want 2 columns, got %d: %w", line, len(fields), model.ErrMalformedData)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: x %q: %w", line, fields[0], model.ErrMalformedData)
		}
		u, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: u %q: %w", line, fields[1], model.ErrMalformedData)
		}
		s = append(s, model.Point{X: x, U: u})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w: %w", line+1, model.ErrIOFailure, err)
	}
	return s, nil
}

// Write 按数据文件格式输出，每行 "x u"
func Write(w io.Writer, s model.Series) error {
	bw := bufio.NewWriter(w)
	for _, p := range s {
		if _, err := fmt.Fprintf(bw, "%g %g\n", p.X, p.U); err != nil {
			return fmt.Errorf("write data: %w: %w", model.ErrIOFailure, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write data: %w: %w", model.ErrIOFailure, err)
	}
	return nil
}

// Augment 在序列前补 (0,0)，后补 (1,0)，不修改入参
func Augment(s model.Series) model.Series {
	return AugmentInto(deque.NewArrDeque(len(s)+2), s)
}

// AugmentInto 同 Augment，使用调用方提供的空队列
func AugmentInto(d deque.Deque, s model.Series) model.Series {
	for _, p := range s {
		d.AddLast(p)
	}
	d.AddFirst(model.LeftBoundary)
	d.AddLast(model.RightBoundary)
	return d.Slice()
}

// Analytical 解析解 u(x) = 1 - (1 - e^{-10})x - e^{-10x}
func Analytical(x float64) float64 {
	return 1 - (1-math.Exp(-10))*x - math.Exp(-10*x)
}

// Reference 在 [0, 1] 上等距取 1001 个点计算解析解
func Reference() (xs, ys []float64) {
	xs = floats.Span(make([]float64, model.ReferenceSamples), model.DomainStart, model.DomainEnd)
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = Analytical(x)
	}
	return xs, ys
}

// MaxAbsError 数值解与解析解在网格点上的最大绝对误差
func MaxAbsError(s model.Series) float64 {
	if len(s) == 0 {
		return 0
	}
	diff := make([]float64, len(s))
	for i, p := range s {
		diff[i] = p.U - Analytical(p.X)
	}
	return floats.Norm(diff, math.Inf(1))
}
