// Package solver solves -u''(x) = f(x) on (0,1) with u(0) = u(1) = 0 by
// finite differences, producing the two-column data file the plotting step
// consumes.
package solver

import (
	"fmt"
	"math"
	"sort"

	"poisson/model"
)

const (
	General = "general" // 通用 Thomas 算法
	Special = "special" // 针对 (-1, 2, -1) 预先计算对角元的 Thomas 算法
)

// Solver 求解三对角线性方程组 Av = q
type Solver interface {
	Solve(n int) (model.Series, error)
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(n int) (model.Series, error)

func (f SolverFunc) Solve(n int) (model.Series, error) {
	return f(n)
}

var registry = map[string]Solver{
	General: SolverFunc(solveGeneral),
	Special: SolverFunc(solveSpecial),
}

// New 根据算法类型返回求解器
func New(variant string) (Solver, error) {
	s, ok := registry[variant]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q, want one of %v: %w", variant, Variants(), model.ErrInvalidParameter)
	}
	return s, nil
}

// Variants 已注册的算法类型
func Variants() []string {
	vs := make([]string, 0, len(registry))
	for v := range registry {
		vs = append(vs, v)
	}
	sort.Strings(vs)
	return vs
}

// Source 方程右端项 f(x) = 100 e^{-10x}
func Source(x float64) float64 {
	return 100 * math.Exp(-10*x)
}

// 网格与右端项
type grid struct {
	n int
	h float64
	x []float64 // 内部网格点 h, 2h, ..., 1-h
	q []float64 // h^2 f(x)
}

// 初始化网格划分和右端项
func newGrid(n int) (*grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("mesh points must be positive, got %d: %w", n, model.ErrInvalidParameter)
	}
	g := &grid{
		n: n,
		h: 1 / float64(n+1),
		x: make([]float64, n),
		q: make([]float64, n),
	}
	hh := g.h * g.h
	for i := 0; i < n; i++ {
		g.x[i] = g.h * float64(i+1)
		g.q[i] = hh * Source(g.x[i])
	}
	return g, nil
}

func (g *grid) series(v []float64) model.Series {
	s := make(model.Series, g.n)
	for i := range s {
		s[i] = model.Point{X: g.x[i], U: v[i]}
	}
	return s
}
