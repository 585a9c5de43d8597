// Package render draws the numerical solution against the analytical curve
// and writes the figure to a file.
package render

import (
	"fmt"
	"strings"

	"poisson/model"
)

const (
	BackendGonum = "gonum"
	BackendChart = "chart"
)

// Curve 一条曲线
type Curve struct {
	Label string
	X     []float64
	Y     []float64
}

// Figure 坐标轴标签和曲线
type Figure struct {
	XLabel string
	YLabel string
	Curves []Curve
}

// Renderer writes fig to path; the file format follows the path's extension.
type Renderer interface {
	Render(fig Figure, path string) error
}

// Size 图片尺寸，单位英寸
type Size struct {
	Width  float64
	Height float64
}

// New 根据配置选择绘图后端
func New(backend string, size Size) (Renderer, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("figure size %vx%v: %w", size.Width, size.Height, model.ErrInvalidParameter)
	}
	switch strings.ToLower(backend) {
	case "", BackendGonum:
		return &Gonum{Size: size}, nil
	case BackendChart:
		return &Chart{Size: size}, nil
	default:
		return nil, fmt.Errorf("unknown render backend %q: %w", backend, model.ErrInvalidParameter)
	}
}

// SolutionFigure 数值解与解析解对比图
func SolutionFigure(augmented model.Series, refX, refY []float64) Figure {
	return Figure{
		XLabel: "x",
		YLabel: "u(x)",
		Curves: []Curve{
			{Label: "Numerical solution", X: augmented.Xs(), Y: augmented.Us()},
			{Label: "analytical", X: refX, Y: refY},
		},
	}
}

func (f Figure) validate() error {
	if len(f.Curves) == 0 {
		return fmt.Errorf("figure has no curves: %w", model.ErrInvalidParameter)
	}
	for _, c := range f.Curves {
		if len(c.X) == 0 || len(c.X) != len(c.Y) {
			return fmt.Errorf("curve %q: %d x values, %d y values: %w", c.Label, len(c.X), len(c.Y), model.ErrInvalidParameter)
		}
	}
	return nil
}
