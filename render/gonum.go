package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"poisson/model"
)

var gonumFormats = map[string]bool{
	".pdf": true, ".png": true, ".svg": true, ".eps": true,
	".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true,
}

// Gonum 使用 gonum/plot 绘图，支持 pdf, png, svg, eps, jpg, tif
type Gonum struct {
	Size Size
}

func (g *Gonum) Render(fig Figure, path string) error {
	if err := fig.validate(); err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(path)); !gonumFormats[ext] {
		return fmt.Errorf("gonum backend cannot write %q: %w", ext, model.ErrInvalidParameter)
	}
	p := plot.New()
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Legend.Top = true

	for i, c := range fig.Curves {
		pts := make(plotter.XYs, len(c.X))
		for j := range c.X {
			pts[j].X = c.X[j]
			pts[j].Y = c.Y[j]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("curve %q: %v: %w", c.Label, err, model.ErrInvalidParameter)
		}
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(c.Label, l)
	}

	w, h := vg.Length(g.Size.Width)*vg.Inch, vg.Length(g.Size.Height)*vg.Inch
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %w: %w", path, model.ErrIOFailure, err)
	}
	return nil
}
