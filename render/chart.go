package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"poisson/model"
)

// 每英寸像素数
const dpi = 96

var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
}

// Chart 使用 go-chart 绘图，只支持 png 和 svg
type Chart struct {
	Size Size
}

func (c *Chart) Render(fig Figure, path string) error {
	if err := fig.validate(); err != nil {
		return err
	}
	var provider chart.RendererProvider
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		provider = chart.PNG
	case ".svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("chart backend cannot write %q: %w", filepath.Ext(path), model.ErrInvalidParameter)
	}

	series := make([]chart.Series, 0, len(fig.Curves))
	for i, cv := range fig.Curves {
		series = append(series, chart.ContinuousSeries{
			Name:    cv.Label,
			XValues: cv.X,
			YValues: cv.Y,
			Style: chart.Style{
				StrokeColor: palette[i%len(palette)],
				StrokeWidth: 2,
			},
		})
	}
	ch := chart.Chart{
		Width:  int(c.Size.Width * dpi),
		Height: int(c.Size.Height * dpi),
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  chart.XAxis{Name: fig.XLabel},
		YAxis:  chart.YAxis{Name: fig.YLabel},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", path, model.ErrIOFailure, err)
	}
	if err := ch.Render(provider, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w: %w", path, model.ErrIOFailure, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w: %w", path, model.ErrIOFailure, err)
	}
	return nil
}
