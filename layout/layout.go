// Package layout derives the data-file and plot-file names of a run and the
// directories they are placed in.
package layout

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"poisson/model"
)

// Layout 存放结果与图片的根目录
type Layout struct {
	ResultsRoot string
	PlotsRoot   string
	PlotExt     string
}

// Default 与教程脚本一致的约定: ./results/<variant>, ./plots/<variant>, .pdf
func Default() Layout {
	return Layout{
		ResultsRoot: model.ResultsRoot,
		PlotsRoot:   model.PlotsRoot,
		PlotExt:     model.PlotExt,
	}
}

// Paths is the set of names derived from one run's parameters.
type Paths struct {
	DataFileName string
	PlotFileName string
	DataDir      string
	PlotDir      string
}

// DataPath 数据文件完整路径
func (p Paths) DataPath() string {
	return join(p.DataDir, p.DataFileName)
}

// PlotPath 图片完整路径
func (p Paths) PlotPath() string {
	return join(p.PlotDir, p.PlotFileName)
}

// Resolve 使用默认约定
func Resolve(n int, variant string) (Paths, error) {
	return Default().Resolve(n, variant)
}

// Resolve derives the paths of a run. It has no side effects.
func (l Layout) Resolve(n int, variant string) (Paths, error) {
	if err := Validate(n, variant); err != nil {
		return Paths{}, err
	}
	ext := l.PlotExt
	if ext == "" {
		ext = model.PlotExt
	}
	num := strconv.Itoa(n)
	return Paths{
		DataFileName: variant + "_N_" + num + model.DataExt,
		PlotFileName: variant + "_solution_" + num + ext,
		DataDir:      join(l.ResultsRoot, variant),
		PlotDir:      join(l.PlotsRoot, variant),
	}, nil
}

// Validate 校验运行参数
func Validate(n int, variant string) error {
	if n <= 0 {
		return fmt.Errorf("mesh points must be positive, got %d: %w", n, model.ErrInvalidParameter)
	}
	if variant == "" {
		return fmt.Errorf("algorithm variant is empty: %w", model.ErrInvalidParameter)
	}
	// 算法类型只是命名空间，不能跳出根目录
	if strings.ContainsAny(variant, `/\`) || variant == "." || variant == ".." {
		return fmt.Errorf("algorithm variant %q is not a plain label: %w", variant, model.ErrInvalidParameter)
	}
	return nil
}

// ParseDataFileName 从数据文件名反解出运行参数，例如 general_N_10.txt
func ParseDataFileName(name string) (model.RunParams, error) {
	if !strings.HasSuffix(name, model.DataExt) {
		return model.RunParams{}, fmt.Errorf("%q is not a data file: %w", name, model.ErrInvalidParameter)
	}
	stem := strings.TrimSuffix(name, model.DataExt)
	i := strings.LastIndex(stem, "_N_")
	if i <= 0 {
		return model.RunParams{}, fmt.Errorf("%q is not a data file: %w", name, model.ErrInvalidParameter)
	}
	n, err := strconv.Atoi(stem[i+len("_N_"):])
	if err != nil {
		return model.RunParams{}, fmt.Errorf("%q has no mesh size: %w", name, model.ErrInvalidParameter)
	}
	params := model.RunParams{N: n, Variant: stem[:i]}
	if err := Validate(params.N, params.Variant); err != nil {
		return model.RunParams{}, err
	}
	// 只接受规范写法，如 general_N_010.txt 不算
	if strconv.Itoa(n) != stem[i+len("_N_"):] {
		return model.RunParams{}, fmt.Errorf("%q is not canonical: %w", name, model.ErrInvalidParameter)
	}
	return params, nil
}

// DirMaker creates a directory and any missing parents. It must not fail when
// the directory already exists.
type DirMaker interface {
	MkdirAll(path string) error
}

// OSDirMaker 使用 os.MkdirAll
type OSDirMaker struct {
	Perm os.FileMode
}

func (m OSDirMaker) MkdirAll(path string) error {
	perm := m.Perm
	if perm == 0 {
		perm = 0o755
	}
	return os.MkdirAll(path, perm)
}

// Ensure 确保数据目录和图片目录存在
func (p Paths) Ensure(mk DirMaker) error {
	for _, dir := range []string{p.DataDir, p.PlotDir} {
		if err := mk.MkdirAll(dir); err != nil {
			return fmt.Errorf("create directory %s: %w: %w", dir, model.ErrIOFailure, err)
		}
	}
	return nil
}

// 统一使用 "/" 拼接，保证 ./results/general 这种写法原样保留
func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}
