package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"poisson/model"
)

const DefaultPath = "conf/config.ini"

type Config struct {
	// [layout]
	ResultsRoot string
	PlotsRoot   string
	PlotExt     string
	Overwrite   bool

	// [solver]
	SolverMode    string // builtin / external
	SolverBin     string
	SolverTimeout time.Duration
	WorkDir       string // 求解器输出数据文件的目录

	// [render]
	Backend string
	Width   float64 // 英寸
	Height  float64

	// [server]
	Addr string

	// [log]
	Level log.Level
}

// Load 读取配置文件，文件不存在时使用默认值
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.WithField("path", path).Debug("配置文件不存在，使用默认配置")
		return Default(), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("配置文件读取错误，请检查文件路径 %s: %v: %w", path, err, model.ErrInvalidParameter)
	}
	return loadCfg(file)
}

// Default 默认配置
func Default() Config {
	cfg, _ := loadCfg(ini.Empty())
	return cfg
}

func loadCfg(file *ini.File) (Config, error) {
	cfg := Config{
		ResultsRoot: file.Section("layout").Key("results_root").MustString(model.ResultsRoot),
		PlotsRoot:   file.Section("layout").Key("plots_root").MustString(model.PlotsRoot),
		PlotExt:     file.Section("layout").Key("plot_ext").MustString(model.PlotExt),
		Overwrite:   file.Section("layout").Key("overwrite").MustBool(true),

		SolverMode:    file.Section("solver").Key("mode").MustString("builtin"),
		SolverBin:     file.Section("solver").Key("bin").MustString("./main.out"),
		SolverTimeout: file.Section("solver").Key("timeout").MustDuration(time.Minute),
		WorkDir:       file.Section("solver").Key("work_dir").MustString("."),

		Backend: file.Section("render").Key("backend").MustString("gonum"),
		Width:   file.Section("render").Key("width").MustFloat64(6.4),
		Height:  file.Section("render").Key("height").MustFloat64(4.8),

		Addr: file.Section("server").Key("addr").MustString(":9000"),
	}
	if err := oneOf("solver.mode", cfg.SolverMode, "builtin", "external"); err != nil {
		return Config{}, err
	}
	if err := oneOf("render.backend", cfg.Backend, "gonum", "chart"); err != nil {
		return Config{}, err
	}
	level, err := log.ParseLevel(file.Section("log").Key("level").MustString("info"))
	if err != nil {
		return Config{}, fmt.Errorf("log level: %v: %w", err, model.ErrInvalidParameter)
	}
	cfg.Level = level
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("render size %vx%v: %w", cfg.Width, cfg.Height, model.ErrInvalidParameter)
	}
	return cfg, nil
}

func oneOf(key, val string, candidates ...string) error {
	for _, c := range candidates {
		if val == c {
			return nil
		}
	}
	return fmt.Errorf("%s = %q, want one of %v: %w", key, val, candidates, model.ErrInvalidParameter)
}
