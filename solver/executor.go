package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"poisson/model"
	"poisson/solution"
)

// Executor 运行求解器，并把数据文件写到 out
type Executor interface {
	Execute(ctx context.Context, params model.RunParams, out string) error
}

// Builtin 进程内求解
type Builtin struct {
	Log log.FieldLogger
}

func NewBuiltin(logger log.FieldLogger) *Builtin {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Builtin{Log: logger}
}

func (b *Builtin) Execute(ctx context.Context, params model.RunParams, out string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, err := New(params.Variant)
	if err != nil {
		return err
	}
	start := time.Now()
	series, err := s.Solve(params.N)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", out, model.ErrIOFailure, err)
	}
	if err := solution.Write(f, series); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w: %w", out, model.ErrIOFailure, err)
	}
	b.Log.WithFields(log.Fields{
		"n":       params.N,
		"variant": params.Variant,
		"elapsed": elapsed,
		"out":     out,
	}).Info("求解完成")
	return nil
}

// External 调用外部求解器程序: <Bin> <N> <variant>
// 程序在 out 所在目录下运行，并按约定在该目录生成数据文件
type External struct {
	Bin     string
	Timeout time.Duration
	Log     log.FieldLogger
}

func NewExternal(bin string, timeout time.Duration, logger log.FieldLogger) *External {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &External{Bin: bin, Timeout: timeout, Log: logger}
}

func (e *External) Execute(ctx context.Context, params model.RunParams, out string) error {
	if e.Bin == "" {
		return fmt.Errorf("external solver binary not set: %w", model.ErrInvalidParameter)
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	bin := e.Bin
	// 相对路径相对于当前进程解析，而不是 cmd.Dir
	if strings.ContainsRune(bin, filepath.Separator) && !filepath.IsAbs(bin) {
		if abs, err := filepath.Abs(bin); err == nil {
			bin = abs
		}
	}

	// 参数列表传递，不经过 shell
	cmd := exec.CommandContext(ctx, bin, strconv.Itoa(params.N), params.Variant)
	cmd.Dir = filepath.Dir(out)
	var stderr bytes.Buffer
	stdout := e.Log.WithField("bin", e.Bin).WriterLevel(log.DebugLevel)
	defer stdout.Close()
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	e.Log.WithFields(log.Fields{
		"bin":  e.Bin,
		"args": cmd.Args[1:],
		"dir":  cmd.Dir,
	}).Info("执行外部求解器")

	start := time.Now()
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("run %s: %s: %w: %w", e.Bin, msg, model.ErrIOFailure, err)
		}
		return fmt.Errorf("run %s: %w: %w", e.Bin, model.ErrIOFailure, err)
	}
	e.Log.WithField("elapsed", time.Since(start)).Info("外部求解器结束")

	if _, err := os.Stat(out); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("solver did not write %s: %w", out, model.ErrNotFound)
		}
		return fmt.Errorf("stat %s: %w: %w", out, model.ErrIOFailure, err)
	}
	return nil
}

var rename = os.Rename

// Relocate 把求解器生成的数据文件移动到结果目录
func Relocate(src, dst string) error {
	err := rename(src, dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		if _, statErr := os.Stat(src); errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("data file %s: %w", src, model.ErrNotFound)
		}
		return fmt.Errorf("move %s to %s: %w: %w", src, dst, model.ErrIOFailure, err)
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("move %s to %s: %w: %w", src, dst, model.ErrIOFailure, err)
	}
	// 跨设备时 rename 失败，改为拷贝后删除
	if err := copyFile(src, dst); err != nil {
		os.Remove(dst)
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove %s: %w: %w", src, model.ErrIOFailure, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w: %w", src, model.ErrIOFailure, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", dst, model.ErrIOFailure, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w: %w", src, model.ErrIOFailure, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w: %w", dst, model.ErrIOFailure, err)
	}
	return nil
}
