// Package watcher re-plots a data file whenever a solver rewrites it inside a
// results directory.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"poisson/layout"
	"poisson/model"
)

// Handler 数据文件稳定后被调用
type Handler func(ctx context.Context, params model.RunParams) error

type Watcher struct {
	w        *fsnotify.Watcher
	dir      string
	debounce time.Duration
	onChange Handler
	log      log.FieldLogger

	// 文件 -> 最近一次事件时间
	pending map[string]time.Time
}

func New(dir string, debounce time.Duration, onChange Handler, logger log.FieldLogger) (*Watcher, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w: %w", model.ErrIOFailure, err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w: %w", dir, model.ErrIOFailure, err)
	}
	return &Watcher{
		w:        w,
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		log:      logger.WithField("dir", dir),
		pending:  make(map[string]time.Time),
	}, nil
}

// Run 事件循环，ctx 结束或 watcher 关闭时返回
func (w *Watcher) Run(ctx context.Context) error {
	tick := w.debounce / 2
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	w.log.Info("watching")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Error("watch error")
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// Close 停止监听
func (w *Watcher) Close() error {
	return w.w.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if _, err := layout.ParseDataFileName(filepath.Base(event.Name)); err != nil {
		return
	}
	w.pending[event.Name] = time.Now()
}

// 处理已稳定的事件
func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	for path, at := range w.pending {
		if now.Sub(at) < w.debounce {
			continue
		}
		delete(w.pending, path)

		params, err := layout.ParseDataFileName(filepath.Base(path))
		if err != nil {
			continue
		}
		logger := w.log.WithFields(log.Fields{"n": params.N, "variant": params.Variant})
		logger.Info("data file changed")
		if err := w.onChange(ctx, params); err != nil {
			logger.WithError(err).Error("re-plot failed")
		}
	}
}
