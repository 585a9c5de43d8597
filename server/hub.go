package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"poisson/model"
	"poisson/pipeline"
)

// 前后端消息类型
const (
	MsgRun     = "run"
	MsgPing    = "ping"
	MsgStarted = "started"
	MsgDone    = "done"
	MsgError   = "error"
	MsgPong    = "pong"
)

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context, params model.RunParams) (pipeline.Result, error)
}

type job struct {
	id     string
	params model.RunParams
	c      *client
}

// Hub serialises run requests from all connected clients: a single worker
// executes them one at a time.
type Hub struct {
	runner Runner
	// request，无缓冲：只有 worker 接收后才算入队
	jobs chan job
	log  log.FieldLogger

	once sync.Once
	done chan struct{}
}

func NewHub(runner Runner, logger log.FieldLogger) *Hub {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Hub{
		runner: runner,
		jobs:   make(chan job),
		log:    logger,
		done:   make(chan struct{}),
	}
}

// Run 处理运行请求，直到 ctx 结束
func (h *Hub) Run(ctx context.Context) {
	defer h.once.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-h.jobs:
			h.execute(ctx, j)
		}
	}
}

func (h *Hub) execute(ctx context.Context, j job) {
	logger := h.log.WithField("id", j.id)
	res, err := h.runner.Run(ctx, j.params)
	if err != nil {
		logger.WithError(err).Warn("run failed")
		j.c.deliver(model.Msg{Type: MsgError, Content: err.Error()})
		return
	}
	reply := model.RunReply{
		ID:          j.id,
		N:           res.Params.N,
		Variant:     res.Params.Variant,
		DataPath:    res.Paths.DataPath(),
		PlotPath:    res.Paths.PlotPath(),
		Points:      res.Points,
		MaxAbsError: res.MaxAbsError,
		ElapsedMs:   res.Elapsed.Milliseconds(),
	}
	data, err := json.Marshal(reply)
	if err != nil {
		logger.WithError(err).Error("marshal reply")
		j.c.deliver(model.Msg{Type: MsgError, Content: err.Error()})
		return
	}
	j.c.deliver(model.Msg{Type: MsgDone, Content: string(data)})
}

var errHubStopped = errors.New("hub stopped")

// handleRequest 根据消息类型处理一条请求
func (h *Hub) handleRequest(c *client, msg model.Msg) {
	switch msg.Type {
	case MsgRun:
		var params model.RunParams
		if err := json.Unmarshal([]byte(msg.Content), &params); err != nil {
			c.deliver(model.Msg{Type: MsgError, Content: "bad run request: " + err.Error()})
			return
		}
		select {
		case <-h.done:
			c.deliver(model.Msg{Type: MsgError, Content: errHubStopped.Error()})
			return
		default:
		}
		// 先回复编号再入队，保证 started 在 done 之前
		id := uuid.NewString()
		c.deliver(model.Msg{Type: MsgStarted, Content: id})
		select {
		case h.jobs <- job{id: id, params: params, c: c}:
		case <-h.done:
			c.deliver(model.Msg{Type: MsgError, Content: errHubStopped.Error()})
		case <-c.done:
		}
	case MsgPing:
		c.deliver(model.Msg{Type: MsgPong})
	default:
		h.log.WithField("type", msg.Type).Warn("no such type")
		c.deliver(model.Msg{Type: MsgError, Content: "no such type: " + msg.Type})
	}
}
