package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"poisson/model"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	hub      *Hub
	log      log.FieldLogger
}

func NewServer(addr string, upgrader websocket.Upgrader, runner Runner, logger log.FieldLogger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		hub:      NewHub(runner, logger),
		log:      logger,
	}
}

// client 一个 websocket 连接，写操作只在 writePump 中进行
type client struct {
	conn *websocket.Conn
	send chan model.Msg
	done chan struct{}
}

func (c *client) deliver(msg model.Msg) {
	select {
	case c.send <- msg:
	case <-c.done:
	}
}

func (c *client) writePump(logger log.FieldLogger) {
	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteJSON(&msg); err != nil {
				logger.WithError(err).Debug("write")
				return
			}
		case <-c.done:
			return
		}
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("upgrade")
		return
	}
	defer conn.Close()

	c := &client{
		conn: conn,
		send: make(chan model.Msg, 10),
		done: make(chan struct{}),
	}
	defer close(c.done)
	go c.writePump(s.log)

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.WithError(err).Debug("read")
			}
			return
		}
		s.hub.handleRequest(c, msg)
	}
}

// Handler 返回注册了 /ws 的路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// Serve 启动 hub 和 http 服务，ctx 结束时关闭
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hub.Run(ctx)

	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
