package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketListener accepts client connections over websocket. It is a
// service worker: Start blocks until the context is canceled, then shuts
// the server down and cancels all live connections.
type WebsocketListener struct {
	port uint16
	path string
	cm   *ConnectionManager

	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, path string, cm *ConnectionManager) *WebsocketListener {
	if path == "" {
		path = "/ws"
	}
	return &WebsocketListener{
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cooperative, non-adversarial setting: any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	// Connections outlive individual requests; cancel them all on shutdown.
	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()

	var wg sync.WaitGroup
	mux := http.NewServeMux()
	mux.HandleFunc(l.path, func(w http.ResponseWriter, r *http.Request) {
		conn, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("upgrading connection", "remote", r.RemoteAddr, "error", err)
			return
		}
		wg.Add(1)
		defer wg.Done()
		l.cm.AcceptConnection(connCtx, conn)
	})

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			cancelConns()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := svr.Shutdown(shutdownCtx); err != nil {
				slog.Warn("shutting down websocket listener", "error", err)
			}
		case <-done:
			// Start returned on its own - nothing to stop
		}
	}()

	slog.InfoContext(ctx, "websocket listener starting", "port", l.port, "path", l.path)

	err := svr.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		wg.Wait()
		return nil
	}
	if errors.Is(err, syscall.EADDRINUSE) {
		return fmt.Errorf("port %d is already in use (another server running?)", l.port)
	}
	return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
}
