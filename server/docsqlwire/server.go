package docsqlwire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"docsql/internal/sql/executor"
	"docsql/internal/storage"
)

type ServerConfig struct {
	Addr        string
	DataDir     string
	PrettyPrint bool
}

// Run serves SQL over TCP until SIGINT/SIGTERM. All connections share one
// executor; statements are serialized, so each one sees a consistent store
// state and runs to completion before the next is accepted.
func Run(sc ServerConfig) error {
	store := storage.NewStore(sc.DataDir, sc.PrettyPrint)
	ex, err := executor.New(store)
	if err != nil {
		return fmt.Errorf("docsqlwire: init executor: %w", err)
	}

	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer func() { _ = ln.Close() }()

	slog.Info("docsql tcp server listening", "addr", sc.Addr, "datadir", sc.DataDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	var mu sync.Mutex
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			slog.Warn("accept", "err", err)
			continue
		}
		go handleConn(ctx, conn, ex, &mu)
	}
}

func handleConn(ctx context.Context, conn net.Conn, ex *executor.Executor, mu *sync.Mutex) {
	defer func() { _ = conn.Close() }()

	// No global deadline; a per-request deadline can be set if needed.
	_ = conn.SetDeadline(time.Time{})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req ExecuteRequest
		if err := ReadFrame(conn, &req); err != nil {
			// Client closed or bad frame.
			return
		}

		mu.Lock()
		res, err := ex.Execute(req.SQL)
		mu.Unlock()

		if err != nil {
			_ = WriteFrame(conn, ExecuteResponse{
				ID:    req.ID,
				Error: err.Error(),
			})
			continue
		}

		_ = WriteFrame(conn, ExecuteResponse{
			ID:     req.ID,
			Result: res,
		})
	}
}
