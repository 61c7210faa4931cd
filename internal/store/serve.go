package store

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// StartServer binds the storefront to addr and begins serving. It returns
// the listener so callers that bind to port 0 can discover the address.
func StartServer(addr string, app *App, log *zap.Logger) (net.Listener, *http.Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{Handler: app.Handler()}

	go func() {
		log.Info("storefront listening", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("storefront server error", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown blocks until an interrupt or terminate signal arrives,
// then shuts the server down gracefully. A nil shutdown channel registers
// one with signal.Notify; tests pass their own.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	}

	sig := <-shutdown
	log.Info("shutting down storefront", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Info("storefront stopped")
	return nil
}
