package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokequest/internal/errors"
	"github.com/KirkDiggler/pokequest/internal/sandbox"
)

const shutdownTimeout = 30 * time.Second

var (
	sandboxAddr string
	omitBalls   bool
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local backend for development",
	Long: `Serve the encounter, pokeball and catch endpoints from memory.
Tokens, listen address and the inventory fallback come from the sandbox config section.`,
	Args: cobra.NoArgs,
	RunE: runSandbox,
}

func init() {
	sandboxCmd.Flags().StringVar(&sandboxAddr, "addr", "", "listen address (overrides sandbox.addr)")
	sandboxCmd.Flags().BoolVar(&omitBalls, "omit-inventory", false, "leave pokeballs out of encounter responses")
}

func runSandbox(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			slog.Info("Received shutdown signal, gracefully stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	addr := cfg.Sandbox.Addr
	if sandboxAddr != "" {
		addr = sandboxAddr
	}

	backend, err := sandbox.New(&sandbox.Config{
		Tokens:                 cfg.Sandbox.Tokens,
		ShinyOdds:              cfg.Sandbox.ShinyOdds,
		OmitEncounterInventory: cfg.Sandbox.OmitInventory || omitBalls,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create sandbox")
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to listen")
	}

	srv := &http.Server{
		Handler:           backend.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Sandbox backend starting", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- errors.Wrap(err, "failed to serve")
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down sandbox backend")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop", "error", err)
			return srv.Close()
		}
		slog.Info("Sandbox stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}
