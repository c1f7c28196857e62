package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/c-w-schwind/Aufgabe-Christian/internal/stubserver"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/contract"
)

func newStubCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve an in-memory customer endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runStub(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	cmd.Flags().Int("fail-with", 0, "answer every POST with this status code")
	return cmd
}

func (a *app) runStub(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	doc, err := contract.Load(ctx)
	if err != nil {
		return err
	}
	srv, err := stubserver.New(doc,
		stubserver.WithFailStatus(a.cfg.Stub.FailWith),
		stubserver.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              a.cfg.Stub.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("stub listening", "addr", httpServer.Addr, "path", stubserver.CollectionPath)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.logger.Info("stub shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
