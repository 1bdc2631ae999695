package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/employee-directory/pkg/itf"
	"github.com/iota-uz/employee-directory/pkg/logging"
)

type stubOptions struct {
	addr       string
	idField    string
	numericIDs bool
	seed       bool
}

func newStubCmd() *cobra.Command {
	var opts stubOptions

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve an in-memory employee API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStub(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:5000", "Listen address")
	cmd.Flags().StringVar(&opts.idField, "id-field", "_id", "Name of the id field in records")
	cmd.Flags().BoolVar(&opts.numericIDs, "numeric-ids", false, "Encode ids as JSON numbers")
	cmd.Flags().BoolVar(&opts.seed, "seed", true, "Start with sample employees")
	return cmd
}

func stubAPI(opts stubOptions) *itf.EmployeeAPI {
	apiOpts := []itf.APIOption{itf.WithIDField(opts.idField)}
	if opts.numericIDs {
		apiOpts = append(apiOpts, itf.WithNumericIDs())
	}
	if opts.seed {
		apiOpts = append(apiOpts, itf.WithEmployees(itf.SampleEmployees()...))
	}
	return itf.NewEmployeeAPI(apiOpts...)
}

func runStub(ctx context.Context, cmd *cobra.Command, opts stubOptions) error {
	if opts.idField == "" {
		return withCode(exitUsage, fmt.Errorf("--id-field must not be empty"))
	}
	logger := logging.ConsoleLogger(logrus.InfoLevel)
	logger.SetOutput(cmd.ErrOrStderr())

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           stubAPI(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.WithField("addr", opts.addr).WithField("id_field", opts.idField).Info("stub employee API listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return withCode(exitIO, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("stub employee API shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
