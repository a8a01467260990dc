// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/LeeDigitalWorks/zaplambda/pkg/debug"
	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ServeOpts struct {
	BindAddr                string
	DebugPort               int
	MaxInvocationsPerSecond float64
	ShutdownTimeout         time.Duration
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve invocations over HTTP",
	Long: `Accept Object Lambda events as JSON on POST /invoke and on the Lambda
runtime interface emulator path, for local testing and container deployments.`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addPipelineFlags(serveCmd)

	f := serveCmd.Flags()
	f.String("bind_addr", "0.0.0.0:9000", "Address to bind the invocation server (host:port)")
	f.Int("debug_port", 9010, "Debug/metrics HTTP port (0 disables)")
	f.Float64("max_invocations_per_second", 0, "Reject invocations above this rate with 429 (0 = unlimited)")
	f.Duration("shutdown_timeout", 30*time.Second, "Time allowed for in-flight invocations on shutdown")

	viper.BindPFlags(f)
}

func loadServeOpts(cmd *cobra.Command) ServeOpts {
	fl := NewFlagLoader(cmd)
	return ServeOpts{
		BindAddr:                fl.String("bind_addr"),
		DebugPort:               fl.Int("debug_port"),
		MaxInvocationsPerSecond: fl.Float64("max_invocations_per_second"),
		ShutdownTimeout:         fl.Duration("shutdown_timeout"),
	}
}

func runServe(cmd *cobra.Command, args []string) {
	opts := loadServeOpts(cmd)
	debug.SetNotReady()

	handler, err := buildHandler(cmd.Context(), loadPipelineOpts(cmd), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	srv, err := server.New(server.Config{
		Invoker:                 handler,
		MaxInvocationsPerSecond: opts.MaxInvocationsPerSecond,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create invocation server")
	}

	httpServer := startHTTPServer(srv, opts.BindAddr)

	var debugServer *http.Server
	if opts.DebugPort > 0 {
		debugServer = startHTTPServer(debug.GetMux(), net.JoinHostPort("", strconv.Itoa(opts.DebugPort)))
	}

	debug.SetReady()
	waitForShutdown()
	debug.SetNotReady()

	logger.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("invocation server shutdown")
	}
	if debugServer != nil {
		if err := debugServer.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("debug server shutdown")
		}
	}
}

func startHTTPServer(handler http.Handler, addr string) *http.Server {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal().Err(err).Str("http_addr", addr).Msg("failed to create HTTP listener")
	}

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("http_addr", listener.Addr().String()).Msg("Starting HTTP server")
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start HTTP server")
		}
	}()
	return httpServer
}

func waitForShutdown() {
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM)
	<-stopChan
}
