// Command fpdsserver runs the lambda handler as a local HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prognoshealth/fpdsproxy/app"
	"github.com/prognoshealth/fpdsproxy/httpserver"
	"go.uber.org/zap"
)

func main() {
	a, err := app.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fpdsserver: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = a.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpserver.New(a.Config.HTTP.ListenAddr, a.Handle, a.Logger).Run(ctx); err != nil {
		a.Logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
