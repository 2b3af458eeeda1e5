package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kayz/sonar/internal/logger"
	"github.com/kayz/sonar/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("[Init] config: %v", err)
	}

	p, cleanup, err := buildPipeline(cfg)
	if err != nil {
		logger.Fatal("[Init] pipeline: %v", err)
	}
	defer cleanup()

	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Port),
		Handler:           server.New(p).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := serveUntilSignal(httpServer, sigCh); err != nil {
		logger.Error("[Server] shutdown: %v", err)
	}
}

// listenAddr prefers the --port flag over the configured port.
func listenAddr(configPort int) string {
	port := configPort
	if servePort > 0 {
		port = servePort
	}
	return fmt.Sprintf(":%d", port)
}

// serveUntilSignal serves HTTP until a signal arrives, then drains
// in-flight requests before returning.
func serveUntilSignal(httpServer *http.Server, sigCh <-chan os.Signal) error {
	go func() {
		logger.Info("[Server] listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("[Server] %v", err)
		}
	}()

	<-sigCh
	logger.Info("[Server] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
