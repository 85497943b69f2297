// ABOUTME: CLI command for starting the HTTP JSON API.
// ABOUTME: Serves the tracker over gin with Prometheus metrics until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/betta/internal/api"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start a JSON HTTP API over the same data the CLI uses.

ENDPOINTS:

  GET       /api/status                      Snapshot, score, alerts, findings
  GET|POST  /api/tank                        Current tank / save a tank
  GET|POST  /api/fish                        Current fish / record an observation
  GET|POST  /api/water                       Recent readings / log a reading
  GET|POST  /api/feedings                    Recent feedings / log a feeding
  GET       /api/feedings/today              Feedings planned for today
  GET|POST  /api/water-changes               Recent changes / log a change
  GET       /api/reminders                   Care reminders
  POST      /api/reminders/:id/complete      Mark a reminder done
  GET       /metrics                         Prometheus metrics

Validation failures return 422 with a message per field. Storage failures
return 502 and are safe to retry.

EXAMPLES:

  betta serve
  betta serve --addr 127.0.0.1:9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if logger.GetLevel() > zerolog.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, cancel := signalContext(commandContext(cmd))
		defer cancel()

		return api.NewServer(tr, logger).Run(ctx, serveAddr)
	},
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
