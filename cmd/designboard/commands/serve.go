package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/panyam/designboard/services"
	"github.com/panyam/designboard/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the design board preview server",
	Long: `Start an HTTP server that hosts editor sessions for local previews.

The server provides:
- POST   /api/sessions                        create a session
- GET    /api/sessions/{id}                   graph, side panel and viewport
- POST   /api/sessions/{id}/events            apply one editor event
- GET    /api/sessions/{id}/render/{format}   svg, excalidraw, mermaid or dot
- GET    /api/palette, /api/shortcuts

The address comes from --addr, else $DESIGNBOARD_WEB_PORT, else the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.WebAddress()
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		srvErr := make(chan error, 1)
		stopChan := make(chan bool, 1)
		server := &web.Server{Address: addr, Config: cfg, Logger: slog.Default()}
		if err := server.Start(ctx, srvErr, stopChan); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Design board server listening on %s\n", addr)

		select {
		case err := <-srvErr:
			return err
		case <-ctx.Done():
			stopChan <- true
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", fmt.Sprintf("Listen address (default %s)", services.DefaultWebAddress))
}
