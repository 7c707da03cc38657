package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/platewise/menugraph/internal/config"
	"github.com/platewise/menugraph/internal/llmcall"
	"github.com/platewise/menugraph/internal/parse"
	"github.com/platewise/menugraph/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the menugraph server",
	Long: `Start the menugraph HTTP server.

The server provides:
  - POST /v1/menus/parse - Parse menu content into a menu graph
  - GET  /v1/llmcalls    - Recent backend calls for auditing
  - GET  /health         - Server health check

Examples:
  menugraph serve                    # Start on default port 8080
  menugraph serve --port 3000        # Start on custom port
  menugraph serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cm.WatchConfig()

		cfg := cm.Get()

		store := llmcall.NewStore(cfg.Pipeline.CallLogSize)
		parser, err := parse.NewFromConfig(cfg, logger, llmcall.NewRecorder(store))
		if err != nil {
			return err
		}

		host := serveHost
		if host == "" {
			host = cfg.Server.Host
		}
		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:   host,
			Port:   port,
			Parser: parser,
			Calls:  store,
			Logger: logger,
		})
		if err != nil {
			return err
		}

		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "address to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default from config)")
}
