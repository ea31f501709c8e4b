package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openchs/intake/internal/api"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(cfg)
		if err != nil {
			return err
		}

		serverCfg := cfg.Server
		if servePort != 0 {
			serverCfg.Port = servePort
		}

		zap.L().Info("serving extraction api",
			zap.String("mode", string(e.Pipeline.Mode())),
			zap.Int("fields", e.Schema.FieldCount()),
			zap.Int("samples", len(e.Library.All())),
		)

		srv := api.NewServer(serverCfg, e.Pipeline, e.Schema, e.Library)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
