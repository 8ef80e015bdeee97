package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/porticus-lab/go-stock-pdf/internal/config"
	"github.com/porticus-lab/go-stock-pdf/internal/server"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload form and the conversion endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Render.Backend = backend
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			conv, err := newConverter(cfg, logger)
			if err != nil {
				return err
			}

			srv := server.New(conv, server.Options{
				MaxUploadBytes: cfg.Server.MaxUploadBytes,
				UploadField:    cfg.Server.UploadField,
				Filename:       cfg.Server.Filename,
				Title:          conv.Layout().Title,
			}, logger)
			httpSrv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			cleanup := func() {
				if err := conv.Close(); err != nil {
					logger.Warn("converter.close", zap.Error(err))
				}
			}
			return server.Run(cmd.Context(), httpSrv, logger, cleanup, cfg.Server.ShutdownTimeout)
		},
	}
	cmd.Flags().StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "Listen address")
	cmd.Flags().Int64Var(&cfg.Server.MaxUploadBytes, "max-upload", cfg.Server.MaxUploadBytes, "Maximum upload size in bytes")
	cmd.Flags().StringVar(&cfg.Server.UploadField, "field", cfg.Server.UploadField, "Multipart field holding the spreadsheet")
	cmd.Flags().StringVar(&cfg.Server.Filename, "filename", cfg.Server.Filename, "Attachment filename of the generated PDF")
	cmd.Flags().DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", cfg.Server.ShutdownTimeout, "Grace period for in-flight requests")
	return cmd
}
