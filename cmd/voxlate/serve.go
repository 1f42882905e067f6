package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leonardotrapani/voxlate/internal/config"
	"github.com/leonardotrapani/voxlate/internal/logging"
	"github.com/leonardotrapani/voxlate/internal/pipeline"
	"github.com/leonardotrapani/voxlate/internal/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP translation server",
		Long: `Run the HTTP translation server.
The config file is watched and the pipeline is rebuilt on change.
Detection and [server]/[audio] settings apply on restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}

			bootLogger := logging.New(logging.Options{Level: logLevel})
			manager, err := config.NewManager(path, bootLogger)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			cfg := manager.GetConfig()
			if logLevel != "" {
				cfg.General.LogLevel = logLevel
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger := logging.New(cfg.ToLoggingOptions())

			detector := pipeline.NewDetector(cfg, logger)
			store, err := pipeline.OpenStore(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to open audio store: %w", err)
			}
			defer store.Close()

			p, err := pipeline.Build(cfg, detector, store, logger)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Addr:           cfg.Server.Addr,
				ReadTimeout:    cfg.Server.ReadTimeout,
				WriteTimeout:   cfg.Server.WriteTimeout,
				MaxUploadBytes: cfg.Server.MaxUploadBytes,
			}, p, store, logger)

			manager.OnReload(func(next *config.Config) {
				if logLevel == "" {
					if level, err := logrus.ParseLevel(next.General.LogLevel); err == nil {
						logger.SetLevel(level)
					}
				}
				rebuilt, err := pipeline.Build(next, detector, store, logger)
				if err != nil {
					logger.WithError(err).Error("Failed to rebuild pipeline, keeping previous")
					return
				}
				srv.SetPipeline(rebuilt)
			})

			ctx := cmd.Context()
			if err := manager.StartWatching(ctx); err != nil {
				logger.WithError(err).Warn("Config hot reload disabled")
			}
			defer manager.Stop()

			go store.Run(ctx, cfg.Audio.SweepInterval)

			logger.WithFields(logrus.Fields{
				"config":       manager.Path(),
				"addr":         cfg.Server.Addr,
				"speech_input": p.SpeechEnabled(),
				"audio_dir":    store.Dir(),
			}).Info("voxlate ready")

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides [server] addr)")
	return cmd
}
