package main

import (
	"io"

	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPrintConfigCommand(global *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "print-config",
		Short: "Print the effective configuration: built-in defaults overlaid with the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(global.logFormat, global.logLevel)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(global.configPath)
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), cfg, logger, config.Format(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatTOML), "output format: toml or yaml")
	return cmd
}

func printConfig(w io.Writer, cfg *config.Config, logger *zap.Logger, format config.Format) error {
	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(logger.Named("loader")))
	sess, err := buildSession(cfg, l, logger.Named("session"))
	if err != nil {
		return err
	}
	effective := config.FromSession(sess)
	// Startup-only sections are not part of the session, so carry them over as given.
	effective.BunnyPath = cfg.BunnyPath
	effective.Window = cfg.Window
	return effective.Encode(w, format)
}
