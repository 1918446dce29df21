package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logFormat  string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "oxy-viewer",
		Short:         "Interactive lit 3D scene viewer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "TOML or YAML config file")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "console", "log encoding: console or json")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "minimum log level")

	root.AddCommand(
		newRunCommand(flags),
		newDumpUniformsCommand(flags),
		newPrintConfigCommand(flags),
	)
	return root
}

// newLogger builds the CLI logger: development output for console, production JSON otherwise.
func newLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// loadConfig reads the config file, or returns an empty config when no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return &config.Config{}, nil
	}
	return config.Load(path)
}

// buildSession assembles a session from cfg. The bunny mesh comes from l, falling back to a
// sphere when the file is missing or fails to load.
func buildSession(cfg *config.Config, l loader.Loader, logger *zap.Logger, sceneOpts ...scene.SceneBuilderOption) (session.Session, error) {
	fallback := model.Sphere(model.SphereSlices, model.SphereStacks)
	bunny := l.LoadOrDefault(cfg.BunnyPath, fallback)

	if cfg.Window.ComputeWorkers > 0 {
		sceneOpts = append(sceneOpts, scene.WithComputeWorkers(cfg.Window.ComputeWorkers))
	}
	s := session.NewSession(
		session.WithLogger(logger),
		session.WithCamera(camera.NewCamera(camera.WithDefaults(cfg.CameraDefaults(camera.DefaultSettings())))),
		session.WithMeshes(scene.DefaultMeshes(bunny)),
		session.WithSceneOptions(sceneOpts...),
	)
	if err := cfg.Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}
