package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	profile  bool
	fpsLimit float64
	software bool
	noMSAA   bool
	watch    bool
}

func newRunCommand(global *globalFlags) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the viewer window",
		Long: `Open the viewer window.

Drag to orbit. The wheel zooms; with super it dollies the eye and with ctrl it
dollies eye and target together. P toggles Phong shading, C backface culling,
Z the depth test, 1/2/3 the lights, T cycles the last toggled light's type
(shift+T backwards) and R resets the camera. Escape quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(global, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.profile, "profile", false, "log frame and memory statistics every second")
	cmd.Flags().Float64Var(&flags.fpsLimit, "fps-limit", 0, "cap the render loop (0 = uncapped)")
	cmd.Flags().BoolVar(&flags.software, "software", false, "force the fallback (software) adapter")
	cmd.Flags().BoolVar(&flags.noMSAA, "no-msaa", false, "render without multisampling")
	cmd.Flags().BoolVar(&flags.watch, "watch", true, "reload the config file when it changes")
	return cmd
}

func runViewer(global *globalFlags, flags *runFlags) error {
	logger, err := newLogger(global.logFormat, global.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(global.configPath)
	if err != nil {
		return err
	}
	presentMode, ok := renderer.ParsePresentMode(cfg.Window.PresentMode)
	if !ok {
		return fmt.Errorf("unknown present mode %q", cfg.Window.PresentMode)
	}

	msaa := renderer.MSAA4x
	if flags.noMSAA {
		msaa = renderer.MSAAOff
	}

	// ── Window + Renderer ───────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(common.Coalesce(cfg.Window.Title, "oxy-viewer")),
		window.WithSize(common.Coalesce(cfg.Window.Width, 1024), common.Coalesce(cfg.Window.Height, 768)),
	)
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithClearColor(wgpu.Color{R: 0, G: 0, B: 0, A: 1}),
		renderer.WithForceSoftwareRenderer(flags.software),
		renderer.WithLogger(logger.Named("renderer")),
	)

	// ── Session ─────────────────────────────────────────────────────────
	l := loader.NewLoader(loader.BackendTypeGLTF,
		loader.WithRenderer(r),
		loader.WithLogger(logger.Named("loader")),
	)
	sess, err := buildSession(cfg, l, logger.Named("session"), scene.WithRenderer(r))
	if err != nil {
		return err
	}

	// ── Hot reload ──────────────────────────────────────────────────────
	if flags.watch && global.configPath != "" {
		w := config.NewWatcher(global.configPath, sess, config.WithLogger(logger.Named("config")))
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Close()
	}

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithSession(sess),
		engine.WithLoader(l),
		engine.WithLogger(logger),
		engine.WithProfiling(flags.profile),
		engine.WithRenderFrameLimit(flags.fpsLimit),
	)
	logger.Info("viewer starting",
		zap.String("config", global.configPath),
		zap.Int("width", win.Width()),
		zap.Int("height", win.Height()),
	)
	return eng.Run()
}
