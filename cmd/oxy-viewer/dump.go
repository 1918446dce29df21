package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/session"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// uniformDump is the printable form of one frame's uniform data.
type uniformDump struct {
	Pipeline string               `toml:"pipeline" yaml:"pipeline"`
	Camera   cameraDump           `toml:"camera" yaml:"camera"`
	Lights   []lightDump          `toml:"lights" yaml:"lights"`
	Draws    []drawDump           `toml:"draws" yaml:"draws"`
	Table    []uniformLocationRow `toml:"uniform_table,omitempty" yaml:"uniform_table,omitempty"`
}

type cameraDump struct {
	View       [16]float32 `toml:"view" yaml:"view,flow"`
	Projection [16]float32 `toml:"projection" yaml:"projection,flow"`
}

type lightDump struct {
	Type     string     `toml:"type" yaml:"type"`
	Position [4]float32 `toml:"position" yaml:"position,flow"`
	Axis     [3]float32 `toml:"axis" yaml:"axis,flow"`
	Ambient  [3]float32 `toml:"ambient" yaml:"ambient,flow"`
	Diffuse  [3]float32 `toml:"diffuse" yaml:"diffuse,flow"`
	Specular [3]float32 `toml:"specular" yaml:"specular,flow"`
	Aperture float32    `toml:"aperture" yaml:"aperture"`
	Cutoff   float32    `toml:"cutoff" yaml:"cutoff"`
}

type drawDump struct {
	Name      string      `toml:"name" yaml:"name"`
	Material  string      `toml:"material" yaml:"material"`
	ModelView [16]float32 `toml:"model_view" yaml:"model_view,flow"`
}

type uniformLocationRow struct {
	Name    string `toml:"name" yaml:"name"`
	Group   int    `toml:"group" yaml:"group"`
	Binding int    `toml:"binding" yaml:"binding"`
	Offset  uint64 `toml:"offset" yaml:"offset"`
	Size    uint64 `toml:"size" yaml:"size"`
}

type dumpFlags struct {
	format string
	table  bool
}

func newDumpUniformsCommand(global *globalFlags) *cobra.Command {
	flags := &dumpFlags{}
	cmd := &cobra.Command{
		Use:   "dump-uniforms",
		Short: "Print the first frame's uniforms for the config without opening a window",
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
			return dumpUniforms(cmd.OutOrStdout(), cfg, logger, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.format, "format", "f", "yaml", "output format: yaml or toml")
	cmd.Flags().BoolVar(&flags.table, "table", false, "include the active program's uniform-location table")
	return cmd
}

func dumpUniforms(w io.Writer, cfg *config.Config, logger *zap.Logger, flags *dumpFlags) error {
	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(logger.Named("loader")))
	sess, err := buildSession(cfg, l, logger.Named("session"))
	if err != nil {
		return err
	}
	frame, err := sess.Frame()
	if err != nil {
		return err
	}

	out := newUniformDump(frame, flags.table)
	switch config.Format(flags.format) {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatTOML:
		return toml.NewEncoder(w).Encode(out)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnsupportedFormat, flags.format)
	}
}

func newUniformDump(frame session.FrameSnapshot, withTable bool) uniformDump {
	out := uniformDump{
		Pipeline: frame.PipelineKey,
		Camera:   cameraDump{View: frame.Camera.View, Projection: frame.Camera.Projection},
	}
	for _, gl := range frame.Lights.Lights {
		out.Lights = append(out.Lights, lightDump{
			Type:     light.LightType(gl.Kind).String(),
			Position: gl.Position,
			Axis:     gl.Axis,
			Ambient:  gl.Ambient,
			Diffuse:  gl.Diffuse,
			Specular: gl.Specular,
			Aperture: gl.Aperture,
			Cutoff:   gl.Cutoff,
		})
	}
	for _, item := range frame.Items {
		out.Draws = append(out.Draws, drawDump{
			Name:      item.Name,
			Material:  item.MaterialName,
			ModelView: [16]float32(item.ModelView),
		})
	}
	if withTable {
		for name, loc := range frame.Program.Uniforms() {
			out.Table = append(out.Table, uniformLocationRow{
				Name:    name,
				Group:   loc.Group,
				Binding: loc.Binding,
				Offset:  loc.Offset,
				Size:    loc.Size,
			})
		}
		slices.SortFunc(out.Table, func(a, b uniformLocationRow) int {
			return cmp.Compare(a.Name, b.Name)
		})
	}
	return out
}
