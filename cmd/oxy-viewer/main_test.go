package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestPrintConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "viewer.yaml", "options:\n  phong: true\ncamera:\n  fovy: 45\n")

	out, err := execute(t, "print-config", "--config", path)
	require.NoError(t, err)

	cfg, err := config.Decode(strings.NewReader(out), config.FormatTOML)
	require.NoError(t, err)
	assert.True(t, *cfg.Options.Phong)
	assert.True(t, *cfg.Options.DepthTest)
	assert.Equal(t, float32(45), *cfg.Camera.Fovy)
	assert.Equal(t, config.Vec3{0, 5.5, 9}, *cfg.Camera.Eye)
	assert.Len(t, cfg.Lights, 3)
}

func TestDumpUniforms(t *testing.T) {
	path := writeConfig(t, "viewer.toml", "[options]\nbackface_culling = true\n\n[[lights]]\nenabled = false\n")

	out, err := execute(t, "dump-uniforms", "--config", path, "--table")
	require.NoError(t, err)

	var dump uniformDump
	require.NoError(t, yaml.Unmarshal([]byte(out), &dump))
	assert.Equal(t, "gouraud/cull/depth", dump.Pipeline)
	require.Len(t, dump.Lights, 3)
	assert.Equal(t, "Point", dump.Lights[0].Type)
	assert.Equal(t, [3]float32{}, dump.Lights[0].Diffuse)
	assert.Equal(t, "Spotlight", dump.Lights[2].Type)
	require.Len(t, dump.Draws, 8)
	assert.Equal(t, "lampOff", dump.Draws[5].Material)
	assert.NotEmpty(t, dump.Table)
}

func TestCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing config", []string{"print-config", "--config", "/nonexistent/viewer.toml"}},
		{"bad log format", []string{"print-config", "--log-format", "xml"}},
		{"bad dump format", []string{"dump-uniforms", "--format", "json"}},
		{"unexpected arg", []string{"dump-uniforms", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
