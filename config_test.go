package gekko

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gekko-editor/viewport/rt/gizmo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, gizmo.DefaultSettings(), cfg.GizmoSettings())
	assert.Equal(t, gizmo.DefaultStyle(), cfg.GizmoStyle())
	assert.Equal(t, mgl32.Vec3{3, 3, 8}, cfg.CameraComponent().Position)
}

func TestDecodeConfigKeepsOmittedFields(t *testing.T) {
	cfg := DefaultConfig()
	err := DecodeConfig(strings.NewReader(`
[window]
title = "Scene"

[gizmo]
move_control_threshold = 14.5

[camera]
position = [0.0, 0.0, 5.0]
orthographic = true
`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, "Scene", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, float32(14.5), cfg.GizmoSettings().MoveControlThreshold)
	assert.Equal(t, float32(20), cfg.GizmoSettings().HighlightTipSize)

	cam := cfg.CameraComponent()
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, cam.Position)
	assert.True(t, cam.Orthographic)
	assert.Equal(t, float32(1000), cam.Far)
}

func TestDecodeConfigRejectsUnknownKeys(t *testing.T) {
	cfg := DefaultConfig()
	err := DecodeConfig(strings.NewReader("[window]\nfullscreen = true\n"), &cfg)
	assert.Error(t, err)
}

func TestDecodeConfigValidates(t *testing.T) {
	for name, doc := range map[string]string{
		"zero width":     "[window]\nwidth = 0\n",
		"zero threshold": "[gizmo]\nmove_control_threshold = 0.0\n",
		"far before near": "[camera]\nnear = 10.0\nfar = 1.0\n",
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			assert.Error(t, DecodeConfig(strings.NewReader(doc), &cfg))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "editor.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\ndebug = true\nprefix = \"ed\"\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "ed", cfg.Log.Prefix)

	require.NoError(t, os.WriteFile(path, []byte("[window\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, path)
}
