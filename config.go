package gekko

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"github.com/gekko3d/gekko-editor/viewport/rt/core"
	"github.com/gekko3d/gekko-editor/viewport/rt/gizmo"
)

type Config struct {
	Window WindowConfig `toml:"window"`
	Log    LogConfig    `toml:"log"`
	Gizmo  GizmoConfig  `toml:"gizmo"`
	Camera CameraConfig `toml:"camera"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type LogConfig struct {
	Prefix string `toml:"prefix"`
	Debug  bool   `toml:"debug"`
}

type GizmoConfig struct {
	MoveControlThreshold float32 `toml:"move_control_threshold"`
	TipSize              float32 `toml:"tip_size"`
	HighlightTipSize     float32 `toml:"highlight_tip_size"`
	PointSize            float32 `toml:"point_size"`
}

type CameraConfig struct {
	Position     [3]float32 `toml:"position"`
	Yaw          float32    `toml:"yaw"`
	Pitch        float32    `toml:"pitch"`
	FovY         float32    `toml:"fov_y"`
	Near         float32    `toml:"near"`
	Far          float32    `toml:"far"`
	Orthographic bool       `toml:"orthographic"`
	OrthoHeight  float32    `toml:"ortho_height"`
}

func DefaultConfig() Config {
	settings := gizmo.DefaultSettings()
	cam := core.NewCamera()
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Gekko Editor"},
		Log:    LogConfig{Prefix: "editor"},
		Gizmo: GizmoConfig{
			MoveControlThreshold: settings.MoveControlThreshold,
			TipSize:              settings.TipSize,
			HighlightTipSize:     settings.HighlightTipSize,
			PointSize:            gizmo.DefaultStyle().PointSize,
		},
		Camera: CameraConfig{
			Position:     [3]float32(cam.Position),
			Yaw:          cam.Yaw,
			Pitch:        cam.Pitch,
			FovY:         cam.FovY,
			Near:         cam.Near,
			Far:          cam.Far,
			Orthographic: cam.Orthographic,
			OrthoHeight:  cam.OrthoHeight,
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. An empty path or a
// missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := DecodeConfig(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes TOML into cfg, keeping fields the document omits.
// Unknown keys are an error.
func DecodeConfig(r io.Reader, cfg *Config) error {
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Gizmo.MoveControlThreshold <= 0 {
		return fmt.Errorf("gizmo move_control_threshold must be positive, got %v", c.Gizmo.MoveControlThreshold)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range %v..%v is invalid", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

func (c Config) GizmoSettings() gizmo.Settings {
	return gizmo.Settings{
		MoveControlThreshold: c.Gizmo.MoveControlThreshold,
		TipSize:              c.Gizmo.TipSize,
		HighlightTipSize:     c.Gizmo.HighlightTipSize,
	}
}

func (c Config) GizmoStyle() gizmo.Style {
	style := gizmo.DefaultStyle()
	style.PointSize = c.Gizmo.PointSize
	return style
}

func (c Config) CameraComponent() CameraComponent {
	return CameraComponent{
		Position:     mgl32.Vec3(c.Camera.Position),
		Yaw:          c.Camera.Yaw,
		Pitch:        c.Camera.Pitch,
		FovY:         c.Camera.FovY,
		Near:         c.Camera.Near,
		Far:          c.Camera.Far,
		Orthographic: c.Camera.Orthographic,
		OrthoHeight:  c.Camera.OrthoHeight,
	}
}
