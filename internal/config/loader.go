package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"raycaster/internal/raycast"
)

// Load reads the configuration.
// Search order: customPath -> ~/.raycaster/config.yaml -> ./configs/config.yaml -> embedded default.
// Files are layered over Default, so a file only needs the keys it changes.
// The result is not validated: callers apply flag overrides first and then
// call Validate. A user or local file that fails to parse is skipped with a
// warning on logger.
func Load(customPath string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "config.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logger.Warn("ignoring unreadable config file", "path", path, "err", err)
			cfg = Default()
			continue
		}
		return cfg, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".raycaster", filename)
}

// sceneFile is the on-disk scene format.
type sceneFile struct {
	MaxDistance float64    `yaml:"max_distance"`
	Walls       []wallFile `yaml:"walls"`
}

type wallFile struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// BuildScene loads the configured scene and appends any scattered walls.
func BuildScene(c Config) (*raycast.SegmentScene, error) {
	scene, err := LoadScene(c.Scene.Path)
	if err != nil {
		return nil, err
	}
	sc := c.Scatter()
	if sc.Count == 0 {
		return scene, nil
	}
	lo, hi, ok := scene.Bounds()
	if !ok {
		return nil, errors.New("cannot scatter walls in an empty scene")
	}
	seed := c.Scene.Scatter.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	extra := raycast.ScatterWalls(rand.New(rand.NewSource(seed)), lo, hi, sc)
	walls := append(append([]raycast.Segment(nil), scene.Walls()...), extra...)
	return raycast.NewSegmentScene(walls, scene.MaxDistance())
}

// LoadScene reads a wall list from path, or the built-in arena when path is
// empty.
func LoadScene(path string) (*raycast.SegmentScene, error) {
	data := defaultArenaYAML
	name := "built-in arena"
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
		}
		name = path
	}
	scene, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return scene, nil
}

// ParseScene decodes a YAML scene document.
func ParseScene(data []byte) (*raycast.SegmentScene, error) {
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	walls := make([]raycast.Segment, len(f.Walls))
	for i, w := range f.Walls {
		walls[i] = raycast.Segment{
			A: raycast.Vec2{X: w.X1, Y: w.Y1},
			B: raycast.Vec2{X: w.X2, Y: w.Y2},
		}
	}
	return raycast.NewSegmentScene(walls, f.MaxDistance)
}
