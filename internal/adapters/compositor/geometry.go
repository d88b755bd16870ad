// Package compositor overlays downloaded media onto a cover template at a
// fixed, configurable geometry.
package compositor

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Geometry holds the cover template path and placement, loaded from YAML.
type Geometry struct {
	mu          sync.RWMutex
	template    string
	coverWidth  int
	coverHeight int
	posX        int
	posY        int

	filePath    string
	lastModTime time.Time
}

// Snapshot is an immutable view of the geometry for one composition.
type Snapshot struct {
	TemplatePath string
	CoverWidth   int
	CoverHeight  int
	PosX         int
	PosY         int
}

// rawGeometry represents the YAML structure.
type rawGeometry struct {
	Template string `yaml:"template"`
	Cover    struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"cover"`
	Position struct {
		X int `yaml:"x"`
		Y int `yaml:"y"`
	} `yaml:"position"`
}

// LoadGeometry loads the compositing geometry from a YAML file.
// It starts a background goroutine for hot-reloading.
func LoadGeometry(filePath string) (*Geometry, error) {
	g := &Geometry{filePath: filePath}
	if err := g.reload(); err != nil {
		return nil, err
	}

	go g.watch()

	return g, nil
}

// reload reads the configuration from the file.
func (g *Geometry) reload() error {
	data, err := os.ReadFile(g.filePath)
	if err != nil {
		return err
	}

	var raw rawGeometry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.template = raw.Template
	g.coverWidth = raw.Cover.Width
	g.coverHeight = raw.Cover.Height
	g.posX = raw.Position.X
	g.posY = raw.Position.Y

	return nil
}

// watch monitors the configuration file for changes and reloads it.
func (g *Geometry) watch() {
	ticker := time.NewTicker(10 * time.Second)
	for range ticker.C {
		info, err := os.Stat(g.filePath)
		if err != nil {
			continue
		}
		if info.ModTime().After(g.lastModTime) {
			_ = g.reload()
			g.lastModTime = info.ModTime()
		}
	}
}

// Snapshot returns a consistent view of the geometry (thread-safe).
func (g *Geometry) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Snapshot{
		TemplatePath: g.template,
		CoverWidth:   g.coverWidth,
		CoverHeight:  g.coverHeight,
		PosX:         g.posX,
		PosY:         g.posY,
	}
}
