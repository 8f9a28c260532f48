package habitat

import (
	"errors"
	"fmt"
	"time"

	"github.com/phanxgames/habitat/boards"
	"gopkg.in/yaml.v3"
)

// Defaults applied to zero-valued BoardConfig fields.
const (
	DefaultItemSize        = 80
	DefaultTrayHeight      = 200
	DefaultScoreIncrement  = 3
	DefaultDoubleTapWindow = 300 * time.Millisecond
	DefaultViewportHeight  = 844
)

// Size is a width/height pair.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ItemSpec describes one draggable item.
type ItemSpec struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Asset string `yaml:"asset"`
}

// PlaceholderSpec describes the drop zone for the item with the same ID.
type PlaceholderSpec struct {
	ID   string `yaml:"id"`
	Rect `yaml:",inline"`
}

// BoardConfig is the static layout of one board. It is consumed once, when a
// Board is built, and never changes for the lifetime of that Board.
type BoardConfig struct {
	Name             string            `yaml:"name"`
	Background       string            `yaml:"background"`
	Map              Size              `yaml:"map"`
	Viewport         Size              `yaml:"viewport"`
	TrayHeight       float64           `yaml:"tray_height"`
	ItemSize         float64           `yaml:"item_size"`
	ScoreIncrement   int               `yaml:"score_increment"`
	OnMiss           MissPolicy        `yaml:"on_miss"`
	DoubleTapWindow  time.Duration     `yaml:"double_tap_window"`
	PlacedReversible bool              `yaml:"placed_reversible"`
	Spawn            *Vec2             `yaml:"spawn"`
	Trash            Rect              `yaml:"trash"`
	Items            []ItemSpec        `yaml:"items"`
	Placeholders     []PlaceholderSpec `yaml:"placeholders"`
}

// ParseBoardConfig decodes YAML (or JSON) board data and fills defaults.
func ParseBoardConfig(data []byte) (BoardConfig, error) {
	var cfg BoardConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BoardConfig{}, fmt.Errorf("board config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return BoardConfig{}, err
	}
	return cfg, nil
}

// LoadBoardConfig loads a board by name, preferring boards/<name>.yaml on disk
// over the embedded copy.
func LoadBoardConfig(name string) (BoardConfig, error) {
	data, err := boards.Load(name)
	if err != nil {
		return BoardConfig{}, fmt.Errorf("board config: load %s: %w", name, err)
	}
	cfg, err := ParseBoardConfig(data)
	if err != nil {
		return BoardConfig{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// DefaultBoardConfig returns the built-in ocean board.
func DefaultBoardConfig() BoardConfig {
	data, err := boards.FS.ReadFile("ocean.yaml")
	if err != nil {
		panic(fmt.Sprintf("habitat: embedded ocean board missing: %v", err))
	}
	cfg, err := ParseBoardConfig(data)
	if err != nil {
		panic(fmt.Sprintf("habitat: embedded ocean board invalid: %v", err))
	}
	return cfg
}

func (c *BoardConfig) applyDefaults() {
	if c.ItemSize == 0 {
		c.ItemSize = DefaultItemSize
	}
	if c.TrayHeight == 0 {
		c.TrayHeight = DefaultTrayHeight
	}
	if c.ScoreIncrement == 0 {
		c.ScoreIncrement = DefaultScoreIncrement
	}
	if c.DoubleTapWindow == 0 {
		c.DoubleTapWindow = DefaultDoubleTapWindow
	}
	if c.Viewport.Width == 0 {
		c.Viewport.Width = c.Map.Width
	}
	if c.Viewport.Height == 0 {
		c.Viewport.Height = DefaultViewportHeight
	}
}

// Validate checks the layout for errors that would make a board unplayable.
// Overlapping targets are not errors; NewBoard reports them as warnings.
func (c BoardConfig) Validate() error {
	var errs []error
	if len(c.Items) == 0 {
		errs = append(errs, errors.New("no items"))
	}
	if c.ItemSize <= 0 {
		errs = append(errs, fmt.Errorf("item_size must be positive, got %v", c.ItemSize))
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		errs = append(errs, fmt.Errorf("map size must be positive, got %vx%v", c.Map.Width, c.Map.Height))
	}
	if c.TrayHeight < 0 || c.TrayHeight >= c.Viewport.Height {
		errs = append(errs, fmt.Errorf("tray_height %v does not fit viewport height %v", c.TrayHeight, c.Viewport.Height))
	}
	if c.ScoreIncrement < 0 {
		errs = append(errs, fmt.Errorf("score_increment must not be negative, got %d", c.ScoreIncrement))
	}
	if c.DoubleTapWindow < 0 {
		errs = append(errs, fmt.Errorf("double_tap_window must not be negative, got %v", c.DoubleTapWindow))
	}
	if c.Trash.Width <= 0 || c.Trash.Height <= 0 {
		errs = append(errs, fmt.Errorf("trash size must be positive, got %vx%v", c.Trash.Width, c.Trash.Height))
	}

	ids := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		switch {
		case it.ID == "":
			errs = append(errs, fmt.Errorf("item %d: empty id", i))
		case ids[it.ID]:
			errs = append(errs, fmt.Errorf("item %q: duplicate id", it.ID))
		}
		ids[it.ID] = true
	}
	seen := make(map[string]bool, len(c.Placeholders))
	for i, p := range c.Placeholders {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("placeholder %d: empty id", i))
		case !ids[p.ID]:
			errs = append(errs, fmt.Errorf("placeholder %q: no item with that id", p.ID))
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("placeholder %q: duplicate id", p.ID))
		}
		if p.Width <= 0 || p.Height <= 0 {
			errs = append(errs, fmt.Errorf("placeholder %q: size must be positive, got %vx%v", p.ID, p.Width, p.Height))
		}
		seen[p.ID] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("board config: %w", errors.Join(errs...))
	}
	return nil
}

// CanonicalOrigin is the screen-space spot a tray item jumps to when it is
// grabbed: Spawn if configured, otherwise the center of the visible map area.
func (c BoardConfig) CanonicalOrigin() Vec2 {
	if c.Spawn != nil {
		return *c.Spawn
	}
	return Vec2{
		X: (c.Viewport.Width - c.ItemSize) / 2,
		Y: (c.Viewport.Height - c.TrayHeight - c.ItemSize) / 2,
	}
}

// TrayRect is the screen-space rectangle of the tray, pinned to the bottom of
// the viewport.
func (c BoardConfig) TrayRect() Rect {
	return Rect{X: 0, Y: c.Viewport.Height - c.TrayHeight, Width: c.Viewport.Width, Height: c.TrayHeight}
}

// MapViewHeight is the height of the visible map area above the tray.
func (c BoardConfig) MapViewHeight() float64 {
	return c.Viewport.Height - c.TrayHeight
}

// MaxScroll is the largest vertical scroll offset that keeps the map bottom
// on screen.
func (c BoardConfig) MaxScroll() float64 {
	m := c.Map.Height - c.MapViewHeight()
	if m < 0 {
		return 0
	}
	return m
}
