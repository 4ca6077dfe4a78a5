package layout

import "github.com/paupedrejon/conceptmap/pkg/errors"

// Defaults for [Config].
const (
	DefaultNodeWidth      = 340.0
	DefaultNodeHeight     = 140.0
	DefaultHSpacing       = 440.0
	DefaultVSpacing       = 220.0
	DefaultPadding        = 100.0
	DefaultRootScaleX     = 1.15
	DefaultRootScaleY     = 1.10
	DefaultWrapWidth      = 18
	DefaultLineHeight     = 22.0
	DefaultCircleDiameter = 420.0
	DefaultBoxGap         = 60.0
)

// Palette colours sectors whose node has no colour of its own.
var Palette = []string{"#4F46E5", "#0EA5E9", "#10B981", "#F59E0B"}

// Config holds the geometry constants used by the solvers.
// Zero fields are replaced by their defaults in [Config.ValidateAndSetDefaults].
type Config struct {
	NodeWidth  float64 `json:"node_width,omitempty" koanf:"node_width"`
	NodeHeight float64 `json:"node_height,omitempty" koanf:"node_height"`
	HSpacing   float64 `json:"h_spacing,omitempty" koanf:"h_spacing"` // Slot pitch within a level
	VSpacing   float64 `json:"v_spacing,omitempty" koanf:"v_spacing"` // Level pitch
	Padding    float64 `json:"padding,omitempty" koanf:"padding"`

	RootScaleX float64 `json:"root_scale_x,omitempty" koanf:"root_scale_x"`
	RootScaleY float64 `json:"root_scale_y,omitempty" koanf:"root_scale_y"`

	WrapWidth  int     `json:"wrap_width,omitempty" koanf:"wrap_width"` // Characters per label line
	LineHeight float64 `json:"line_height,omitempty" koanf:"line_height"`

	CircleDiameter float64 `json:"circle_diameter,omitempty" koanf:"circle_diameter"`
	BoxGap         float64 `json:"box_gap,omitempty" koanf:"box_gap"`
}

// DefaultConfig returns the standard geometry.
func DefaultConfig() Config {
	return Config{
		NodeWidth:      DefaultNodeWidth,
		NodeHeight:     DefaultNodeHeight,
		HSpacing:       DefaultHSpacing,
		VSpacing:       DefaultVSpacing,
		Padding:        DefaultPadding,
		RootScaleX:     DefaultRootScaleX,
		RootScaleY:     DefaultRootScaleY,
		WrapWidth:      DefaultWrapWidth,
		LineHeight:     DefaultLineHeight,
		CircleDiameter: DefaultCircleDiameter,
		BoxGap:         DefaultBoxGap,
	}
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// negative values with an INVALID_CONFIG error.
func (c *Config) ValidateAndSetDefaults() error {
	d := DefaultConfig()
	fields := []struct {
		name string
		v    *float64
		def  float64
	}{
		{"node_width", &c.NodeWidth, d.NodeWidth},
		{"node_height", &c.NodeHeight, d.NodeHeight},
		{"h_spacing", &c.HSpacing, d.HSpacing},
		{"v_spacing", &c.VSpacing, d.VSpacing},
		{"padding", &c.Padding, d.Padding},
		{"root_scale_x", &c.RootScaleX, d.RootScaleX},
		{"root_scale_y", &c.RootScaleY, d.RootScaleY},
		{"line_height", &c.LineHeight, d.LineHeight},
		{"circle_diameter", &c.CircleDiameter, d.CircleDiameter},
		{"box_gap", &c.BoxGap, d.BoxGap},
	}
	for _, f := range fields {
		if *f.v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "layout.%s must not be negative: %g", f.name, *f.v)
		}
		if *f.v == 0 {
			*f.v = f.def
		}
	}
	if c.WrapWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.wrap_width must not be negative: %d", c.WrapWidth)
	}
	if c.WrapWidth == 0 {
		c.WrapWidth = d.WrapWidth
	}
	return nil
}

// PaletteColor returns the palette entry for sector i.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}

// Overlay returns c with every non-zero field of o applied on top.
func (c Config) Overlay(o Config) Config {
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	set(&c.NodeWidth, o.NodeWidth)
	set(&c.NodeHeight, o.NodeHeight)
	set(&c.HSpacing, o.HSpacing)
	set(&c.VSpacing, o.VSpacing)
	set(&c.Padding, o.Padding)
	set(&c.RootScaleX, o.RootScaleX)
	set(&c.RootScaleY, o.RootScaleY)
	set(&c.LineHeight, o.LineHeight)
	set(&c.CircleDiameter, o.CircleDiameter)
	set(&c.BoxGap, o.BoxGap)
	if o.WrapWidth != 0 {
		c.WrapWidth = o.WrapWidth
	}
	return c
}
