package models

// Window anchors for preset windows.
const (
	AnchorEnd   = "end"
	AnchorStart = "start"
)

// ChartTheme holds the presentation settings shared by both charts.
// It can be overridden by a YAML file.
type ChartTheme struct {
	Colors       map[string]string `json:"colors" yaml:"colors"`
	StateOrder   []string          `json:"stateOrder" yaml:"state_order"`
	DefaultColor string            `json:"defaultColor" yaml:"default_color"`
	Presets      []PresetWindow    `json:"presets" yaml:"presets"`
}

// PresetWindow is a named shortcut for the visible time range of the timeline.
// Anchor "end" ends the window at the latest End; "start" begins it at the
// earliest Start.
type PresetWindow struct {
	Label  string  `json:"label" yaml:"label"`
	Hours  float64 `json:"hours" yaml:"hours"`
	Anchor string  `json:"anchor" yaml:"anchor"`
}

// DefaultChartTheme returns the built-in color mapping and preset windows.
func DefaultChartTheme() *ChartTheme {
	return &ChartTheme{
		Colors: map[string]string{
			StateStopped: "orangered",
			StateIdle:    "blue",
			StateWorking: "green",
		},
		StateOrder:   []string{StateStopped, StateIdle, StateWorking},
		DefaultColor: "gray",
		Presets: []PresetWindow{
			{Label: "1 Hour", Hours: 1, Anchor: AnchorEnd},
			{Label: "3 Hours", Hours: 3, Anchor: AnchorStart},
			{Label: "6 Hours", Hours: 6, Anchor: AnchorStart},
			{Label: "12 Hours", Hours: 12, Anchor: AnchorStart},
		},
	}
}

// ColorFor returns the display color for a state label.
func (t *ChartTheme) ColorFor(state string) string {
	if c, ok := t.Colors[state]; ok {
		return c
	}
	return t.DefaultColor
}
