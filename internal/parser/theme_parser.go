package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/machine-dashboard/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// ParseChartTheme parses a YAML theme file. Keys left out of the file keep
// their built-in defaults.
func ParseChartTheme(filePath string) (*models.ChartTheme, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseChartThemeFromReader(file)
}

// ParseChartThemeFromReader parses a theme from an io.Reader.
func ParseChartThemeFromReader(r io.Reader) (*models.ChartTheme, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var override models.ChartTheme
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, err
	}

	theme := models.DefaultChartTheme()
	for state, color := range override.Colors {
		theme.Colors[state] = color
	}
	if len(override.StateOrder) > 0 {
		theme.StateOrder = override.StateOrder
	}
	if override.DefaultColor != "" {
		theme.DefaultColor = override.DefaultColor
	}
	if len(override.Presets) > 0 {
		for i, p := range override.Presets {
			if p.Hours <= 0 {
				return nil, fmt.Errorf("preset %d (%q): hours must be positive", i, p.Label)
			}
			switch p.Anchor {
			case "":
				override.Presets[i].Anchor = models.AnchorStart
			case models.AnchorStart, models.AnchorEnd:
			default:
				return nil, fmt.Errorf("preset %d (%q): unknown anchor %q", i, p.Label, p.Anchor)
			}
		}
		theme.Presets = override.Presets
	}

	return theme, nil
}
