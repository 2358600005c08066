package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/machine-dashboard/backend/internal/models"
)

func TestParseChartTheme(t *testing.T) {
	content := `
colors:
  Idle: "#1f77b4"
  Maintenance: purple
state_order: [Working, Idle, Maintenance, Stopped]
presets:
  - label: "30 Minutes"
    hours: 0.5
    anchor: end
  - label: "2 Hours"
    hours: 2
`
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	theme, err := ParseChartTheme(path)
	if err != nil {
		t.Fatalf("ParseChartTheme failed: %v", err)
	}

	if got := theme.ColorFor("Idle"); got != "#1f77b4" {
		t.Errorf("expected overridden Idle color, got %s", got)
	}
	if got := theme.ColorFor("Working"); got != "green" {
		t.Errorf("expected default Working color, got %s", got)
	}
	if got := theme.ColorFor("Maintenance"); got != "purple" {
		t.Errorf("expected Maintenance purple, got %s", got)
	}
	if got := theme.ColorFor("Unknown"); got != "gray" {
		t.Errorf("expected default color for unknown state, got %s", got)
	}
	if len(theme.StateOrder) != 4 || theme.StateOrder[0] != "Working" {
		t.Errorf("unexpected state order: %v", theme.StateOrder)
	}
	if len(theme.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(theme.Presets))
	}
	if theme.Presets[1].Anchor != models.AnchorStart {
		t.Errorf("expected missing anchor to default to start, got %q", theme.Presets[1].Anchor)
	}
}

func TestParseChartTheme_Empty(t *testing.T) {
	theme, err := ParseChartThemeFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(theme.Presets) != 4 {
		t.Errorf("expected default presets, got %v", theme.Presets)
	}
}

func TestParseChartTheme_Invalid(t *testing.T) {
	for name, content := range map[string]string{
		"bad yaml":   "colors: [",
		"zero hours": "presets:\n  - label: x\n    hours: 0\n",
		"bad anchor": "presets:\n  - label: x\n    hours: 1\n    anchor: middle\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseChartThemeFromReader(strings.NewReader(content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseChartTheme_MissingFile(t *testing.T) {
	_, err := ParseChartTheme(filepath.Join(t.TempDir(), "none.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
