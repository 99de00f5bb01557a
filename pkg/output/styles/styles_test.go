package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry(t *testing.T) {
	require.NoError(t, Parse(defaultStyles))

	for _, name := range []string{
		"Header", "Success", "Error", "Warning", "Skipped",
		"Muted", "MutedItalic", "Bold", "FilePath", "Source",
		"DryRunBanner", "Indent",
	} {
		t.Run(name, func(t *testing.T) {
			_, exists := StyleRegistry[name]
			assert.True(t, exists, "Style %s should exist in registry", name)
		})
	}
}

func TestGetStyle(t *testing.T) {
	require.NoError(t, Parse(defaultStyles))

	assert.Equal(t, StyleRegistry["Success"], GetStyle("Success"))
	assert.Equal(t, lipgloss.NewStyle(), GetStyle("NonExistentStyle"))
}

func TestBuildStyle(t *testing.T) {
	colors := map[string]lipgloss.AdaptiveColor{"red": {Light: "#ff0000", Dark: "#aa0000"}}

	style := buildStyle(StyleDef{Bold: true, Foreground: "red", MarginLeft: 2}, colors)

	assert.True(t, style.GetBold())
	assert.Equal(t, colors["red"], style.GetForeground())
	assert.Equal(t, 2, style.GetMarginLeft())
}

func TestLoadStyles(t *testing.T) {
	t.Cleanup(func() { _ = Parse(defaultStyles) })

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("styles:\n  Only:\n    bold: true\n"), 0644))

	require.NoError(t, LoadStyles(path))
	assert.Len(t, StyleRegistry, 1)
	assert.True(t, GetStyle("Only").GetBold())

	assert.Error(t, LoadStyles(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, Parse([]byte("styles: [")))
}
