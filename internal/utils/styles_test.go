package utils

import (
	"strconv"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyles_UseValidANSI256Colors(t *testing.T) {
	t.Parallel()

	styles := map[string]lipgloss.Style{
		"command":     CommandStyle(),
		"explanation": ExplanationStyle(),
		"arg":         ArgStyle(),
		"reason":      ReasonStyle(),
		"risk-low":    RiskLowStyle(),
		"risk-warn":   RiskWarnStyle(),
		"risk-high":   RiskHighStyle(),
		"error":       ErrorStyle(),
		"status":      StatusStyle(),
		"user":        UserStyle(),
		"assistant":   AssistantStyle(),
		"program":     ProgramStyle(),
	}

	for name, style := range styles {
		color, ok := style.GetForeground().(lipgloss.Color)
		require.True(t, ok, "%s has no foreground color", name)

		// Out-of-range indexes render uncolored, silently.
		n, err := strconv.Atoi(string(color))
		require.NoError(t, err, "%s color %q is not a 256-color index", name, color)
		assert.GreaterOrEqual(t, n, 0, name)
		assert.LessOrEqual(t, n, 255, name)
	}
}
