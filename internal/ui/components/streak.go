package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/riseup/internal/ui/theme"
)

// StreakMeter shows consecutive hits against the number required, one pip
// per hit.
type StreakMeter struct {
	Count    int
	Required int
}

// NewStreakMeter creates a meter. Count is clamped to [0, required].
func NewStreakMeter(count, required int) StreakMeter {
	if required < 1 {
		required = 1
	}
	return StreakMeter{Count: max(0, min(count, required)), Required: required}
}

// Complete reports whether every pip is lit.
func (m StreakMeter) Complete() bool {
	return m.Count >= m.Required
}

// View renders the meter.
func (m StreakMeter) View() string {
	lit := theme.PipLit.Render(strings.Repeat("● ", m.Count))
	dark := theme.PipDark.Render(strings.Repeat("○ ", m.Required-m.Count))
	label := lipgloss.NewStyle().Foreground(theme.Text).Render("Streak  ")
	count := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %d/%d", m.Count, m.Required))
	return label + strings.TrimRight(lit+dark, " ") + count
}
