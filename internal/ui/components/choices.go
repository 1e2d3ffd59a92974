package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/riseup/internal/ui/theme"
)

// Choices is a numbered multiple-choice list. An option is picked with
// its number key, or by moving the cursor and pressing enter. Once
// picked the list is frozen until Reset.
type Choices struct {
	Prompt  string
	Options []string
	correct int
	cursor  int
	chosen  int
}

// NewChoices creates a list; correct is the index highlighted after a pick.
func NewChoices(prompt string, options []string, correct int) Choices {
	return Choices{Prompt: prompt, Options: options, correct: correct, chosen: -1}
}

// Reset loads a new question.
func (c *Choices) Reset(prompt string, options []string, correct int) {
	*c = NewChoices(prompt, options, correct)
}

// Chosen returns the picked index, if any.
func (c Choices) Chosen() (int, bool) {
	return c.chosen, c.chosen >= 0
}

// Update handles keys. The bool reports whether this key picked an option.
func (c Choices) Update(msg tea.Msg) (Choices, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || c.chosen >= 0 || len(c.Options) == 0 {
		return c, false
	}

	s := key.String()
	switch s {
	case "up", "k":
		c.cursor = max(c.cursor-1, 0)
	case "down", "j":
		c.cursor = min(c.cursor+1, len(c.Options)-1)
	case "enter":
		c.chosen = c.cursor
		return c, true
	default:
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(c.Options) {
			c.cursor = int(s[0] - '1')
			c.chosen = c.cursor
			return c, true
		}
	}
	return c, false
}

func (c Choices) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		cursor := "  "
		if i == c.cursor && c.chosen < 0 {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", cursor, i+1, opt)

		var style lipgloss.Style
		switch {
		case c.chosen >= 0 && i == c.correct:
			style = theme.Correct
		case c.chosen >= 0 && i == c.chosen:
			style = theme.Incorrect
		case c.chosen >= 0:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.cursor:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
