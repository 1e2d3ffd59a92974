package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/router"
	"github.com/abhisek/riseup/internal/screen"
	"github.com/abhisek/riseup/internal/session"
	"github.com/abhisek/riseup/internal/ui/layout"
	"github.com/abhisek/riseup/internal/ui/theme"
)

// SummaryScreen displays the result of a finished challenge.
type SummaryScreen struct {
	summary session.Summary
	note    string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. note, when set, is shown as a warning
// below the numbers.
func New(summary session.Summary, note string) *SummaryScreen {
	return &SummaryScreen{summary: summary, note: note}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Challenge Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Done"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	if sum.Solved {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Sun).Bold(true), "Good morning! You're up."))
	} else {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error).Bold(true), "Challenge abandoned"))
	}
	b.WriteString("\n\n")

	mins := int(sum.Elapsed.Minutes())
	secs := int(sum.Elapsed.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%s challenge, level %d, %d:%02d", kindName(sum.Kind), sum.Difficulty, mins, secs)))
	b.WriteString("\n\n")

	label := "Answers"
	if sum.Kind == challenge.KindRhythm {
		label = "Taps"
	}
	stats := fmt.Sprintf("%s: %d        Correct: %d        Accuracy: %.0f%%",
		label, sum.Attempts, sum.Correct, sum.Accuracy()*100)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), stats))
	b.WriteString("\n")

	if sum.Kind == challenge.KindRhythm {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary),
			fmt.Sprintf("Perfect %d   Good %d   Miss %d   Beatmaps %d",
				sum.Perfects, sum.Goods, sum.Misses, sum.Generations)))
		b.WriteString("\n")
	}

	if s.note != "" {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent), s.note))
		b.WriteString("\n")
	}

	return b.String()
}

func kindName(k challenge.Kind) string {
	switch k {
	case challenge.KindMath:
		return "Math"
	case challenge.KindCode:
		return "Code"
	case challenge.KindRhythm:
		return "Rhythm"
	}
	return string(k)
}
