package challenge

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	kinds "github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/rhythm"
	sess "github.com/abhisek/riseup/internal/session"
	"github.com/abhisek/riseup/internal/ui/components"
	"github.com/abhisek/riseup/internal/ui/theme"
)

// Rhythm playfield size in cells.
const (
	fieldMaxWidth  = 48
	fieldMaxHeight = 12
)

func (s *ChallengeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s\n\npress any key", s.errMsg))
	}
	if s.state == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Waking up...")
	}
	if s.confirmQuit {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Give up on this challenge? (y/n)"))
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch s.opts.Kind {
	case kinds.KindMath:
		b.WriteString(s.renderMath(width))
	case kinds.KindCode:
		b.WriteString(s.renderCode(width))
	case kinds.KindRhythm:
		b.WriteString(s.renderRhythm(width, height))
	}

	if s.state.Phase == sess.PhaseFeedback {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *ChallengeScreen) renderInfoLine(width int) string {
	state := s.state
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Level %d", state.Difficulty))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Tries %d  %s %d",
			state.Attempts,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.Correct,
		))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *ChallengeScreen) renderMath(width int) string {
	p := s.state.Math
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(p.Display))
	b.WriteString("\n\n")
	b.WriteString(center.Render("Answer: " + s.input.View()))
	return b.String()
}

func (s *ChallengeScreen) renderCode(width int) string {
	p := s.state.Code
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Language)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.CodeBlock(p.Code, cw)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	return b.String()
}

func (s *ChallengeScreen) renderRhythm(width, height int) string {
	tr := s.state.Rhythm
	fw := min(width-8, fieldMaxWidth)
	fh := min(height-10, fieldMaxHeight)
	if fw < 8 {
		fw = 8
	}
	if fh < 4 {
		fh = 4
	}

	target := tr.Current()
	col := int(target.X * float64(fw-1))
	row := int(target.Y * float64(fh-1))
	glyph := approachGlyph(s.frame.Sub(s.state.PromptTime).Seconds() / tr.Beatmap().BeatInterval().Seconds())

	rows := make([]string, fh)
	for r := range rows {
		if r != row {
			rows[r] = strings.Repeat(" ", fw)
			continue
		}
		rows[r] = strings.Repeat(" ", col) + theme.Target.Render(glyph) + strings.Repeat(" ", fw-col-1)
	}
	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(strings.Join(rows, "\n"))

	streak := components.NewStreakMeter(tr.Streak(), tr.Required())

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, field))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, streak.View()))
	if s.state.Attempts > 0 {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, judgementLabel(s.state.LastOutcome)))
	}
	return b.String()
}

// approachGlyph draws the target closing in on its beat; progress is the
// fraction of the beat interval elapsed since the approach began.
func approachGlyph(progress float64) string {
	switch {
	case progress >= 0.9:
		return "●"
	case progress >= 0.6:
		return "◉"
	case progress >= 0.3:
		return "◎"
	default:
		return "○"
	}
}

func judgementLabel(out rhythm.Outcome) string {
	switch out.Judgement {
	case rhythm.Perfect:
		return theme.Correct.Render("PERFECT")
	case rhythm.Good:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("GOOD")
	}
	if out.Regenerated {
		return theme.Incorrect.Render("MISS · new beatmap")
	}
	return theme.Incorrect.Render("MISS")
}

func (s *ChallengeScreen) renderFeedback(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return center.Foreground(theme.Error).Bold(true).Render("Not quite") + "\n" +
		center.Foreground(theme.TextDim).Render(fmt.Sprintf("Correct answer: %s", s.state.LastReveal))
}
