package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{60, 20, false},
		{59, 24, true},
		{80, 19, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestCompact(t *testing.T) {
	if !Compact(80, 40) {
		t.Error("narrow terminal should be compact")
	}
	if !Compact(120, 10) {
		t.Error("short body should be compact")
	}
	if Compact(120, 40) {
		t.Error("large terminal should not be compact")
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Alarms", "06:59", 80)
	for _, want := range []string{"riseup", "Alarms", "06:59"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFooter_DropsHintsButKeepsQuit(t *testing.T) {
	hints := []KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Arm/Disarm"},
		{Key: "T", Description: "Try"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	wide := RenderFooter(hints, 200)
	if !strings.Contains(wide, "Arm/Disarm") || !strings.Contains(wide, "Quit") {
		t.Errorf("wide footer should show every hint: %q", wide)
	}

	narrow := RenderFooter(hints, 40)
	if !strings.Contains(narrow, "Quit") {
		t.Errorf("narrow footer dropped quit: %q", narrow)
	}
	if strings.Contains(narrow, "Back") {
		t.Errorf("narrow footer should drop middle hints: %q", narrow)
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", "07:00", 80)
	footer := RenderFooter([]KeyHint{{Key: "Ctrl+C", Description: "Quit"}}, 80)

	frame := RenderFrame(header, "body", footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
	if got := BodyHeight(header, footer, 24); got != 24-lipgloss.Height(header)-lipgloss.Height(footer) {
		t.Errorf("BodyHeight = %d", got)
	}
	if got := BodyHeight(header, footer, 2); got != 0 {
		t.Errorf("BodyHeight on tiny terminal = %d, want 0", got)
	}
}
