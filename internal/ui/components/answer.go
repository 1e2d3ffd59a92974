package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/riseup/internal/ui/theme"
)

// AnswerField is a single-line answer prompt. Keys whose text the accept
// filter rejects are dropped before they reach the input.
type AnswerField struct {
	model  textinput.Model
	accept func(rune) bool
	marked bool
	right  bool
}

// NumericRune accepts what a typed number can contain: digits, sign,
// decimal point and fraction slash.
func NumericRune(r rune) bool {
	return (r >= '0' && r <= '9') || strings.ContainsRune("-./", r)
}

// NewAnswerField creates a focused field. limit caps the input length;
// accept may be nil to allow any text.
func NewAnswerField(placeholder string, limit int, accept func(rune) bool) AnswerField {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = limit
	m.Focus()
	return AnswerField{model: m, accept: accept}
}

// Focus returns the cursor blink command.
func (f AnswerField) Focus() tea.Cmd {
	return f.model.Focus()
}

// Update forwards msg to the input unless it types a rejected rune.
func (f AnswerField) Update(msg tea.Msg) (AnswerField, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && f.accept != nil {
		for _, r := range key.Text {
			if !f.accept(r) {
				return f, nil
			}
		}
	}
	var cmd tea.Cmd
	f.model, cmd = f.model.Update(msg)
	return f, cmd
}

// Value returns the trimmed input.
func (f AnswerField) Value() string {
	return strings.TrimSpace(f.model.Value())
}

// Mark shows a tick or cross after the input.
func (f *AnswerField) Mark(right bool) {
	f.marked, f.right = true, right
}

// Clear empties the field and removes the mark.
func (f *AnswerField) Clear() {
	f.model.SetValue("")
	f.marked = false
}

func (f AnswerField) View() string {
	v := f.model.View()
	switch {
	case !f.marked:
		return v
	case f.right:
		return v + " " + theme.Correct.Render("✓")
	default:
		return v + " " + theme.Incorrect.Render("✗")
	}
}
