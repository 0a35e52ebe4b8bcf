// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/styles"
)

// TagInput wraps a bubbles textinput for entering comma separated tag hints.
type TagInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewTagInput creates a new tag input component. It starts blurred.
func NewTagInput(s *styles.Styles) *TagInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "roadmap, pricing, ..."
	ti.CharLimit = 256
	ti.Width = 50

	return &TagInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the tag input.
func (t *TagInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (t *TagInput) Update(msg tea.Msg) (*TagInput, tea.Cmd) {
	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	return t, cmd
}

// View renders the tag input.
func (t *TagInput) View() string {
	label := t.styles.Subtitle.Render("Tags: ")
	input := t.styles.InputField.Render(t.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (t *TagInput) Value() string {
	return t.textinput.Value()
}

// SetValue sets the input value.
func (t *TagInput) SetValue(value string) {
	t.textinput.SetValue(value)
}

// Tags splits the input on commas, dropping empty entries.
func (t *TagInput) Tags() []string {
	var tags []string
	for _, part := range strings.Split(t.textinput.Value(), ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Focus sets focus on the input.
func (t *TagInput) Focus() tea.Cmd {
	return t.textinput.Focus()
}

// Blur removes focus from the input.
func (t *TagInput) Blur() {
	t.textinput.Blur()
}

// Focused returns whether the input is focused.
func (t *TagInput) Focused() bool {
	return t.textinput.Focused()
}

// SetWidth sets the width of the input.
func (t *TagInput) SetWidth(width int) {
	t.width = width
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	t.textinput.Width = inputWidth
}

// Width returns the current width.
func (t *TagInput) Width() int {
	return t.width
}

// Reset clears the input.
func (t *TagInput) Reset() {
	t.textinput.Reset()
}
