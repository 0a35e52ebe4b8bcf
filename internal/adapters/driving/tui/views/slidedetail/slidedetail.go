// Package slidedetail provides the view of one annotated slide.
package slidedetail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// View shows a stored slide's annotation and element inventory.
type View struct {
	styles *styles.Styles

	record       *domain.StoredSlideRecord
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new slide detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// SetRecord sets the slide to display.
func (v *View) SetRecord(rec domain.StoredSlideRecord) {
	v.record = &rec
	v.scrollOffset = 0
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.scrollOffset > 0 {
				v.scrollOffset--
			}
		case "down", "j":
			if v.scrollOffset < v.maxScrollOffset() {
				v.scrollOffset++
			}
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSlides}
			}
		}
	}

	return v, nil
}

func (v *View) visibleLines() int {
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

func (v *View) buildContent() []string {
	if v.record == nil {
		return nil
	}
	rec := v.record

	lines := []string{
		v.formatField("Document", rec.DocumentID),
		v.formatField("Presentation", rec.PresentationID),
		v.formatField("Slide", rec.Slide.ObjectID),
		v.formatField("Category", string(rec.Category)),
	}
	if !rec.AnnotatedAt.IsZero() {
		lines = append(lines, v.formatField("Annotated", rec.AnnotatedAt.Format("2006-01-02 15:04:05")))
	}
	if len(rec.Tags) > 0 {
		lines = append(lines, v.formatField("Tags", strings.Join(rec.Tags, ", ")))
	}

	kinds := map[domain.ElementKind]int{}
	for _, el := range rec.Slide.PageElements {
		kinds[el.Kind]++
	}
	lines = append(lines, v.formatField("Elements", fmt.Sprintf("%d shapes, %d images, %d other",
		kinds[domain.ElementKindShape], kinds[domain.ElementKindImage], kinds[domain.ElementKindOther])))

	lines = append(lines, "", v.styles.Subtitle.Render("Summary"))
	wrapped := lipgloss.NewStyle().Width(max(v.width-4, 20)).Render(rec.Summary)
	for _, l := range strings.Split(wrapped, "\n") {
		lines = append(lines, "  "+l)
	}
	return lines
}

func (v *View) formatField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return v.styles.Muted.Render(fmt.Sprintf("%-13s", label+":")) + v.styles.Normal.Render(value)
}

// View renders the slide detail.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Slide"))
	b.WriteString("\n\n")

	if v.record == nil {
		b.WriteString(v.styles.Muted.Render("No slide selected."))
	} else {
		lines := v.buildContent()
		end := min(v.scrollOffset+v.visibleLines(), len(lines))
		b.WriteString(strings.Join(lines[v.scrollOffset:end], "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] scroll  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Record returns the displayed slide.
func (v *View) Record() *domain.StoredSlideRecord {
	return v.record
}

// ScrollOffset returns the current scroll position.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
