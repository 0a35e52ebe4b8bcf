// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckforge/internal/core/domain"
)

// SlideList displays stored slides in a navigable list.
type SlideList struct {
	slides   []domain.StoredSlideRecord
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewSlideList creates a new slide list component.
func NewSlideList(s *styles.Styles) *SlideList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SlideList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the slide list.
func (l *SlideList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *SlideList) Update(msg tea.Msg) (*SlideList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the slide list.
func (l *SlideList) View() string {
	if len(l.slides) == 0 {
		return l.styles.Muted.Render("No slides")
	}

	// Each slide takes two lines.
	visibleCount := (l.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(l.slides))

	lines := make([]string, 0, (end-start)*2+2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderSlide(i, &l.slides[i]))
	}
	if len(l.slides) > visibleCount {
		lines = append(lines, "", l.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", start+1, end, len(l.slides))))
	}

	return strings.Join(lines, "\n")
}

// renderSlide formats one slide as its ID line and a summary preview.
func (l *SlideList) renderSlide(index int, rec *domain.StoredSlideRecord) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	id := truncate(rec.DocumentID, max(l.width/2-4, 10))
	tags := strings.Join(rec.Tags, ", ")

	var header string
	if index == l.selected {
		header = l.styles.Selected.Render(fmt.Sprintf("%s%s", indicator, id))
	} else {
		header = l.styles.Normal.Render(indicator + id)
	}
	if tags != "" {
		header += " " + l.styles.Tag.Render(truncate(tags, max(l.width/2-4, 10)))
	}

	summary := strings.Join(strings.Fields(rec.Summary), " ")
	preview := l.styles.Muted.Render("    " + truncate(summary, max(l.width-6, 20)))

	return header + "\n" + preview
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetSlides replaces the list contents and resets the selection.
func (l *SlideList) SetSlides(slides []domain.StoredSlideRecord) {
	l.slides = slides
	l.selected = 0
}

// Slides returns the current slides.
func (l *SlideList) Slides() []domain.StoredSlideRecord {
	return l.slides
}

// Selected returns the index of the selected slide.
func (l *SlideList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *SlideList) SetSelected(index int) {
	if index >= 0 && index < len(l.slides) {
		l.selected = index
	}
}

// SelectedSlide returns the currently selected slide, or nil if none.
func (l *SlideList) SelectedSlide() *domain.StoredSlideRecord {
	if l.selected < 0 || l.selected >= len(l.slides) {
		return nil
	}
	return &l.slides[l.selected]
}

// Remove drops a slide by document ID, keeping the selection in range.
func (l *SlideList) Remove(documentID string) {
	for i := range l.slides {
		if l.slides[i].DocumentID == documentID {
			l.slides = append(l.slides[:i], l.slides[i+1:]...)
			break
		}
	}
	if l.selected >= len(l.slides) && l.selected > 0 {
		l.selected = len(l.slides) - 1
	}
}

// MoveUp moves selection up.
func (l *SlideList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *SlideList) MoveDown() {
	if l.selected < len(l.slides)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *SlideList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of slides.
func (l *SlideList) Count() int {
	return len(l.slides)
}

// IsEmpty returns whether the list is empty.
func (l *SlideList) IsEmpty() bool {
	return len(l.slides) == 0
}
