// Package slides provides the slide list view of one category.
package slides

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

// View lists the slides of a category. Tag hints typed into the filter
// rank the list by tag overlap.
type View struct {
	styles  *styles.Styles
	library driving.SlideLibrary
	ctx     context.Context

	category   domain.Category
	list       *list.SlideList
	filter     *input.TagInput
	bar        *status.Bar
	confirming bool
	width      int
	height     int
	err        error
}

// NewView creates a new slides view.
func NewView(s *styles.Styles, library driving.SlideLibrary) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		library: library,
		ctx:     context.Background(),
		list:    list.NewSlideList(s),
		filter:  input.NewTagInput(s),
		bar:     status.NewBar(s, nil),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for store calls.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// SetCategory switches the view to a category and loads its slides.
func (v *View) SetCategory(cat domain.Category) tea.Cmd {
	v.category = cat
	v.list.SetSlides(nil)
	v.filter.Reset()
	v.filter.Blur()
	v.confirming = false
	v.err = nil
	v.bar.SetState(status.StateLoading)
	return v.load(nil)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) load(tags []string) tea.Cmd {
	library, ctx, cat := v.library, v.ctx, v.category
	return func() tea.Msg {
		if library == nil {
			return messages.SlidesLoaded{Category: cat, Err: errors.New("slide library not available")}
		}
		var (
			recs []domain.StoredSlideRecord
			err  error
		)
		if len(tags) > 0 {
			recs, err = library.ByCategoryAndTags(ctx, cat, tags)
		} else {
			recs, err = library.ByCategory(ctx, cat)
		}
		return messages.SlidesLoaded{Category: cat, Tags: tags, Slides: recs, Err: err}
	}
}

func (v *View) deleteSelected() tea.Cmd {
	rec := v.list.SelectedSlide()
	if rec == nil {
		return nil
	}
	library, ctx, id := v.library, v.ctx, rec.DocumentID
	return func() tea.Msg {
		if library == nil {
			return messages.SlideDeleted{DocumentID: id, Err: errors.New("slide library not available")}
		}
		return messages.SlideDeleted{DocumentID: id, Err: library.Delete(ctx, id)}
	}
}

// Update handles messages for the slides view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SlidesLoaded:
		if msg.Category != v.category {
			return v, nil
		}
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.list.SetSlides(msg.Slides)
		v.bar.SetState(status.StateSlides)
		v.bar.SetSlideCount(len(msg.Slides))
		v.bar.SetMessage(strings.Join(msg.Tags, ", "))
		return v, nil

	case messages.SlideDeleted:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.list.Remove(msg.DocumentID)
		v.bar.SetSlideCount(v.list.Count())
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil

	case tea.KeyMsg:
		if v.filter.Focused() {
			return v.handleFilterKey(msg)
		}
		if v.confirming {
			return v.handleConfirmKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) setError(err error) {
	v.err = err
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "down", "j":
		v.list, _ = v.list.Update(msg)
	case "enter":
		if rec := v.list.SelectedSlide(); rec != nil {
			selected := *rec
			return v, func() tea.Msg { return messages.SlideSelected{Record: selected} }
		}
	case "/":
		return v, v.filter.Focus()
	case "d":
		if !v.list.IsEmpty() {
			v.confirming = true
		}
	case "r":
		v.bar.SetState(status.StateLoading)
		return v, v.load(v.filter.Tags())
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewCategories} }
	}
	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.filter.Blur()
		v.bar.SetState(status.StateLoading)
		return v, v.load(v.filter.Tags())
	case tea.KeyEsc:
		v.filter.Blur()
		return v, nil
	default:
		var cmd tea.Cmd
		v.filter, cmd = v.filter.Update(msg)
		return v, cmd
	}
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.confirming = false
	if msg.String() == "y" {
		return v, v.deleteSelected()
	}
	return v, nil
}

// View renders the slide list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("%s (%d)", v.category, v.list.Count())))
	b.WriteString("\n\n")

	if v.filter.Focused() || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.confirming:
		if rec := v.list.SelectedSlide(); rec != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %s? [y/N]", rec.DocumentID)))
		}
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	reserved := 8
	v.list.SetDimensions(width, max(height-reserved, 2))
	v.filter.SetWidth(width)
	v.bar.SetWidth(width)
}

// Category returns the category being listed.
func (v *View) Category() domain.Category {
	return v.category
}

// Slides returns the listed slides.
func (v *View) Slides() []domain.StoredSlideRecord {
	return v.list.Slides()
}

// Filtering reports whether the tag filter has focus.
func (v *View) Filtering() bool {
	return v.filter.Focused()
}

// Confirming reports whether a delete is awaiting confirmation.
func (v *View) Confirming() bool {
	return v.confirming
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
