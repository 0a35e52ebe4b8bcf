// Package collections provides the presentation collections view.
package collections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

// View lists collections and their presentations.
type View struct {
	styles  *styles.Styles
	service driving.CollectionService
	ctx     context.Context

	collections []domain.Collection
	selected    int
	width       int
	height      int
	loading     bool
	err         error
}

// NewView creates a new collections view.
func NewView(s *styles.Styles, service driving.CollectionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for store calls.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the collections.
func (v *View) Init() tea.Cmd {
	v.loading = true
	service, ctx := v.service, v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.CollectionsLoaded{Err: errors.New("collection service not available")}
		}
		cols, err := service.List(ctx)
		return messages.CollectionsLoaded{Collections: cols, Err: err}
	}
}

// Update handles messages for the collections view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.CollectionsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.collections = msg.Collections
			v.selected = 0
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.collections)-1 {
				v.selected++
			}
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewCategories}
			}
		}
	}

	return v, nil
}

// View renders the collections.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Collections (%d)", len(v.collections))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading collections..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.collections) == 0:
		b.WriteString(v.styles.Muted.Render("No collections. Add one with 'deckforge collection add'."))
	default:
		for i, c := range v.collections {
			line := fmt.Sprintf("%s (%d presentations)", c.Name, len(c.PresentationIDs))
			if i == v.selected {
				b.WriteString(v.styles.Selected.Render("> " + line))
				for _, id := range c.PresentationIDs {
					b.WriteString("\n")
					b.WriteString(v.styles.Muted.Render("    " + id))
				}
			} else {
				b.WriteString(v.styles.Normal.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Collections returns the loaded collections.
func (v *View) Collections() []domain.Collection {
	return v.collections
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
