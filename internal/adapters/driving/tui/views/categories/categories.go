// Package categories provides the taxonomy view, the browser's start page.
package categories

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

// View lists every category with its stored slide count.
type View struct {
	styles  *styles.Styles
	library driving.SlideLibrary
	ctx     context.Context

	counts   []domain.CategoryCount
	selected int
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
}

// NewView creates a new categories view.
func NewView(s *styles.Styles, library driving.SlideLibrary) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		library: library,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for store calls.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the category counts.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	library, ctx := v.library, v.ctx
	return func() tea.Msg {
		if library == nil {
			return messages.CategoriesLoaded{Err: errors.New("slide library not available")}
		}
		counts, err := library.Categories(ctx)
		return messages.CategoriesLoaded{Counts: counts, Err: err}
	}
}

// Update handles messages for the categories view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CategoriesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.counts = msg.Counts
			if v.selected >= len(v.counts) {
				v.selected = 0
			}
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.counts)-1 {
			v.selected++
		}
	case "enter":
		if v.selected < len(v.counts) {
			cat := v.counts[v.selected].Category
			return v, func() tea.Msg { return messages.CategorySelected{Category: cat} }
		}
	case "r":
		v.loading = true
		return v, v.load()
	case "c":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewCollections} }
	case "?":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case "q":
		return v, tea.Quit
	}
	return v, nil
}

// View renders the category list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("deckforge"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Annotated slide library"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading categories..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		var total int
		for _, c := range v.counts {
			total += c.Count
		}
		for i, c := range v.counts {
			line := fmt.Sprintf("%-28s %4d", c.Category, c.Count)
			switch {
			case i == v.selected:
				b.WriteString(v.styles.Selected.Render("> " + line))
			case c.Count == 0:
				b.WriteString(v.styles.Muted.Render("  " + line))
			default:
				b.WriteString(v.styles.Normal.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%d slides stored", total)))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] open  [c] collections  [r] reload  [?] help  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Counts returns the loaded category counts.
func (v *View) Counts() []domain.CategoryCount {
	return v.counts
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
