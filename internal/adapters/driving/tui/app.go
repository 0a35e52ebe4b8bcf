package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/views/categories"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/views/collections"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/views/slidedetail"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/views/slides"
)

// App is the slide browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	categoriesView  *categories.View
	slidesView      *slides.View
	detailView      *slidedetail.View
	collectionsView *collections.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new browser with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		categoriesView:  categories.NewView(s, ports.Library),
		slidesView:      slides.NewView(s, ports.Library),
		detailView:      slidedetail.NewView(s),
		collectionsView: collections.NewView(s, ports.Collections),
		currentView:     messages.ViewCategories,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.categoriesView.WithContext(ctx)
	a.slidesView.WithContext(ctx)
	a.collectionsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("deckforge - slide library"),
		a.categoriesView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.forwardKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewCategories:
			// Counts change after deletes.
			return a, a.categoriesView.Init()
		case messages.ViewCollections:
			return a, a.collectionsView.Init()
		case messages.ViewSlides, messages.ViewSlideDetail, messages.ViewHelp:
		}
		return a, nil

	case messages.CategoriesLoaded:
		a.recordErr(msg.Err)
		a.categoriesView, cmd = a.categoriesView.Update(msg)
		return a, cmd

	case messages.CategorySelected:
		a.currentView = messages.ViewSlides
		return a, a.slidesView.SetCategory(msg.Category)

	case messages.SlidesLoaded:
		a.recordErr(msg.Err)
		a.slidesView, cmd = a.slidesView.Update(msg)
		return a, cmd

	case messages.SlideDeleted:
		a.recordErr(msg.Err)
		a.slidesView, cmd = a.slidesView.Update(msg)
		return a, cmd

	case messages.SlideSelected:
		a.detailView.SetRecord(msg.Record)
		a.currentView = messages.ViewSlideDetail
		return a, nil

	case messages.CollectionsLoaded:
		a.recordErr(msg.Err)
		a.collectionsView, cmd = a.collectionsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSlides {
			a.slidesView, cmd = a.slidesView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) recordErr(err error) {
	if err != nil {
		a.err = err
	}
}

func (a *App) forwardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewCategories:
		a.categoriesView, cmd = a.categoriesView.Update(msg)
	case messages.ViewSlides:
		a.slidesView, cmd = a.slidesView.Update(msg)
	case messages.ViewSlideDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewCollections:
		a.collectionsView, cmd = a.collectionsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewCategories
		}
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSlides:
		return a.slidesView.View()
	case messages.ViewSlideDetail:
		return a.detailView.View()
	case messages.ViewCollections:
		return a.collectionsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.categoriesView.View()
	}
}

// viewHelp renders the keybindings.
func (a *App) viewHelp() string {
	out := a.styles.Title.Render("Help") + "\n\n"
	for _, group := range a.keymap.FullHelp() {
		for _, b := range group {
			h := b.Help()
			out += fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc)
		}
		out += "\n"
	}
	return out + a.styles.Help.Render("[esc] back")
}

// Run starts the browser.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.categoriesView.SetDimensions(width, height)
	a.slidesView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.collectionsView.SetDimensions(width, height)
}
