package collections

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

type stubCollections struct {
	driving.CollectionService
	collections []domain.Collection
	err         error
}

func (s *stubCollections) List(_ context.Context) ([]domain.Collection, error) {
	return s.collections, s.err
}

func TestView_Init(t *testing.T) {
	v := NewView(nil, &stubCollections{collections: []domain.Collection{
		{Name: "q3-sales", PresentationIDs: []string{"a", "b"}},
		{Name: "onboarding", PresentationIDs: []string{"c"}},
	}})

	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())

	require.Len(t, v.Collections(), 2)
	view := v.View()
	assert.Contains(t, view, "q3-sales (2 presentations)")
	assert.Contains(t, view, "onboarding (1 presentations)")

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.Selected())
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, &stubCollections{})

	v.Update(v.Init()())

	assert.Contains(t, v.View(), "No collections")
}

func TestView_Errors(t *testing.T) {
	t.Run("nil service", func(t *testing.T) {
		v := NewView(nil, nil)
		v.Update(v.Init()())
		assert.Error(t, v.Err())
	})

	t.Run("list fails", func(t *testing.T) {
		v := NewView(nil, &stubCollections{err: errors.New("corrupt")})
		v.Update(v.Init()())
		assert.Contains(t, v.View(), "corrupt")
	})
}

func TestView_Back(t *testing.T) {
	v := NewView(nil, &stubCollections{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewCategories}, cmd())
}
