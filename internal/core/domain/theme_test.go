package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF8000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.Red, 1e-9)
	assert.InDelta(t, 128.0/255, c.Green, 1e-9)
	assert.InDelta(t, 0.0, c.Blue, 1e-9)

	c, err = ParseHexColor("000000")
	require.NoError(t, err)
	assert.Equal(t, RGBColor{}, c)

	for _, bad := range []string{"", "#FFF", "#GG0000", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestTheme_Validate(t *testing.T) {
	assert.NoError(t, Theme{}.Validate())
	assert.NoError(t, Theme{BackgroundColor: &RGBColor{Red: 1}}.Validate())
	assert.NoError(t, Theme{BackgroundImageURL: "https://img"}.Validate())

	err := Theme{BackgroundColor: &RGBColor{}, BackgroundImageURL: "https://img"}.Validate()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTheme_IsZero(t *testing.T) {
	assert.True(t, Theme{}.IsZero())
	assert.False(t, Theme{Layout: "l1"}.IsZero())
	assert.False(t, Theme{TemplatePresentationID: "tmpl"}.IsZero())
}
