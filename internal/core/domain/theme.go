package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBColor is a colour with components in the range 0..1.
type RGBColor struct {
	Red   float64
	Green float64
	Blue  float64
}

// ParseHexColor parses #RRGGBB or RRGGBB.
func ParseHexColor(s string) (RGBColor, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGBColor{}, fmt.Errorf("%w: colour %q must be #RRGGBB", ErrInvalidInput, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGBColor{}, fmt.Errorf("%w: colour %q is not hex", ErrInvalidInput, s)
	}
	return RGBColor{
		Red:   float64((v>>16)&0xff) / 255,
		Green: float64((v>>8)&0xff) / 255,
		Blue:  float64(v&0xff) / 255,
	}, nil
}

// Theme is applied to every transplanted slide of an assembly run.
type Theme struct {
	// Layout selects the layout applied to each slide by object ID,
	// predefined name (TITLE_AND_BODY) or display name. It is resolved
	// against the destination once it exists.
	Layout string

	// TemplatePresentationID takes the layout from another presentation:
	// Layout picks one of its layouts, or the first is used. The chosen
	// layout is matched into the destination by name.
	TemplatePresentationID string

	// BackgroundColor and BackgroundImageURL are mutually exclusive.
	BackgroundColor    *RGBColor
	BackgroundImageURL string
}

// IsZero returns true if the theme changes nothing.
func (t Theme) IsZero() bool {
	return t.Layout == "" && t.TemplatePresentationID == "" && t.BackgroundColor == nil && t.BackgroundImageURL == ""
}

// Validate checks the theme is internally consistent.
func (t Theme) Validate() error {
	if t.BackgroundColor != nil && t.BackgroundImageURL != "" {
		return fmt.Errorf("%w: background colour and image are mutually exclusive", ErrInvalidInput)
	}
	return nil
}
