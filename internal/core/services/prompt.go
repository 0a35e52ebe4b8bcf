package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
)

// RenderPrompt replaces {name} placeholders in template with vars.
// Unknown placeholders are left in place.
func RenderPrompt(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func loadPrompt(store driven.PromptStore, name string) (string, error) {
	tmpl, err := store.Load(name)
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", name, err)
	}
	return tmpl, nil
}
