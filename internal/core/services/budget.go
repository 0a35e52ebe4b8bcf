package services

import (
	"sort"

	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/logger"
)

// Budget is the token allowance of one LLM call site.
type Budget struct {
	// ModelLimit is the model's hard context limit in tokens.
	ModelLimit int

	// SafeMargin is reserved for the reply and tokenizer disagreement.
	SafeMargin int
}

// Default budgets for the annotation and selection call sites.
var (
	DefaultAnnotationBudget = Budget{ModelLimit: 16384, SafeMargin: 500}
	DefaultSelectionBudget  = Budget{ModelLimit: 4096, SafeMargin: 500}
)

// Budgeter bounds variable prompt payloads to a token budget.
type Budgeter struct {
	tokenizer driven.Tokenizer
	budget    Budget
}

// NewBudgeter creates a budgeter for one call site.
func NewBudgeter(tokenizer driven.Tokenizer, budget Budget) *Budgeter {
	return &Budgeter{tokenizer: tokenizer, budget: budget}
}

// Budget returns the budget this budgeter enforces.
func (b *Budgeter) Budget() Budget {
	return b.budget
}

// Count returns the number of tokens in text.
func (b *Budgeter) Count(text string) int {
	return b.tokenizer.Count(text)
}

// Available returns how many tokens remain for the variable payload once
// the static part of the prompt and the safe margin are accounted for.
func (b *Budgeter) Available(staticPrompt string) int {
	n := b.budget.ModelLimit - b.tokenizer.Count(staticPrompt) - b.budget.SafeMargin
	if n < 0 {
		return 0
	}
	return n
}

// Fit returns text cut at a token boundary so that it holds at most
// maxTokens tokens. Text that already fits is returned unchanged.
func (b *Budgeter) Fit(text string, maxTokens int) string {
	if maxTokens <= 0 {
		if text != "" {
			logger.Warn("budget exhausted, dropping %d bytes of payload", len(text))
		}
		return ""
	}
	tokens := b.tokenizer.Encode(text)
	if len(tokens) <= maxTokens {
		return text
	}

	// A decoded prefix can re-encode to more tokens than it was cut from.
	keep := maxTokens
	out := b.tokenizer.Decode(tokens[:keep])
	for keep > 0 && b.tokenizer.Count(out) > maxTokens {
		keep--
		out = b.tokenizer.Decode(tokens[:keep])
	}
	logger.Warn("payload truncated from %d to %d tokens", len(tokens), keep)
	return out
}

// FitPrompt renders template and bounds it to ModelLimit-SafeMargin tokens.
// The payload gets whatever the rest of the prompt leaves. When the other
// variables alone are over the limit they are cut too, largest first, and
// the rendered prompt is cut as a last resort.
func (b *Budgeter) FitPrompt(template string, vars map[string]string, payloadKey string) string {
	limit := b.budget.ModelLimit - b.budget.SafeMargin
	fitted := make(map[string]string, len(vars))
	for k, v := range vars {
		fitted[k] = v
	}
	fitted[payloadKey] = ""

	staticPrompt := RenderPrompt(template, fitted)
	if over := b.tokenizer.Count(staticPrompt) - limit; over > 0 {
		for _, k := range b.largestFirst(vars, payloadKey) {
			n := b.tokenizer.Count(fitted[k])
			fitted[k] = b.Fit(fitted[k], n-over)
			staticPrompt = RenderPrompt(template, fitted)
			if over = b.tokenizer.Count(staticPrompt) - limit; over <= 0 {
				break
			}
		}
	}

	fitted[payloadKey] = b.Fit(vars[payloadKey], b.Available(staticPrompt))
	prompt := RenderPrompt(template, fitted)
	if b.tokenizer.Count(prompt) > limit {
		prompt = b.Fit(prompt, limit)
	}
	return prompt
}

// largestFirst returns the keys of vars other than skip, ordered by token
// count, largest first.
func (b *Budgeter) largestFirst(vars map[string]string, skip string) []string {
	counts := make(map[string]int, len(vars))
	keys := make([]string, 0, len(vars))
	for k, v := range vars {
		if k == skip {
			continue
		}
		keys = append(keys, k)
		counts[k] = b.tokenizer.Count(v)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
