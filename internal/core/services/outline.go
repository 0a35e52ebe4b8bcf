package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/logger"
)

var (
	sectionBreak   = regexp.MustCompile(`\n[ \t]*\n`)
	headingPrefix  = regexp.MustCompile(`(?i)^(?:#+\s*|[-*+]\s+|(?:section\s+)?\d+[.):]\s*)+`)
	headingMarkers = strings.NewReplacer("**", "", "__", "", "`", "")
)

// Outliner turns a client intent into an ordered section plan.
type Outliner struct {
	llm      driven.LLMService
	prompts  driven.PromptStore
	budgeter *Budgeter
}

// NewOutliner creates an outliner.
func NewOutliner(llm driven.LLMService, prompts driven.PromptStore, budgeter *Budgeter) *Outliner {
	return &Outliner{llm: llm, prompts: prompts, budgeter: budgeter}
}

// Generate asks the LLM for an outline and parses it.
func (o *Outliner) Generate(ctx context.Context, intent, clientDescription string) (*domain.PresentationOutline, error) {
	if o.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	tmpl, err := loadPrompt(o.prompts, driven.PromptPresentationOutline)
	if err != nil {
		return nil, err
	}
	prompt := o.budgeter.FitPrompt(tmpl, map[string]string{
		"intent":     intent,
		"client":     clientDescription,
		"categories": domain.CategoryList(),
	}, "intent")

	reply, err := o.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutlineFailed, err)
	}
	outline := ParseOutline(reply)
	if len(outline.Sections) == 0 {
		return nil, fmt.Errorf("%w: reply has no sections", ErrOutlineFailed)
	}
	logger.Info("Outline has %d sections", len(outline.Sections))
	return &outline, nil
}

// ParseOutline splits an outline on blank lines. The first line of each
// block is its heading; the rest is guidance. Headings that are not
// taxonomy labels leave Category empty.
func ParseOutline(text string) domain.PresentationOutline {
	outline := domain.PresentationOutline{Raw: text}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, block := range sectionBreak.Split(text, -1) {
		block = strings.Trim(block, "\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		first, rest, _ := strings.Cut(block, "\n")
		heading, inline := cleanHeading(first)

		guidance := strings.TrimSpace(rest)
		if inline != "" {
			guidance = strings.TrimSpace(inline + "\n" + guidance)
		}
		section := domain.OutlineSection{Heading: heading, Guidance: dedent(guidance)}
		if cat, err := domain.ParseCategory(heading); err == nil {
			section.Category = cat
		}
		outline.Sections = append(outline.Sections, section)
	}
	return outline
}

// cleanHeading strips markdown, numbering and the trailing colon from a
// heading line. Text after a colon on the same line is returned as inline
// guidance.
func cleanHeading(line string) (heading, inline string) {
	line = headingMarkers.Replace(strings.TrimSpace(line))
	line = headingPrefix.ReplaceAllString(line, "")
	if i := strings.Index(line, ":"); i >= 0 {
		heading, inline = line[:i], line[i+1:]
	} else {
		heading = line
	}
	return strings.TrimSpace(heading), strings.TrimSpace(inline)
}

func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "\n")
}
