package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/logger"
)

// Ensure PromptStore implements the interfaces.
var (
	_ driven.PromptStore   = (*PromptStore)(nil)
	_ driven.PromptWatcher = (*PromptStore)(nil)
)

// reloadDebounce coalesces the burst of events an editor save produces.
const reloadDebounce = 200 * time.Millisecond

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSummariseSlide: `Your task is to summarise the following slide received from the Google Slides API. Mention both the content and the purpose of the slide.

<slide>
{slide}
</slide>

Respond only with your summary of the slide.`,

	driven.PromptCategoriseSlide: `Your task is to place the following slide summary into the category that best matches it. Pay most attention to the text content of the slide; a slide saying "Agenda" most likely belongs in the Agenda category.

<summary>
{summary}
</summary>

Respond only with one of the following categories, spelled exactly the same:
{categories}`,

	driven.PromptTagSlide: `Your task is to tag the following slide summary with keywords based on its content. Consider the main points and purpose of the slide.

<summary>
{summary}
</summary>

Respond with a list of tags separated by commas.`,

	driven.PromptPresentationOutline: `You are a presenter creating the structure of a slide presentation.

<intent>
{intent}
</intent>

<client>
{client}
</client>

Write one section per block, separated by a blank line. Start each block with a heading line taken from these categories, followed by a colon, then indented lines describing what the slide should cover:
{categories}

Only include the sections this presentation needs. Respond only with the structure.`,

	driven.PromptSelectSlide: `You are a presentation expert. Given the client's intention, the slide goal and the category, choose the best slide out of the slide options.

Client intention: {intent}
Slide category: {category}
Slide goal: {guidance}

<slide_options>
{candidates}
</slide_options>

Respond with the objectId and presentation_id of the slide that fits best, as JSON:
{"presentation_id": "<presentation_id of the best slide>", "objectId": "<objectId of the best slide>"}

Respond only with JSON; the entire response is parsed.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.deckforge/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".deckforge", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// DefaultPrompt returns the embedded template for name.
func DefaultPrompt(name string) (string, bool) {
	p, ok := defaultPrompts[name]
	return p, ok
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// No lock held during I/O
	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Watch reloads the cache whenever a prompt file is written, created,
// renamed or removed. It blocks until ctx is cancelled.
func (s *PromptStore) Watch(ctx context.Context) error {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return s.initErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.promptDir); err != nil {
		return fmt.Errorf("watch %s: %w", s.promptDir, err)
	}
	logger.Debug("Watching prompts in %s", s.promptDir)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isPromptFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("Prompt %s changed (%s)", filepath.Base(event.Name), event.Op)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, s.Reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("prompt watcher: %v", err)
		}
	}
}

func isPromptFile(path string) bool {
	return strings.HasSuffix(path, ".txt")
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Only create files that don't exist
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Deckforge Prompts

This directory contains the prompts deckforge sends to the LLM.

## Files

- ` + "`summarise_slide.txt`" + ` - Summarises one slide ({slide})
- ` + "`categorise_slide.txt`" + ` - Assigns a category ({summary}, {categories})
- ` + "`tag_slide.txt`" + ` - Extracts comma-separated tags ({summary})
- ` + "`presentation_outline.txt`" + ` - Plans the sections of a new deck ({intent}, {client}, {categories})
- ` + "`select_slide.txt`" + ` - Picks the best stored slide for a section ({category}, {guidance}, {intent}, {candidates})

## Customisation

Edit any file to customise LLM behaviour. Running servers pick up changes
automatically. Keep the {placeholders}: they are replaced with the values
listed above. The select prompt must still ask for a JSON object with
presentation_id and objectId.
`
	return os.WriteFile(path, []byte(content), 0600)
}
