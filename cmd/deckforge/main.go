// Command deckforge annotates Google Slides presentations and assembles new
// ones from the best stored slides.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/deckforge/internal/adapters/driven/ai"
	"github.com/custodia-labs/deckforge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/deckforge/internal/adapters/driven/google/slides"
	"github.com/custodia-labs/deckforge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/deckforge/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/custodia-labs/deckforge/internal/adapters/driving/cli"
	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/core/services"
	"github.com/custodia-labs/deckforge/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.Store.DataDir)
	if err != nil {
		return fmt.Errorf("opening slide library: %w", err)
	}
	defer store.Close()
	annotations := store.AnnotationStore()

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompts: %w", err)
	}

	annotationBudget, selectionBudget, err := newBudgeters(settings, func(model string) (driven.Tokenizer, error) {
		return tiktoken.ForModel(model)
	})
	if err != nil {
		return err
	}

	// Missing LLM or Google configuration leaves the ports nil; the services
	// then fail with a sentinel error only when they are used.
	var llm, selectionLLM driven.LLMService
	llms, err := ai.Init(settings)
	if err != nil {
		logger.Warn("%v", err)
	} else {
		defer llms.Close()
		llm, selectionLLM = llms.LLM, llms.Selection
	}

	var opener driven.PresentationOpener
	if o, err := slides.NewOpener(ctx, settings.Google.CredentialsFile); err != nil {
		if !errors.Is(err, domain.ErrPresentationsUnavailable) {
			logger.Warn("google credentials: %v", err)
		}
	} else {
		opener = o
	}

	transplanter := services.NewTransplanter()
	retriever := services.NewRetriever(annotations)
	settle := services.SettleConfig{
		Attempts: orDefault(settings.Assembly.SettleAttempts, domain.DefaultSettleAttempts),
		Interval: settings.Assembly.SettleInterval,
	}
	if settle.Interval <= 0 {
		settle.Interval = domain.DefaultSettleInterval
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Annotation: services.NewAnnotator(opener, llm, prompts, annotations, annotationBudget),
		Assembly: services.NewAssembler(
			opener,
			services.NewOutliner(llm, prompts, annotationBudget),
			retriever,
			services.NewSelector(selectionLLM, prompts, selectionBudget),
			transplanter,
			settle,
		),
		Transplant:  services.NewTransplantService(opener, transplanter),
		Library:     retriever,
		Collections: services.NewCollectionService(annotations),
		Settings:    settingsService,
		Prompts:     prompts,
	})

	return cli.Execute(ctx)
}

// newBudgeters builds the annotation and selection budgets, each counting
// tokens with the encoding of the model that receives its prompts.
func newBudgeters(
	settings *domain.AppSettings,
	tokenizerFor func(model string) (driven.Tokenizer, error),
) (annotation, selection *services.Budgeter, err error) {
	annotationTokenizer, err := tokenizerFor(settings.LLM.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("loading tokenizer for %s: %w", settings.LLM.Model, err)
	}
	selectionTokenizer := annotationTokenizer
	if model := settings.SelectionModel(); model != settings.LLM.Model {
		selectionTokenizer, err = tokenizerFor(model)
		if err != nil {
			return nil, nil, fmt.Errorf("loading tokenizer for %s: %w", model, err)
		}
	}

	annotation = services.NewBudgeter(annotationTokenizer, services.Budget{
		ModelLimit: orDefault(settings.LLM.ContextWindow, domain.DefaultAnnotationContextWindow),
		SafeMargin: settings.Budget.SafeMargin,
	})
	selection = services.NewBudgeter(selectionTokenizer, services.Budget{
		ModelLimit: orDefault(settings.Selection.ContextWindow, domain.DefaultSelectionContextWindow),
		SafeMargin: settings.Budget.SafeMargin,
	})
	return annotation, selection, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
