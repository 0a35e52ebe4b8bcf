// Package cli provides the deckforge command line, a driving adapter over
// the core services.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
	"github.com/custodia-labs/deckforge/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services injected by the composition root. A nil service means its
// dependencies are not configured; commands that need it report that.
var (
	annotationService driving.AnnotationService
	assemblyService   driving.AssemblyService
	transplantService driving.TransplantService
	slideLibrary      driving.SlideLibrary
	collectionService driving.CollectionService
	settingsService   driving.SettingsService
	promptWatcher     driven.PromptWatcher
)

// Services aggregates everything the commands call into.
type Services struct {
	Annotation  driving.AnnotationService
	Assembly    driving.AssemblyService
	Transplant  driving.TransplantService
	Library     driving.SlideLibrary
	Collections driving.CollectionService
	Settings    driving.SettingsService

	// Prompts, when set, is watched by long-running commands.
	Prompts driven.PromptWatcher
}

var rootCmd = &cobra.Command{
	Use:   "deckforge",
	Short: "Assemble tailored slide decks from annotated Google Slides",
	Long: `deckforge annotates existing Google Slides presentations with an LLM,
keeps the annotations in a local library, and assembles new presentations
by picking the best stored slide for each section of a generated outline.

Typical flow:
  deckforge settings llm
  deckforge settings google ~/credentials.json
  deckforge annotate <presentation-id>
  deckforge assemble --intent "pitch our analytics platform" --title "Acme pitch"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output to stderr")
}

// SetServices injects the core services.
func SetServices(s Services) {
	annotationService = s.Annotation
	assemblyService = s.Assembly
	transplantService = s.Transplant
	slideLibrary = s.Library
	collectionService = s.Collections
	settingsService = s.Settings
	promptWatcher = s.Prompts
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
