package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckforge/internal/adapters/driving/tui"
)

// browseCmd represents the browse command.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the slide library in the terminal",
	Long: `Launch the interactive terminal browser for the annotated slide library.

Slides are grouped by category. Open a category to list its slides, filter
them by tags, inspect a slide's summary or delete it.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open
  /        - Filter by tags
  d        - Delete slide
  c        - Collections
  Esc      - Back
  ?        - Help
  q        - Quit`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in browser: %v", r)
		}
	}()

	if slideLibrary == nil {
		return errors.New("slide library not configured")
	}

	app, err := tui.NewApp(tui.NewPorts(slideLibrary, collectionService))
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}
