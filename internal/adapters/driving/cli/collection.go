package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage named groups of source presentations",
	Long: `Collections group source presentations under a name, such as "formal"
or "sales", so they can be annotated together.`,
}

var collectionAddCmd = &cobra.Command{
	Use:   "add <name> <presentation-id...>",
	Short: "Add presentations to a collection",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCollectionAdd,
}

var collectionShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the presentations of a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionShow,
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE:  runCollectionList,
}

func init() {
	collectionCmd.AddCommand(collectionAddCmd)
	collectionCmd.AddCommand(collectionShowCmd)
	collectionCmd.AddCommand(collectionListCmd)
	rootCmd.AddCommand(collectionCmd)
}

func runCollectionAdd(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	c, err := collectionService.Add(cmd.Context(), args[0], args[1:]...)
	if err != nil {
		return fmt.Errorf("failed to add to collection: %w", err)
	}
	cmd.Printf("Collection %s now has %d presentations\n", c.Name, len(c.PresentationIDs))
	return nil
}

func runCollectionShow(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	c, err := collectionService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("collection not found: %s", args[0])
		}
		return fmt.Errorf("failed to get collection: %w", err)
	}
	cmd.Printf("%s\n", c.Name)
	for _, id := range c.PresentationIDs {
		cmd.Printf("  %s\n", id)
	}
	return nil
}

func runCollectionList(cmd *cobra.Command, _ []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	cols, err := collectionService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	if len(cols) == 0 {
		cmd.Println("No collections.")
		return nil
	}
	for _, c := range cols {
		cmd.Printf("%-24s %d presentations\n", c.Name, len(c.PresentationIDs))
	}
	return nil
}
