package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

var transplantCmd = &cobra.Command{
	Use:   "transplant <source-presentation-id> <slide-id> <destination-presentation-id>",
	Short: "Copy one slide into another presentation",
	Long: `Reconstructs a slide element by element at the end of the destination
presentation. Shapes keep their size, position and text; images are
re-inserted from their URLs. Elements that cannot be reconstructed are
reported and the slide is marked as a partial copy.`,
	Args: cobra.ExactArgs(3),
	RunE: runTransplant,
}

func init() {
	rootCmd.AddCommand(transplantCmd)
}

func runTransplant(cmd *cobra.Command, args []string) error {
	if transplantService == nil {
		return errors.New("transplant service not configured: run 'deckforge settings google'")
	}

	req := domain.TransplantRequest{
		SourcePresentationID:      args[0],
		SourceSlideID:             args[1],
		DestinationPresentationID: args[2],
	}

	result, err := transplantService.Transplant(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("transplant failed: %w", err)
	}

	cmd.Printf("Status: %s\n", result.Status)
	if result.NewSlideID != "" {
		cmd.Printf("New slide: %s\n", result.NewSlideID)
	}
	for _, e := range result.Elements {
		line := fmt.Sprintf("  %-8s %-6s %s", e.Outcome, e.Kind, e.SourceObjectID)
		if e.Reason != "" {
			line += ": " + e.Reason
		}
		cmd.Println(line)
	}
	if result.Err != nil {
		cmd.Printf("Reason: %v\n", result.Err)
	}

	if result.Status == domain.TransplantError {
		return errors.New("no slide was created")
	}
	return nil
}
