package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

var (
	slidesCategory string
	slidesTags     []string
	slidesJSON     bool
)

var slidesCmd = &cobra.Command{
	Use:   "slides",
	Short: "Browse the annotated slide library",
	Long:  `List, inspect and delete annotated slides.`,
}

var slidesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored slides",
	Long: `Lists stored slides, optionally restricted to one category.
With --tags the category's slides are ranked by tag overlap.`,
	RunE: runSlidesList,
}

var slidesShowCmd = &cobra.Command{
	Use:   "show <document-id>",
	Short: "Show a stored slide",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlidesShow,
}

var slidesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Count stored slides per category",
	RunE:  runSlidesCategories,
}

var slidesDeleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Delete a stored slide",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlidesDelete,
}

func init() {
	slidesListCmd.Flags().StringVar(&slidesCategory, "category", "", "only list this category")
	slidesListCmd.Flags().StringSliceVar(&slidesTags, "tags", nil, "rank by tag overlap (needs --category)")
	slidesListCmd.Flags().BoolVar(&slidesJSON, "json", false, "output as JSON")
	slidesCmd.AddCommand(slidesListCmd)
	slidesCmd.AddCommand(slidesShowCmd)
	slidesCmd.AddCommand(slidesCategoriesCmd)
	slidesCmd.AddCommand(slidesDeleteCmd)
	rootCmd.AddCommand(slidesCmd)
}

func runSlidesList(cmd *cobra.Command, _ []string) error {
	if slideLibrary == nil {
		return errors.New("slide library not configured")
	}
	ctx := cmd.Context()

	var (
		records []domain.StoredSlideRecord
		err     error
	)
	switch {
	case slidesCategory != "":
		cat, perr := domain.ParseCategory(slidesCategory)
		if perr != nil {
			return fmt.Errorf("%w (valid: %s)", perr, domain.CategoryList())
		}
		if len(slidesTags) > 0 {
			records, err = slideLibrary.ByCategoryAndTags(ctx, cat, slidesTags)
		} else {
			records, err = slideLibrary.ByCategory(ctx, cat)
		}
	case len(slidesTags) > 0:
		return errors.New("--tags requires --category")
	default:
		records, err = slideLibrary.List(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list slides: %w", err)
	}

	if slidesJSON {
		views := make([]storedSlideView, 0, len(records))
		for _, rec := range records {
			views = append(views, toStoredSlideView(rec))
		}
		return outputJSON(cmd, views)
	}

	if len(records) == 0 {
		cmd.Println("No slides found.")
		return nil
	}
	for _, rec := range records {
		cmd.Printf("%-40s %-28s %s\n", rec.DocumentID, rec.Category, strings.Join(rec.Tags, ", "))
	}
	cmd.Printf("\n%d slides\n", len(records))
	return nil
}

func runSlidesShow(cmd *cobra.Command, args []string) error {
	if slideLibrary == nil {
		return errors.New("slide library not configured")
	}

	rec, err := slideLibrary.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("slide not found: %s", args[0])
		}
		return fmt.Errorf("failed to get slide: %w", err)
	}

	cmd.Printf("Document:     %s\n", rec.DocumentID)
	cmd.Printf("Presentation: %s\n", rec.PresentationID)
	cmd.Printf("Slide:        %s\n", rec.Slide.ObjectID)
	cmd.Printf("Category:     %s\n", rec.Category)
	cmd.Printf("Tags:         %s\n", strings.Join(rec.Tags, ", "))
	if !rec.AnnotatedAt.IsZero() {
		cmd.Printf("Annotated:    %s\n", rec.AnnotatedAt.Format("2006-01-02 15:04:05"))
	}
	cmd.Printf("Elements:     %d\n", len(rec.Slide.PageElements))
	cmd.Println()
	cmd.Println(rec.Summary)
	return nil
}

func runSlidesCategories(cmd *cobra.Command, _ []string) error {
	if slideLibrary == nil {
		return errors.New("slide library not configured")
	}

	counts, err := slideLibrary.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}

	total := 0
	for _, c := range counts {
		cmd.Printf("%-28s %5d\n", c.Category, c.Count)
		total += c.Count
	}
	cmd.Printf("%-28s %5d\n", "Total", total)
	return nil
}

func runSlidesDelete(cmd *cobra.Command, args []string) error {
	if slideLibrary == nil {
		return errors.New("slide library not configured")
	}

	if err := slideLibrary.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("slide not found: %s", args[0])
		}
		return fmt.Errorf("failed to delete slide: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
