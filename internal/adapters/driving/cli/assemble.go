package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

var (
	assembleIntent          string
	assembleTitle           string
	assembleClient          string
	assembleTags            []string
	assembleBackgroundColor string
	assembleBackgroundImage string
	assembleLayout          string
	assembleTemplate        string
	assembleDryRun          bool
	assembleJSON            bool
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble a new presentation from stored slides",
	Long: `Generates an outline for the intent, picks the best stored slide for
each section and copies it into a new Google Slides presentation.

Sections that cannot be filled are reported and skipped. Use --dry-run to
print the outline without creating anything.

Examples:
  deckforge assemble --intent "pitch our analytics platform to a retailer" \
      --title "Acme pitch" --client "mid-size retailer, data-savvy CFO"

  deckforge assemble --intent "quarterly review" --title "Q3" \
      --background-color "#0B1F3A" --tags revenue,churn --layout TITLE_AND_BODY

  deckforge assemble --intent "board update" --title "Board" \
      --template 1AbCdEfTemplateId`,
	RunE: runAssemble,
}

func init() {
	f := assembleCmd.Flags()
	f.StringVarP(&assembleIntent, "intent", "i", "", "what the presentation should achieve (required)")
	f.StringVarP(&assembleTitle, "title", "t", "", "title of the new presentation")
	f.StringVar(&assembleClient, "client", "", "description of the audience")
	f.StringSliceVar(&assembleTags, "tags", nil, "tag hints that rank candidate slides")
	f.StringVar(&assembleBackgroundColor, "background-color", "", "background colour for every slide, #RRGGBB")
	f.StringVar(&assembleBackgroundImage, "background-image", "", "background image URL for every slide")
	f.StringVar(&assembleLayout, "layout", "", "layout for every slide: name (TITLE_AND_BODY), display name or object ID")
	f.StringVar(&assembleTemplate, "template", "", "presentation ID whose layout is applied to every slide")
	f.BoolVar(&assembleDryRun, "dry-run", false, "only generate and print the outline")
	f.BoolVar(&assembleJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, _ []string) error {
	if assemblyService == nil {
		return errors.New("assembly service not configured: run 'deckforge settings llm' and 'deckforge settings google'")
	}
	if assembleIntent == "" {
		return errors.New("--intent is required")
	}

	ctx := cmd.Context()

	if assembleDryRun {
		outline, err := assemblyService.Outline(ctx, assembleIntent, assembleClient)
		if err != nil {
			return fmt.Errorf("outline failed: %w", err)
		}
		if assembleJSON {
			return outputJSON(cmd, outlineJSON(outline))
		}
		printOutline(cmd, outline)
		return nil
	}

	theme, err := assembleTheme()
	if err != nil {
		return err
	}

	req := domain.AssemblyRequest{
		Intent:            assembleIntent,
		Title:             assembleTitle,
		ClientDescription: assembleClient,
		Theme:             theme,
		TagHints:          assembleTags,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	report, err := assemblyService.Assemble(ctx, req)
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	if assembleJSON {
		return outputJSON(cmd, assemblyReportJSON(report))
	}
	printAssemblyReport(cmd, report)
	return nil
}

func assembleTheme() (domain.Theme, error) {
	theme := domain.Theme{
		Layout:                 assembleLayout,
		TemplatePresentationID: assembleTemplate,
		BackgroundImageURL:     assembleBackgroundImage,
	}
	if assembleBackgroundColor != "" {
		c, err := domain.ParseHexColor(assembleBackgroundColor)
		if err != nil {
			return domain.Theme{}, err
		}
		theme.BackgroundColor = &c
	}
	return theme, theme.Validate()
}

func printOutline(cmd *cobra.Command, outline *domain.PresentationOutline) {
	cmd.Println("Outline")
	cmd.Println("=======")
	for i, s := range outline.Sections {
		cat := string(s.Category)
		if cat == "" {
			cat = "(not a category, will be skipped)"
		}
		cmd.Printf("%2d. %s\n    %s\n", i+1, s.Heading, cat)
		if s.Guidance != "" {
			cmd.Printf("    %s\n", s.Guidance)
		}
	}
}

func printAssemblyReport(cmd *cobra.Command, report *domain.AssemblyReport) {
	cmd.Printf("Created presentation %s\n", report.PresentationID)
	cmd.Printf("https://docs.google.com/presentation/d/%s/edit\n\n", report.PresentationID)

	for i := range report.Sections {
		s := &report.Sections[i]
		label := string(s.Section.Category)
		if label == "" {
			label = s.Section.Heading
		}
		cmd.Printf("[%s] %s", s.Status, label)
		if s.SourceSlideID != "" {
			cmd.Printf(" <- %s/%s", s.SourcePresentationID, s.SourceSlideID)
		}
		cmd.Println()
		if s.NewSlideID != "" {
			copied, failed := 0, 0
			for _, e := range s.Elements {
				switch e.Outcome {
				case domain.ElementCopied:
					copied++
				case domain.ElementFailed:
					failed++
				case domain.ElementSkipped:
				}
			}
			cmd.Printf("    slide %s: %d elements copied, %d failed\n", s.NewSlideID, copied, failed)
			if !s.Settled {
				cmd.Println("    slide did not appear in time")
			}
		}
		if s.Err != nil {
			cmd.Printf("    %v\n", s.Err)
		}
		if s.ThemeErr != nil {
			cmd.Printf("    theme not applied: %v\n", s.ThemeErr)
		}
	}

	done := report.Count(domain.SectionTransplanted) + report.Count(domain.SectionPartial)
	cmd.Printf("\n%d of %d sections filled.\n", done, len(report.Sections))
}

type outlineSectionView struct {
	Heading  string `json:"heading"`
	Category string `json:"category"`
	Guidance string `json:"guidance,omitempty"`
}

type sectionReportView struct {
	Heading              string `json:"heading"`
	Category             string `json:"category"`
	Status               string `json:"status"`
	SourcePresentationID string `json:"source_presentation_id,omitempty"`
	SourceSlideID        string `json:"source_slide_id,omitempty"`
	NewSlideID           string `json:"new_slide_id,omitempty"`
	Settled              bool   `json:"settled"`
	Error                string `json:"error,omitempty"`
	ThemeError           string `json:"theme_error,omitempty"`
}

type assemblyReportView struct {
	PresentationID string              `json:"presentation_id"`
	Sections       []sectionReportView `json:"sections"`
}

func outlineJSON(outline *domain.PresentationOutline) []outlineSectionView {
	out := make([]outlineSectionView, 0, len(outline.Sections))
	for _, s := range outline.Sections {
		out = append(out, outlineSectionView{Heading: s.Heading, Category: string(s.Category), Guidance: s.Guidance})
	}
	return out
}

func assemblyReportJSON(report *domain.AssemblyReport) assemblyReportView {
	v := assemblyReportView{
		PresentationID: report.PresentationID,
		Sections:       make([]sectionReportView, 0, len(report.Sections)),
	}
	for i := range report.Sections {
		s := &report.Sections[i]
		v.Sections = append(v.Sections, sectionReportView{
			Heading:              s.Section.Heading,
			Category:             string(s.Section.Category),
			Status:               string(s.Status),
			SourcePresentationID: s.SourcePresentationID,
			SourceSlideID:        s.SourceSlideID,
			NewSlideID:           s.NewSlideID,
			Settled:              s.Settled,
			Error:                errString(s.Err),
			ThemeError:           errString(s.ThemeErr),
		})
	}
	return v
}
