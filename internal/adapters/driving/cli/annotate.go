package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

var (
	annotateCollection string
	annotateJSON       bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [presentation-id...]",
	Short: "Annotate the slides of presentations",
	Long: `Summarises, categorises and tags every slide of the given presentations
and stores the results in the slide library.

A slide that cannot be annotated is reported and skipped; the rest of the
presentation is still processed. Use --collection to annotate every
presentation of a named collection.`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateCollection, "collection", "c", "", "annotate every presentation in a collection")
	annotateCmd.Flags().BoolVar(&annotateJSON, "json", false, "output reports as JSON")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured: run 'deckforge settings llm' and 'deckforge settings google'")
	}
	if len(args) == 0 && annotateCollection == "" {
		return errors.New("specify presentation IDs or --collection")
	}

	ctx := cmd.Context()

	var (
		reports []domain.AnnotationReport
		err     error
	)
	if annotateCollection != "" {
		reports, err = annotationService.AnnotateCollection(ctx, annotateCollection)
	} else {
		reports, err = annotationService.AnnotatePresentations(ctx, args)
	}
	if err != nil {
		return fmt.Errorf("annotation failed: %w", err)
	}

	if annotateJSON {
		return outputJSON(cmd, annotationReportsJSON(reports))
	}

	var stored, failed int
	for i := range reports {
		r := &reports[i]
		if r.Err != nil {
			cmd.Printf("%s: could not be read: %v\n", r.PresentationID, r.Err)
			continue
		}
		cmd.Printf("%s: %d slides stored, %d failed\n", r.PresentationID, len(r.Stored), len(r.Failures))
		for _, rec := range r.Stored {
			cmd.Printf("  %-40s %s\n", rec.DocumentID, rec.Category)
		}
		for _, f := range r.Failures {
			cmd.Printf("  ! %s (%s): %v\n", f.SlideID, f.Stage, f.Err)
		}
		stored += len(r.Stored)
		failed += len(r.Failures)
	}
	cmd.Printf("\nAnnotated %d slides across %d presentations (%d failed).\n", stored, len(reports), failed)
	return nil
}

type annotationReportView struct {
	PresentationID string             `json:"presentation_id"`
	Error          string             `json:"error,omitempty"`
	Stored         []storedSlideView  `json:"stored"`
	Failures       []slideFailureView `json:"failures"`
}

type storedSlideView struct {
	DocumentID string   `json:"document_id"`
	SlideID    string   `json:"slide_id"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	Summary    string   `json:"summary"`
}

type slideFailureView struct {
	SlideID string `json:"slide_id"`
	Stage   string `json:"stage"`
	Error   string `json:"error"`
}

func annotationReportsJSON(reports []domain.AnnotationReport) []annotationReportView {
	out := make([]annotationReportView, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		v := annotationReportView{
			PresentationID: r.PresentationID,
			Stored:         make([]storedSlideView, 0, len(r.Stored)),
			Failures:       make([]slideFailureView, 0, len(r.Failures)),
		}
		if r.Err != nil {
			v.Error = r.Err.Error()
		}
		for _, rec := range r.Stored {
			v.Stored = append(v.Stored, toStoredSlideView(rec))
		}
		for _, f := range r.Failures {
			v.Failures = append(v.Failures, slideFailureView{SlideID: f.SlideID, Stage: f.Stage, Error: errString(f.Err)})
		}
		out = append(out, v)
	}
	return out
}

func toStoredSlideView(rec domain.StoredSlideRecord) storedSlideView {
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	return storedSlideView{
		DocumentID: rec.DocumentID,
		SlideID:    rec.Slide.ObjectID,
		Category:   string(rec.Category),
		Tags:       tags,
		Summary:    rec.Summary,
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
