package domain

import (
	"fmt"
	"strings"
)

// Category is one of the twelve fixed presentation-structure labels.
// The zero value is not a valid category.
type Category string

// The slide taxonomy.
const (
	CategoryTitleSlide      Category = "Title Slide"
	CategoryIntroduction    Category = "Introduction"
	CategoryAgenda          Category = "Agenda"
	CategoryBackground      Category = "Background/Context"
	CategoryMainContent     Category = "Main Content Slides"
	CategoryData            Category = "Data/Statistics"
	CategoryCaseStudies     Category = "Case Studies/Examples"
	CategoryAnalysis        Category = "Analysis/Findings"
	CategoryConclusion      Category = "Conclusion"
	CategoryRecommendations Category = "Recommendations/Next Steps"
	CategoryQA              Category = "Q&A"
	CategoryThankYou        Category = "Thank You"
)

var allCategories = []Category{
	CategoryTitleSlide,
	CategoryIntroduction,
	CategoryAgenda,
	CategoryBackground,
	CategoryMainContent,
	CategoryData,
	CategoryCaseStudies,
	CategoryAnalysis,
	CategoryConclusion,
	CategoryRecommendations,
	CategoryQA,
	CategoryThankYou,
}

// AllCategories returns the taxonomy in presentation order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory validates a label against the taxonomy. Surrounding
// whitespace is ignored; anything other than a verbatim label is rejected.
func ParseCategory(s string) (Category, error) {
	label := strings.TrimSpace(s)
	for _, c := range allCategories {
		if string(c) == label {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, label)
}

// IsValid returns true if the category is one of the twelve labels.
func (c Category) IsValid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the label.
func (c Category) String() string {
	return string(c)
}

// CategoryList returns the labels joined for inclusion in a prompt.
func CategoryList() string {
	labels := make([]string, len(allCategories))
	for i, c := range allCategories {
		labels[i] = string(c)
	}
	return strings.Join(labels, ", ")
}
