package domain

// Collection is a named group of source presentations, e.g. "formal".
type Collection struct {
	Name            string
	PresentationIDs []string
}
