package driven

// Tokenizer converts text to model tokens and back.
type Tokenizer interface {
	// Encode returns the token IDs of text.
	Encode(text string) []int

	// Decode returns the text of a token sequence.
	Decode(tokens []int) string

	// Count returns the number of tokens in text.
	Count(text string) int
}
