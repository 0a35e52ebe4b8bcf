// Package tiktoken provides a BPE tokenizer adapter using tiktoken-go.
// Encodings are loaded from the embedded offline loader, so no network
// access is needed at runtime.
package tiktoken

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// DefaultEncoding is the encoding used by current OpenAI chat models and a
// reasonable approximation for other providers.
const DefaultEncoding = "cl100k_base"

var loaderOnce sync.Once

// Tokenizer counts and truncates text in model tokens.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New returns a tokenizer for the named encoding. An empty name uses
// DefaultEncoding.
func New(encoding string) (*Tokenizer, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tiktoken: load encoding %s: %w", encoding, err)
	}
	return &Tokenizer{enc: enc}, nil
}

// ForModel returns the tokenizer for a model name, falling back to
// DefaultEncoding for models tiktoken does not know.
func ForModel(model string) (*Tokenizer, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return New(DefaultEncoding)
	}
	return &Tokenizer{enc: enc}, nil
}

// Encode returns the token IDs of text. Special tokens are encoded as
// ordinary text.
func (t *Tokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode returns the text of a token sequence.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	return len(t.Encode(text))
}
