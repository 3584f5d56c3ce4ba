package textsplitter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	EncodingCL100kBase = "cl100k_base"
	EncodingO200kBase  = "o200k_base"
)

// SimpleTokenizer tokenizes text by splitting on whitespace.
type SimpleTokenizer struct{}

func NewSimpleTokenizer() *SimpleTokenizer {
	return &SimpleTokenizer{}
}

func (t *SimpleTokenizer) Encode(text string) []string {
	return strings.Fields(text)
}

// TikTokenTokenizer tokenizes text using OpenAI's tiktoken encodings.
type TikTokenTokenizer struct {
	encoding     *tiktoken.Tiktoken
	encodingName string
}

// NewTikTokenTokenizer creates a tokenizer for the given encoding name.
// Defaults to cl100k_base when encodingName is empty.
func NewTikTokenTokenizer(encodingName string) (*TikTokenTokenizer, error) {
	if encodingName == "" {
		encodingName = EncodingCL100kBase
	}
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %s: %w", encodingName, err)
	}
	return &TikTokenTokenizer{encoding: enc, encodingName: encodingName}, nil
}

// Encode tokenizes text and returns stringified token IDs. The splitter
// only uses the token count, so the string values never matter.
func (t *TikTokenTokenizer) Encode(text string) []string {
	tokenIDs := t.encoding.Encode(text, nil, nil)
	tokens := make([]string, len(tokenIDs))
	for i, id := range tokenIDs {
		tokens[i] = fmt.Sprintf("%d", id)
	}
	return tokens
}

// CountTokens returns the number of tokens in the text.
func (t *TikTokenTokenizer) CountTokens(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// EncodingName returns the encoding name.
func (t *TikTokenTokenizer) EncodingName() string {
	return t.encodingName
}

var (
	defaultTokenizer     Tokenizer
	defaultTokenizerOnce sync.Once
	defaultTokenizerErr  error
)

// DefaultTokenizer returns a shared cl100k_base tokenizer.
// Safe for concurrent use.
func DefaultTokenizer() (Tokenizer, error) {
	defaultTokenizerOnce.Do(func() {
		defaultTokenizer, defaultTokenizerErr = NewTikTokenTokenizer(EncodingCL100kBase)
	})
	return defaultTokenizer, defaultTokenizerErr
}

// MustDefaultTokenizer returns the default tokenizer or panics on error.
func MustDefaultTokenizer() Tokenizer {
	tok, err := DefaultTokenizer()
	if err != nil {
		panic(fmt.Sprintf("failed to create default tokenizer: %v", err))
	}
	return tok
}
