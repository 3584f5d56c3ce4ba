package textsplitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSentences = []string{
	"one two three four five.",
	"six seven eight nine ten.",
	"alpha beta gamma delta epsilon.",
	"red green blue black white.",
}

func TestSentenceSplitter_ShortTextIsOneChunk(t *testing.T) {
	s := NewSentenceSplitter(100, 0, NewSimpleTokenizer(), nil)

	chunks := s.SplitText("a short text that fits in one chunk")
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short text that fits in one chunk", chunks[0])
}

func TestSentenceSplitter_SplitsOnSentences(t *testing.T) {
	s := NewSentenceSplitter(8, 0, NewSimpleTokenizer(), nil)

	text := strings.Join(testSentences, " ")
	chunks := s.SplitText(text)

	// Each sentence is five tokens, two never fit in a chunk of eight.
	require.Len(t, chunks, 4)
	assert.Equal(t, "one two three four five.", chunks[0])
	assert.Equal(t, "red green blue black white.", chunks[3])

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(s.Tokenizer.Encode(chunk)), 8)
	}
}

func TestSentenceSplitter_OverlapSeedsNextChunk(t *testing.T) {
	s := NewSentenceSplitter(12, 5, NewSimpleTokenizer(), nil)

	text := strings.Join(testSentences, " ")
	chunks := s.SplitText(text)

	require.Len(t, chunks, 3)
	// The second chunk starts with the tail sentence of the first.
	assert.Contains(t, chunks[0], "six seven eight nine ten.")
	assert.Contains(t, chunks[1], "six seven eight nine ten.")
	assert.Contains(t, chunks[1], "alpha beta gamma delta epsilon.")
	assert.Contains(t, chunks[2], "alpha beta gamma delta epsilon.")
	assert.Contains(t, chunks[2], "red green blue black white.")
}

func TestSentenceSplitter_OversizedSentenceFallsBackToWords(t *testing.T) {
	s := NewSentenceSplitter(4, 0, NewSimpleTokenizer(), nil)

	chunks := s.SplitText("word1 word2 word3 word4 word5 word6 word7 word8 word9 word10")
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(s.Tokenizer.Encode(chunk)), 4)
	}
}

func TestSentenceSplitter_ParagraphsSplitFirst(t *testing.T) {
	s := NewSentenceSplitter(6, 0, NewSimpleTokenizer(), nil)

	text := "first paragraph has five tokens" + DefaultParagraphSep + "second paragraph also has five"
	chunks := s.SplitText(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, "first paragraph has five tokens", chunks[0])
	assert.Equal(t, "second paragraph also has five", chunks[1])
}

func TestSentenceSplitter_EmptyText(t *testing.T) {
	s := NewSentenceSplitter(8, 0, NewSimpleTokenizer(), nil)
	assert.Equal(t, []string{""}, s.SplitText(""))
}

func TestSplitTextMetadataAware(t *testing.T) {
	s := NewSentenceSplitter(60, 0, NewSimpleTokenizer(), nil)

	t.Run("metadata shrinks the content window", func(t *testing.T) {
		chunks, err := s.SplitTextMetadataAware("a small text", "source: orders.pdf")
		require.NoError(t, err)
		assert.Len(t, chunks, 1)
	})

	t.Run("oversized metadata is rejected", func(t *testing.T) {
		metadata := strings.Repeat("word ", 15)
		_, err := s.SplitTextMetadataAware("a small text", metadata)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient content window")
	})
}

func TestNeurosnapStrategy(t *testing.T) {
	strategy, err := NewNeurosnapSplitterStrategy(nil)
	require.NoError(t, err)

	splits := strategy.Split("Containers arrive at the gate. Truckers pick them up the next day.")
	require.Len(t, splits, 2)
	assert.Contains(t, splits[0], "Containers arrive at the gate.")
	assert.Contains(t, splits[1], "Truckers pick them up the next day.")
}
