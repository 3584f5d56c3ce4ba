// Package textsplitter chunks document text for embedding and retrieval.
package textsplitter

import (
	"fmt"
	"strings"
)

const (
	DefaultChunkSize     = 1024
	DefaultChunkOverlap  = 200
	DefaultParagraphSep  = "\n\n\n"
	DefaultSeparator     = " "
	DefaultChunkingRegex = `[^,.;。？！]+[,.;。？！]?|[,.;。？！]`
)

// textSplit holds intermediate split information.
type textSplit struct {
	text       string
	isSentence bool
	tokenSize  int
}

// SentenceSplitter splits text with a preference for complete sentences.
type SentenceSplitter struct {
	ChunkSize              int
	ChunkOverlap           int
	Separator              string
	ParagraphSeparator     string
	SecondaryChunkingRegex string
	Tokenizer              Tokenizer
	SplitterStrategy       SentenceSplitterStrategy

	splitFns            []func(string) []string
	subSentenceSplitFns []func(string) []string
}

// NewSentenceSplitter creates a new SentenceSplitter.
// Pass 0 or nil to use defaults. chunkOverlap of 0 means no overlap.
func NewSentenceSplitter(
	chunkSize int,
	chunkOverlap int,
	tokenizer Tokenizer,
	splitterStrategy SentenceSplitterStrategy,
) *SentenceSplitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	if tokenizer == nil {
		tokenizer = NewSimpleTokenizer()
	}

	if splitterStrategy == nil {
		splitterStrategy = NewRegexSplitterStrategy(DefaultChunkingRegex)
	}

	s := &SentenceSplitter{
		ChunkSize:              chunkSize,
		ChunkOverlap:           chunkOverlap,
		Separator:              DefaultSeparator,
		ParagraphSeparator:     DefaultParagraphSep,
		SecondaryChunkingRegex: DefaultChunkingRegex,
		Tokenizer:              tokenizer,
		SplitterStrategy:       splitterStrategy,
	}

	s.initSplitFns()
	return s
}

func (s *SentenceSplitter) initSplitFns() {
	// Primary: paragraphs, then sentences.
	s.splitFns = []func(string) []string{
		SplitBySep(s.ParagraphSeparator),
		func(text string) []string { return s.SplitterStrategy.Split(text) },
	}

	// Fallbacks when a single sentence exceeds the chunk size.
	s.subSentenceSplitFns = []func(string) []string{
		SplitByRegex(s.SecondaryChunkingRegex),
		SplitBySep(s.Separator),
		SplitByChar(),
	}
}

// SplitText splits the text into chunks.
func (s *SentenceSplitter) SplitText(text string) []string {
	return s.splitText(text, s.ChunkSize)
}

// SplitTextMetadataAware splits text into chunks, leaving room for metadata
// that will share the context window.
func (s *SentenceSplitter) SplitTextMetadataAware(text string, metadata string) ([]string, error) {
	metadataLength := s.getTokenSize(metadata)
	effectiveChunkSize := s.ChunkSize - metadataLength
	if effectiveChunkSize < 50 {
		return nil, fmt.Errorf("metadata length (%d) is too large for chunk size (%d), resulting in insufficient content window (< 50)", metadataLength, s.ChunkSize)
	}
	return s.splitText(text, effectiveChunkSize), nil
}

func (s *SentenceSplitter) splitText(text string, chunkSize int) []string {
	if text == "" {
		return []string{text}
	}

	splits := s.split(text, chunkSize)
	chunks := s.merge(splits, chunkSize)
	return s.postprocessChunks(chunks)
}

func (s *SentenceSplitter) split(text string, chunkSize int) []textSplit {
	tokenSize := s.getTokenSize(text)
	if tokenSize <= chunkSize {
		return []textSplit{{text: text, isSentence: true, tokenSize: tokenSize}}
	}

	textSplitsByFns, isSentence := s.getSplitsByFns(text)
	var textSplits []textSplit

	for _, splitStr := range textSplitsByFns {
		tokenSize := s.getTokenSize(splitStr)
		if tokenSize <= chunkSize {
			textSplits = append(textSplits, textSplit{
				text:       splitStr,
				isSentence: isSentence,
				tokenSize:  tokenSize,
			})
		} else {
			recursiveSplits := s.split(splitStr, chunkSize)
			textSplits = append(textSplits, recursiveSplits...)
		}
	}
	return textSplits
}

func (s *SentenceSplitter) merge(splits []textSplit, chunkSize int) []string {
	var chunks []string
	type bufItem struct {
		text string
		len  int
	}
	var curChunk []bufItem
	var lastChunk []bufItem
	curChunkLen := 0
	newChunk := true

	closeChunk := func() {
		var sb strings.Builder
		for _, item := range curChunk {
			sb.WriteString(item.text)
		}
		chunks = append(chunks, sb.String())

		lastChunk = curChunk
		curChunk = nil
		curChunkLen = 0
		newChunk = true

		// Seed the next chunk with overlap from the tail of the last one.
		if len(lastChunk) > 0 {
			lastIndex := len(lastChunk) - 1
			for lastIndex >= 0 {
				item := lastChunk[lastIndex]
				if curChunkLen+item.len <= s.ChunkOverlap {
					curChunkLen += item.len
					curChunk = append([]bufItem{item}, curChunk...)
					lastIndex--
				} else {
					break
				}
			}
		}
	}

	splitIdx := 0
	for splitIdx < len(splits) {
		curSplit := splits[splitIdx]

		if curChunkLen+curSplit.tokenSize > chunkSize && !newChunk {
			closeChunk()
		} else {
			if curSplit.isSentence || curChunkLen+curSplit.tokenSize <= chunkSize || newChunk {
				curChunkLen += curSplit.tokenSize
				curChunk = append(curChunk, bufItem{text: curSplit.text, len: curSplit.tokenSize})
				splitIdx++
				newChunk = false
			} else {
				closeChunk()
			}
		}
	}

	if !newChunk {
		var sb strings.Builder
		for _, item := range curChunk {
			sb.WriteString(item.text)
		}
		chunks = append(chunks, sb.String())
	}

	return chunks
}

func (s *SentenceSplitter) postprocessChunks(chunks []string) []string {
	var newChunks []string
	for _, chunk := range chunks {
		stripped := strings.TrimSpace(chunk)
		if stripped == "" {
			continue
		}
		newChunks = append(newChunks, stripped)
	}
	return newChunks
}

func (s *SentenceSplitter) getTokenSize(text string) int {
	return len(s.Tokenizer.Encode(text))
}

func (s *SentenceSplitter) getSplitsByFns(text string) ([]string, bool) {
	for _, splitFn := range s.splitFns {
		splits := splitFn(text)
		if len(splits) > 1 {
			return splits, true
		}
	}

	var splits []string
	for _, splitFn := range s.subSentenceSplitFns {
		splits = splitFn(text)
		if len(splits) > 1 {
			break
		}
	}
	return splits, false
}

var _ TextSplitter = (*SentenceSplitter)(nil)
