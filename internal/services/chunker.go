package services

import (
	"strings"
	"unicode/utf8"
)

// GuideChunker splits guide documents into overlapping pieces small enough
// to embed.
type GuideChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type guideChunker struct{}

func NewGuideChunker() GuideChunker {
	return &guideChunker{}
}

// ChunkText implements GuideChunker. Sizes are counted in runes. Paragraphs
// are kept whole when they fit; longer ones are broken at sentence ends.
// Each new chunk starts with up to overlap runes from the end of the previous
// one, fewer when the next unit would not fit otherwise. Only a single
// sentence longer than maxChunkSize can produce an oversized chunk.
func (gc *guideChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var (
		chunks  []string
		current strings.Builder
	)

	// flush keeps at most room runes of overlap so the next unit still fits.
	flush := func(room int) {
		chunk := current.String()
		chunks = append(chunks, chunk)
		current.Reset()
		if tail := lastRunes(chunk, min(overlap, room)); tail != "" {
			current.WriteString(tail)
		}
	}

	add := func(unit, sep string) {
		size := utf8.RuneCountInString(current.String())
		unitSize := utf8.RuneCountInString(unit)
		if size > 0 && size+len(sep)+unitSize > maxChunkSize {
			flush(maxChunkSize - len(sep) - unitSize)
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(unit)
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			add(para, "\n\n")
			continue
		}

		for _, sentence := range splitSentences(para) {
			add(sentence, " ")
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitSentences keeps the terminating punctuation with each sentence.
func splitSentences(text string) []string {
	var (
		sentences []string
		start     int
	)

	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
