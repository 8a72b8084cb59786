package segment

import (
	"errors"
	"strings"

	"github.com/poiesic/docsift/core"
)

const (
	// DefaultMinTokens is the minimum token count for an emitted chunk.
	// Sections below it are dropped as noise.
	DefaultMinTokens = 100

	// DefaultMaxTokens is the maximum token count for a single chunk.
	// Sections above it are re-split on paragraph boundaries.
	DefaultMaxTokens = 1000
)

var (
	// ErrInvalidMinTokens is returned for a non-positive minimum threshold.
	ErrInvalidMinTokens = errors.New("min tokens must be positive")

	// ErrInvalidMaxTokens is returned when the maximum threshold does not
	// exceed the minimum.
	ErrInvalidMaxTokens = errors.New("max tokens must exceed min tokens")
)

// Segmenter splits documents into token-bounded chunks.
type Segmenter struct {
	minTokens int
	maxTokens int
}

// Option configures a Segmenter.
type Option func(*Segmenter) error

// WithMinTokens sets the minimum chunk size in tokens.
// Default is DefaultMinTokens.
func WithMinTokens(n int) Option {
	return func(s *Segmenter) error {
		if n < 1 {
			return ErrInvalidMinTokens
		}
		s.minTokens = n
		return nil
	}
}

// WithMaxTokens sets the maximum chunk size in tokens.
// Default is DefaultMaxTokens.
func WithMaxTokens(n int) Option {
	return func(s *Segmenter) error {
		s.maxTokens = n
		return nil
	}
}

// NewSegmenter creates a segmenter with the given options.
func NewSegmenter(opts ...Option) (*Segmenter, error) {
	s := &Segmenter{
		minTokens: DefaultMinTokens,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.maxTokens <= s.minTokens {
		return nil, ErrInvalidMaxTokens
	}
	return s, nil
}

// Segment splits a document into chunks. It is a pure function of its input:
// identical documents produce identical chunk ids and content. A document
// with no recognizable headers yields at most one whole-document chunk.
// Sections below the minimum token threshold are dropped.
func (s *Segmenter) Segment(doc core.Document) []*core.Chunk {
	headers := scanHeaders(doc.Text)
	sections := splitSections(doc.Text, headers)

	var chunks []*core.Chunk
	for _, sec := range sections {
		prefix := breadcrumb(sec.stack)
		full := sec.body
		if prefix != "" {
			full = prefix + "\n\n" + sec.body
		}

		tokens := countTokens(full)
		if tokens < s.minTokens {
			continue
		}

		if tokens > s.maxTokens {
			chunks = append(chunks, s.splitLargeSection(doc, sec, prefix, chunks)...)
			continue
		}

		chunks = append(chunks, s.newChunk(doc, sec, normalize(full), tokens, len(chunks)))
	}

	return chunks
}

// splitLargeSection re-splits an oversized section on paragraph boundaries,
// greedily accumulating paragraphs until adding the next one would exceed the
// maximum. An accumulator below the minimum threshold is dropped rather than
// emitted, whether it is cut off by an oversized neighbor or left as the
// final remainder.
func (s *Segmenter) splitLargeSection(doc core.Document, sec section, prefix string, emitted []*core.Chunk) []*core.Chunk {
	var chunks []*core.Chunk
	position := len(emitted)

	var current []string
	currentTokens := 0

	flush := func() {
		body := strings.Join(current, "\n\n")
		full := body
		if prefix != "" {
			full = prefix + "\n\n" + body
		}
		chunks = append(chunks, s.newChunk(doc, sec, normalize(full), currentTokens, position))
		position++
		current = current[:0]
		currentTokens = 0
	}

	for _, para := range splitParagraphs(sec.body) {
		paraTokens := countTokens(para)
		if currentTokens+paraTokens > s.maxTokens && currentTokens > 0 {
			if currentTokens >= s.minTokens {
				flush()
			} else {
				current = current[:0]
				currentTokens = 0
			}
		}
		current = append(current, para)
		currentTokens += paraTokens
	}

	if currentTokens >= s.minTokens {
		flush()
	}

	return chunks
}

func (s *Segmenter) newChunk(doc core.Document, sec section, content string, tokens, position int) *core.Chunk {
	headers := make([]string, len(sec.stack))
	for i, node := range sec.stack {
		headers[i] = node.text
	}
	return &core.Chunk{
		Id:         core.ChunkID(doc.Path, content, position),
		Content:    content,
		Service:    doc.Service,
		DocType:    doc.DocType,
		SourceId:   doc.SourceId,
		Url:        doc.Url,
		Headers:    headers,
		Position:   position,
		TokenCount: tokens,
	}
}
