package segment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/poiesic/docsift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words returns n distinct whitespace-delimited words.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(parts, " ")
}

func testDoc(text string) core.Document {
	return core.Document{
		Path:     "ecs/creating_instances.md",
		Service:  "ecs",
		SourceId: "creating_instances",
		Url:      "https://docs.example.com/ecs/creating_instances",
		Text:     text,
	}
}

func newTestSegmenter(t *testing.T, minTokens, maxTokens int) *Segmenter {
	t.Helper()
	s, err := NewSegmenter(WithMinTokens(minTokens), WithMaxTokens(maxTokens))
	require.NoError(t, err)
	return s
}

func TestNewSegmenter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := NewSegmenter()
		require.NoError(t, err)
		assert.Equal(t, DefaultMinTokens, s.minTokens)
		assert.Equal(t, DefaultMaxTokens, s.maxTokens)
	})

	t.Run("invalid min", func(t *testing.T) {
		_, err := NewSegmenter(WithMinTokens(0))
		assert.ErrorIs(t, err, ErrInvalidMinTokens)
	})

	t.Run("max not above min", func(t *testing.T) {
		_, err := NewSegmenter(WithMinTokens(100), WithMaxTokens(100))
		assert.ErrorIs(t, err, ErrInvalidMaxTokens)
	})
}

func TestSegment_Deterministic(t *testing.T) {
	s := newTestSegmenter(t, 5, 50)
	doc := testDoc("# Overview\n\n" + words(20) + "\n\n## Details\n\n" + words(20))

	first := s.Segment(doc)
	second := s.Segment(doc)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Id, second[i].Id)
		assert.Equal(t, first[i].Content, second[i].Content)
	}
}

func TestSegment_NoHeaders(t *testing.T) {
	s := newTestSegmenter(t, 5, 50)

	t.Run("meets minimum", func(t *testing.T) {
		chunks := s.Segment(testDoc(words(10)))
		require.Len(t, chunks, 1)
		assert.Empty(t, chunks[0].Headers)
		assert.Equal(t, 10, chunks[0].TokenCount)
	})

	t.Run("below minimum", func(t *testing.T) {
		chunks := s.Segment(testDoc("too short"))
		assert.Empty(t, chunks)
	})

	t.Run("empty document", func(t *testing.T) {
		chunks := s.Segment(testDoc("   \n\n  "))
		assert.Empty(t, chunks)
	})
}

func TestSegment_BreadcrumbPrefix(t *testing.T) {
	s := newTestSegmenter(t, 2, 200)
	doc := testDoc("# Instances\n\n## Creating\n\n" + words(10))

	chunks := s.Segment(doc)
	require.Len(t, chunks, 1)
	assert.Equal(t, []string{"Instances", "Creating"}, chunks[0].Headers)
	assert.True(t, strings.HasPrefix(chunks[0].Content, "# Instances\n## Creating"),
		"content must start with the rendered breadcrumb, got %q", chunks[0].Content)
}

func TestSegment_SiblingBranchesClosed(t *testing.T) {
	s := newTestSegmenter(t, 2, 200)
	doc := testDoc(strings.Join([]string{
		"# A", words(5),
		"## B", words(5),
		"# C", words(5),
		"## D", words(5),
	}, "\n\n"))

	chunks := s.Segment(doc)
	require.Len(t, chunks, 4)

	// A new top-level header closes the previous branch entirely, so content
	// under D sees only its currently-open ancestors.
	assert.Equal(t, []string{"A"}, chunks[0].Headers)
	assert.Equal(t, []string{"A", "B"}, chunks[1].Headers)
	assert.Equal(t, []string{"C"}, chunks[2].Headers)
	assert.Equal(t, []string{"C", "D"}, chunks[3].Headers)
}

func TestSegment_DropsSmallSections(t *testing.T) {
	s := newTestSegmenter(t, 10, 200)
	doc := testDoc("# Big\n\n" + words(30) + "\n\n# Tiny\n\njust two")

	chunks := s.Segment(doc)
	require.Len(t, chunks, 1)
	assert.Equal(t, []string{"Big"}, chunks[0].Headers)
}

func TestSegment_SizeBounds(t *testing.T) {
	s := newTestSegmenter(t, 5, 40)

	// Three paragraphs of 25 tokens each under one header force a re-split.
	paragraphs := []string{words(25), words(25), words(25)}
	doc := testDoc("# Large Section\n\n" + strings.Join(paragraphs, "\n\n"))

	chunks := s.Segment(doc)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.GreaterOrEqual(t, chunk.TokenCount, 5)
		assert.LessOrEqual(t, chunk.TokenCount, 40)
		assert.True(t, strings.HasPrefix(chunk.Content, "# Large Section"),
			"sub-chunks inherit the section breadcrumb")
		assert.Equal(t, []string{"Large Section"}, chunk.Headers)
	}
}

func TestSegment_SmallRemainderDropped(t *testing.T) {
	s := newTestSegmenter(t, 10, 30)

	// 25 + 25 + 8 tokens: the trailing 8-token paragraph is flushed alone
	// and dropped because it is below the minimum.
	doc := testDoc("# Section\n\n" + words(25) + "\n\n" + words(25) + "\n\n" + words(8))

	chunks := s.Segment(doc)
	require.Len(t, chunks, 2)
	assert.Equal(t, 25, chunks[0].TokenCount)
	assert.Equal(t, 25, chunks[1].TokenCount)
}

func TestSegment_SmallLeadingParagraphDropped(t *testing.T) {
	s := newTestSegmenter(t, 10, 30)

	// A 3-token paragraph followed by a 29-token one: accumulating both would
	// exceed the maximum, and the cut-off accumulator is below the minimum,
	// so it is dropped rather than emitted undersized.
	doc := testDoc("# Section\n\n" + words(3) + "\n\n" + words(29))

	chunks := s.Segment(doc)
	require.Len(t, chunks, 1)
	assert.Equal(t, 29, chunks[0].TokenCount)
	for _, chunk := range chunks {
		assert.GreaterOrEqual(t, chunk.TokenCount, 10)
	}
}

func TestSegment_Positions(t *testing.T) {
	s := newTestSegmenter(t, 2, 20)
	doc := testDoc(strings.Join([]string{
		"# One", words(10),
		"# Two", words(15) + "\n\n" + words(15),
		"# Three", words(10),
	}, "\n\n"))

	chunks := s.Segment(doc)
	require.GreaterOrEqual(t, len(chunks), 4)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Position)
	}
}

func TestSegment_ChunkIdsUniqueWithinDocument(t *testing.T) {
	s := newTestSegmenter(t, 2, 20)
	para := words(15)
	// Identical paragraphs in one oversized section: ids must still differ
	// because the sequence index participates in id generation.
	doc := testDoc("# Same\n\n" + para + "\n\n" + para + "\n\n" + para)

	chunks := s.Segment(doc)
	require.Greater(t, len(chunks), 1)

	seen := make(map[string]bool)
	for _, chunk := range chunks {
		assert.False(t, seen[chunk.Id], "duplicate id %s", chunk.Id)
		seen[chunk.Id] = true
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapse spaces", "a   b\tc", "a b c"},
		{"collapse blank lines", "a\n\n\n\nb", "a\n\nb"},
		{"preserve single newline", "a\nb", "a\nb"},
		{"trim", "  a b  \n", "a b"},
		{"strip carriage returns", "a\r\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(tt.in))
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	paragraphs := splitParagraphs("first block\nstill first\n\nsecond\n\n\n\nthird")
	assert.Equal(t, []string{"first block\nstill first", "second", "third"}, paragraphs)
}

func TestParseHeaderLine(t *testing.T) {
	tests := []struct {
		line  string
		level int
		text  string
		ok    bool
	}{
		{"# Title", 1, "Title", true},
		{"### Deep Title", 3, "Deep Title", true},
		{"###### Max", 6, "Max", true},
		{"####### Too Deep", 0, "", false},
		{"#NoSpace", 0, "", false},
		{"# ", 0, "", false},
		{"plain text", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			level, text, ok := parseHeaderLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.text, text)
		})
	}
}
