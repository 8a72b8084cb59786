package core

//go:generate go run ../cmd/musgen

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// chunkIDPrefixLen is the number of leading content bytes hashed into a
// chunk id. Hashing a prefix rather than the full content keeps id
// generation cheap while still distinguishing sibling chunks.
const chunkIDPrefixLen = 100

// ChunkID generates a deterministic chunk identifier from the source path,
// a prefix of the chunk content, and the chunk's sequence index within its
// document. Re-segmenting unchanged input reproduces identical ids.
func ChunkID(sourcePath, content string, index int) string {
	sample := content
	if len(sample) > chunkIDPrefixLen {
		sample = sample[:chunkIDPrefixLen]
	}
	return fmt.Sprintf("chunk_%s_%s_%d", hashPrefix(sourcePath), hashPrefix(sample), index)
}

// hashPrefix returns the first 8 hex digits of a BLAKE2b hash of text.
func hashPrefix(text string) string {
	h, _ := blake2b.New(4, nil) // 4 bytes = 8 hex digits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Document is a raw corpus page prior to segmentation.
// Service is derived from the document's storage partition (the first path
// segment); Url and DocType come from the optional sidecar metadata.
type Document struct {
	Path     string
	Service  string
	DocType  string
	SourceId string
	Url      string
	Text     string
}

// Chunk is the atomic retrievable unit produced by segmentation.
// Content is normalized text prefixed with the chunk's header breadcrumb.
type Chunk struct {
	Id         string
	Content    string
	Service    string
	DocType    string
	SourceId   string
	Url        string
	Headers    []string // breadcrumb, outermost header first
	Position   int      // ordinal among chunks of the same source
	TokenCount int
	Vector     []float32 // embedding, populated by the ingestion pipeline
	InsertedAt time.Time
}

// IndexEntry holds per-chunk term statistics inside a LexicalIndex.
type IndexEntry struct {
	ChunkId   string
	Length    int
	TermFreqs map[string]int
}

// LexicalIndex holds full-corpus term statistics for TF-IDF scoring.
// DocCount is the corpus-size fingerprint used for staleness checks: a
// persisted index is reused only while the live chunk count still matches.
type LexicalIndex struct {
	DocCount int
	Entries  []IndexEntry
	DocFreqs map[string]int
	BuiltAt  time.Time
}

// VectorMatch is a nearest-neighbor hit from the vector store.
// Distance is cosine distance in [0, 1] for normalized vectors.
type VectorMatch struct {
	Chunk    *Chunk
	Distance float32
}

// ScoredChunk is a fully scored ranking candidate. It is owned by a single
// ranking call and never persisted.
type ScoredChunk struct {
	Chunk         *Chunk
	VectorScore   float64
	LexicalScore  float64
	ServiceBoost  float64
	DocTypeBoost  float64
	CombinedScore float64
}
