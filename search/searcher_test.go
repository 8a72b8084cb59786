package search

import (
	"context"
	"testing"

	"github.com/poiesic/docsift/ai/mock"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChunkRepository returns canned vector matches and records the limit it
// was asked for. Only FindSimilar matters to the searcher.
type fakeChunkRepository struct {
	matches   []*core.VectorMatch
	lastLimit int
}

var _ storage.ChunkRepository = (*fakeChunkRepository)(nil)

func (f *fakeChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	return chunks, nil
}

func (f *fakeChunkRepository) GetChunk(ctx context.Context, id string) (*core.Chunk, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeChunkRepository) GetChunks(ctx context.Context, ids ...string) ([]*core.Chunk, error) {
	return nil, nil
}

func (f *fakeChunkRepository) GetAllChunks(ctx context.Context) ([]*core.Chunk, error) {
	return nil, nil
}

func (f *fakeChunkRepository) CountChunks(ctx context.Context) (int, error) {
	return len(f.matches), nil
}

func (f *fakeChunkRepository) DeleteChunks(ctx context.Context, ids ...string) error {
	return nil
}

func (f *fakeChunkRepository) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.VectorMatch, error) {
	f.lastLimit = limit
	if len(f.matches) > limit {
		return f.matches[:limit], nil
	}
	return f.matches, nil
}

func (f *fakeChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeChunkRepository) Close() error { return nil }

func match(id, content, service, docType string, distance float32) *core.VectorMatch {
	return &core.VectorMatch{
		Chunk: &core.Chunk{
			Id:      id,
			Content: content,
			Service: service,
			DocType: docType,
		},
		Distance: distance,
	}
}

func newTestSearcher(t *testing.T, repo storage.ChunkRepository) *Searcher {
	t.Helper()
	s, err := NewSearcher(repo, mock.NewMockProvider())
	require.NoError(t, err)
	return s
}

func TestNewSearcher(t *testing.T) {
	t.Run("requires chunk repository", func(t *testing.T) {
		_, err := NewSearcher(nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrChunkRepositoryRequired)
	})

	t.Run("requires provider", func(t *testing.T) {
		_, err := NewSearcher(&fakeChunkRepository{}, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})
}

func TestSearch_EmptyQuery(t *testing.T) {
	s := newTestSearcher(t, &fakeChunkRepository{})

	_, err := s.Search(context.Background(), "   ", DefaultSearchOptions())
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearch_NoCandidates(t *testing.T) {
	s := newTestSearcher(t, &fakeChunkRepository{})

	results, err := s.Search(context.Background(), "anything", DefaultSearchOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_OverFetchLimit(t *testing.T) {
	repo := &fakeChunkRepository{}
	s := newTestSearcher(t, repo)

	opts := DefaultSearchOptions()
	opts.TopK = 5
	_, err := s.Search(context.Background(), "query", opts)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.lastLimit)

	opts.TopK = 50
	_, err = s.Search(context.Background(), "query", opts)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit, "over-fetch is capped")
}

func TestSearch_ServiceBoostReorders(t *testing.T) {
	// The vpc chunk is nearer in vector space, but the query names ecs.
	repo := &fakeChunkRepository{matches: []*core.VectorMatch{
		match("chunk_vpc", "subnet planning details", "vpc", "", 0.10),
		match("chunk_ecs", "server configuration details", "ecs", "", 0.30),
	}}
	s := newTestSearcher(t, repo)

	results, err := s.Search(context.Background(), "ecs configuration", DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "chunk_ecs", results[0].Chunk.Id)
	assert.InDelta(t, 5.0, results[0].ServiceBoost, 1e-9)
	assert.InDelta(t, 1.0, results[1].ServiceBoost, 1e-9)
	assert.Greater(t, results[0].CombinedScore, results[1].CombinedScore)
}

func TestSearch_CombinedScoreFormula(t *testing.T) {
	repo := &fakeChunkRepository{matches: []*core.VectorMatch{
		match("chunk_a", "alpha beta gamma", "unknownsvc", "", 0.25),
	}}
	s := newTestSearcher(t, repo)

	opts := DefaultSearchOptions()
	results, err := s.Search(context.Background(), "alpha", opts)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.InDelta(t, 0.75, r.VectorScore, 1e-6)
	assert.InDelta(t, 1.0, r.LexicalScore, 1e-9, "sole matching candidate normalizes to 1.0")
	want := (0.75*opts.VectorWeight + 1.0*opts.LexicalWeight) * r.ServiceBoost * r.DocTypeBoost
	assert.InDelta(t, want, r.CombinedScore, 1e-9)
}

func TestSearch_LexicalDisabled(t *testing.T) {
	repo := &fakeChunkRepository{matches: []*core.VectorMatch{
		match("chunk_a", "alpha beta gamma", "unknownsvc", "", 0.25),
	}}
	s := newTestSearcher(t, repo)

	opts := DefaultSearchOptions()
	opts.UseLexical = false
	results, err := s.Search(context.Background(), "alpha", opts)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Zero(t, r.LexicalScore)
	want := (0.75*opts.VectorWeight + 0*opts.LexicalWeight) * r.ServiceBoost * r.DocTypeBoost
	assert.InDelta(t, want, r.CombinedScore, 1e-9)
}

func TestSearch_DedupesById(t *testing.T) {
	repo := &fakeChunkRepository{matches: []*core.VectorMatch{
		match("chunk_dup", "duplicate entry content", "obs", "", 0.40),
		match("chunk_dup", "duplicate entry content", "obs", "", 0.20),
		match("chunk_other", "other content", "obs", "", 0.30),
	}}
	s := newTestSearcher(t, repo)

	results, err := s.Search(context.Background(), "entry content", DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "chunk_dup", results[0].Chunk.Id)
	assert.InDelta(t, 0.80, results[0].VectorScore, 1e-6, "best occurrence kept")
	assert.Equal(t, "chunk_other", results[1].Chunk.Id)
}

func TestSearch_TruncatesToTopK(t *testing.T) {
	var matches []*core.VectorMatch
	for i := 0; i < 20; i++ {
		matches = append(matches, match(
			core.ChunkID("svc/doc.md", string(rune('a'+i)), i),
			"filler content",
			"svc", "",
			float32(i)*0.01,
		))
	}
	repo := &fakeChunkRepository{matches: matches}
	s := newTestSearcher(t, repo)

	opts := DefaultSearchOptions()
	opts.TopK = 3
	results, err := s.Search(context.Background(), "filler", opts)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

// recordingMonitor captures which hooks fired.
type recordingMonitor struct {
	started  bool
	expanded string
	matches  int
	lexical  int
	finished int
}

func (m *recordingMonitor) Start(_ string)                           { m.started = true }
func (m *recordingMonitor) AfterExpansion(expanded string)           { m.expanded = expanded }
func (m *recordingMonitor) AfterVectorSearch(ms []*core.VectorMatch) { m.matches = len(ms) }
func (m *recordingMonitor) AfterLexicalScoring(scores []float64)     { m.lexical = len(scores) }
func (m *recordingMonitor) Finish(results []*core.ScoredChunk)       { m.finished = len(results) }

func TestSearchWithMonitor(t *testing.T) {
	repo := &fakeChunkRepository{matches: []*core.VectorMatch{
		match("chunk_a", "elastic cloud server basics", "ecs", "", 0.1),
	}}
	s := newTestSearcher(t, repo)

	monitor := &recordingMonitor{}
	results, err := s.SearchWithMonitor(context.Background(), "ecs basics", DefaultSearchOptions(), monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Contains(t, monitor.expanded, "elastic cloud server", "monitor sees the expanded query")
	assert.Equal(t, 1, monitor.matches)
	assert.Equal(t, 1, monitor.lexical)
	assert.Equal(t, len(results), monitor.finished)
}
