package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

const (
	// DefaultTopK is the default number of results returned by a search.
	DefaultTopK = 5

	// DefaultVectorWeight is the default weight of the vector similarity score.
	DefaultVectorWeight = 0.7

	// DefaultLexicalWeight is the default weight of the lexical TF-IDF score.
	DefaultLexicalWeight = 0.3

	// maxCandidates caps how many chunks the vector stage retrieves for reranking.
	maxCandidates = 100
)

// SearchOptions controls a single search invocation.
type SearchOptions struct {
	// TopK is the number of results to return.
	TopK int

	// VectorWeight scales the vector similarity contribution.
	VectorWeight float64

	// LexicalWeight scales the lexical TF-IDF contribution.
	LexicalWeight float64

	// UseLexical enables lexical scoring. When false the lexical score is
	// zero for every candidate but the combination formula is unchanged.
	UseLexical bool
}

// DefaultSearchOptions returns the standard hybrid search configuration.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		TopK:          DefaultTopK,
		VectorWeight:  DefaultVectorWeight,
		LexicalWeight: DefaultLexicalWeight,
		UseLexical:    true,
	}
}

// Searcher provides hybrid vector and lexical search over documentation chunks.
type Searcher struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	thesaurus       *Thesaurus
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithThesaurus sets a custom thesaurus for expansion and boosting.
// Default is NewDefaultThesaurus().
func WithThesaurus(thesaurus *Thesaurus) Option {
	return func(s *Searcher) error {
		if thesaurus == nil {
			thesaurus = NewDefaultThesaurus()
		}
		s.thesaurus = thesaurus
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	chunkRepository storage.ChunkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		chunkRepository: chunkRepository,
		embedder:        provider.Embedder(),
		thesaurus:       NewDefaultThesaurus(),
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs a hybrid search for the query.
// Returns up to opts.TopK results, ranked by combined score.
func (s *Searcher) Search(ctx context.Context, query string, opts SearchOptions) ([]*core.ScoredChunk, error) {
	return s.SearchWithMonitor(ctx, query, opts, nil)
}

// SearchWithMonitor runs a hybrid search with monitoring. The monitor
// receives callbacks at each stage of the search process.
//
// Stages: expand the query through the thesaurus, embed the EXPANDED query
// and retrieve nearest candidates, lexically score the ORIGINAL query against
// candidate contents, then combine:
//
//	combined = (vectorScore*vw + lexicalScore*lw) * serviceBoost * docTypeBoost
//
// The expanded query widens vector recall; keeping the original for lexical
// scoring stops expansion terms from drowning out the user's own words.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, opts SearchOptions, monitor SearchMonitor) ([]*core.ScoredChunk, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}

	monitor.Start(query)

	// 1. Expand the query for the semantic stage
	expanded := s.thesaurus.Expand(query)
	monitor.AfterExpansion(expanded)

	// 2. Vector search, over-fetching so the boosts can reorder
	embedding, err := s.embedder.EmbedText(ctx, expanded)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	fetch := opts.TopK * 5
	if fetch > maxCandidates {
		fetch = maxCandidates
	}

	matches, err := s.chunkRepository.FindSimilar(ctx, embedding, fetch)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(matches)

	if len(matches) == 0 {
		return []*core.ScoredChunk{}, nil
	}

	// 3. Lexical scoring of the original query against candidate contents
	lexicalScores := make([]float64, len(matches))
	if opts.UseLexical {
		contents := make([]string, len(matches))
		for i, match := range matches {
			contents[i] = match.Chunk.Content
		}
		lexicalScores = scoreCandidates(query, contents)
	}
	monitor.AfterLexicalScoring(lexicalScores)

	// 4. Combine scores and apply domain boosts
	results := make([]*core.ScoredChunk, 0, len(matches))
	for i, match := range matches {
		vectorScore := 1 - float64(match.Distance)
		lexicalScore := lexicalScores[i]

		serviceBoost := s.thesaurus.ServiceBoost(query, match.Chunk.Service)
		docTypeBoost := s.thesaurus.DocTypeBoost(query, match.Chunk.DocType)

		combined := (vectorScore*opts.VectorWeight + lexicalScore*opts.LexicalWeight) *
			serviceBoost * docTypeBoost

		results = append(results, &core.ScoredChunk{
			Chunk:         match.Chunk,
			VectorScore:   vectorScore,
			LexicalScore:  lexicalScore,
			ServiceBoost:  serviceBoost,
			DocTypeBoost:  docTypeBoost,
			CombinedScore: combined,
		})
	}

	// Sort by combined score descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].CombinedScore > results[j].CombinedScore
	})

	// Dedupe by chunk id, keeping the best occurrence
	seen := make(map[string]bool, len(results))
	deduped := results[:0]
	for _, result := range results {
		if seen[result.Chunk.Id] {
			continue
		}
		seen[result.Chunk.Id] = true
		deduped = append(deduped, result)
	}
	results = deduped

	if len(results) > opts.TopK {
		results = results[:opts.TopK]
	}
	monitor.Finish(results)

	return results, nil
}
