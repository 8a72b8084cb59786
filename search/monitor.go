package search

import "github.com/poiesic/docsift/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterExpansion(expanded string)
	AfterVectorSearch(matches []*core.VectorMatch)
	AfterLexicalScoring(scores []float64)
	Finish(results []*core.ScoredChunk)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterExpansion(_ string)                 {}
func (n *noopMonitor) AfterVectorSearch(_ []*core.VectorMatch) {}
func (n *noopMonitor) AfterLexicalScoring(_ []float64)         {}
func (n *noopMonitor) Finish(_ []*core.ScoredChunk)            {}
