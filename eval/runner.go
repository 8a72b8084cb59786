package eval

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/search"
)

const defaultTopK = 3

// Searcher is the slice of search.Searcher the runner needs.
type Searcher interface {
	Search(ctx context.Context, query string, opts search.SearchOptions) ([]*core.ScoredChunk, error)
}

// QueryResult is the outcome of one probe.
type QueryResult struct {
	Query    Query
	Passed   bool
	Actual   string   // service of the top result, "" when no results
	Services []string // services of the returned results, in rank order
	Err      error
}

// Report summarizes an evaluation run.
type Report struct {
	Results   []QueryResult
	Passed    int
	Precision float64
	Grade     string
}

// Runner executes a query set against a searcher and grades the outcome.
type Runner struct {
	searcher Searcher
	queries  []Query
	topK     int
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithQueries replaces the default probe set.
func WithQueries(queries []Query) Option {
	return func(r *Runner) error {
		if len(queries) == 0 {
			return ErrNoQueries
		}
		r.queries = queries
		return nil
	}
}

// WithTopK sets how many results each probe retrieves. Default is 3.
func WithTopK(topK int) Option {
	return func(r *Runner) error {
		if topK < 1 {
			return fmt.Errorf("topK must be positive")
		}
		r.topK = topK
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates an evaluation runner over the default query set.
func NewRunner(searcher Searcher, opts ...Option) (*Runner, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	r := &Runner{
		searcher: searcher,
		queries:  DefaultQueries(),
		topK:     defaultTopK,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Run executes every probe and writes a PASS/FAIL report to w.
// A probe passes when the top result's service is one of the expected
// services. Search errors fail the probe, not the run.
func (r *Runner) Run(ctx context.Context, w io.Writer) (*Report, error) {
	report := &Report{}

	opts := search.DefaultSearchOptions()
	opts.TopK = r.topK

	rule := strings.Repeat("=", 80)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Hybrid Search Relevance Evaluation")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	for i, query := range r.queries {
		fmt.Fprintf(w, "Query %d: %s\n", i+1, query.Description)
		fmt.Fprintf(w, "  Text: %s\n", query.Text)
		fmt.Fprintf(w, "  Expected: %s\n", strings.Join(query.ExpectedServices, ", "))

		result := r.runQuery(ctx, query, opts)
		report.Results = append(report.Results, result)

		switch {
		case result.Err != nil:
			fmt.Fprintf(w, "  Result: FAIL - %v\n", result.Err)
		case result.Actual == "":
			fmt.Fprintln(w, "  Result: FAIL - no results")
		case result.Passed:
			report.Passed++
			fmt.Fprintf(w, "  Result: PASS - service: %s\n", result.Actual)
		default:
			fmt.Fprintf(w, "  Result: FAIL - got: %s\n", result.Actual)
		}

		if len(result.Services) > 0 {
			fmt.Fprintln(w, "  Top results:")
			for rank, service := range result.Services {
				mark := "x"
				if expectedService(service, query.ExpectedServices) {
					mark = "+"
				}
				fmt.Fprintf(w, "    %s %d. %s\n", mark, rank+1, service)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.queries) > 0 {
		report.Precision = float64(report.Passed) / float64(len(r.queries))
	}
	report.Grade = grade(report.Precision)

	r.writeSummary(w, report)
	return report, nil
}

func (r *Runner) runQuery(ctx context.Context, query Query, opts search.SearchOptions) QueryResult {
	result := QueryResult{Query: query}

	hits, err := r.searcher.Search(ctx, query.Text, opts)
	if err != nil {
		r.logger.Warn("probe failed", "query", query.Text, "err", err)
		result.Err = err
		return result
	}
	if len(hits) == 0 {
		return result
	}

	for _, hit := range hits {
		result.Services = append(result.Services, strings.ToLower(hit.Chunk.Service))
	}
	result.Actual = result.Services[0]
	result.Passed = expectedService(result.Actual, query.ExpectedServices)
	return result
}

func (r *Runner) writeSummary(w io.Writer, report *Report) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Queries: %d\n", len(report.Results))
	fmt.Fprintf(w, "Passed: %d\n", report.Passed)
	fmt.Fprintf(w, "Failed: %d\n", len(report.Results)-report.Passed)
	fmt.Fprintf(w, "Precision@%d: %.1f%%\n", r.topK, report.Precision*100)
	fmt.Fprintf(w, "Grade: %s\n", report.Grade)

	var failing []QueryResult
	for _, result := range report.Results {
		if !result.Passed {
			failing = append(failing, result)
		}
	}
	if len(failing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Failing Queries:")
		for _, result := range failing {
			fmt.Fprintf(w, "  - %s\n", result.Query.Text)
			got := result.Actual
			if got == "" {
				got = "none"
			}
			fmt.Fprintf(w, "    Expected: %s, Got: %s\n",
				strings.Join(result.Query.ExpectedServices, ", "), got)
		}
	}
	fmt.Fprintln(w, rule)
}

func expectedService(service string, expected []string) bool {
	for _, candidate := range expected {
		if strings.EqualFold(service, candidate) {
			return true
		}
	}
	return false
}

// grade maps precision to a letter grade.
func grade(precision float64) string {
	switch {
	case precision >= 0.8:
		return "A (Excellent)"
	case precision >= 0.7:
		return "B (Good)"
	case precision >= 0.6:
		return "C (Fair)"
	default:
		return "D (Poor)"
	}
}
