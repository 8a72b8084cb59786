package search

import (
	"time"

	"github.com/poiesic/docsift/core"
)

// minIDF floors the inverse document frequency so terms present in most
// candidates still contribute a small positive weight.
const minIDF = 0.1

// scoreCandidates computes normalized TF-IDF scores of the query against each
// document. Document frequencies are counted within the candidate set itself.
// The best-matching document scores 1.0; a token-less query or an all-zero
// batch yields all zeros. Never fails.
func scoreCandidates(query string, documents []string) []float64 {
	scores := make([]float64, len(documents))

	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return scores
	}

	// Count how many candidates contain each query token.
	docFreqs := make(map[string]int)
	for _, doc := range documents {
		docTokens := tokenSet(doc)
		for token := range queryTokens {
			if docTokens[token] {
				docFreqs[token]++
			}
		}
	}

	totalDocs := len(documents)

	for i, doc := range documents {
		docTokens := tokenize(doc)
		docLen := len(docTokens)
		if docLen == 0 {
			continue
		}

		counts := make(map[string]int, len(docTokens))
		for _, token := range docTokens {
			counts[token]++
		}

		var score float64
		for token := range queryTokens {
			count := counts[token]
			if count == 0 {
				continue
			}

			tf := float64(count) / float64(docLen)
			score += tf * smoothedIDF(totalDocs, docFreqs[token])
		}

		scores[i] = score
	}

	return normalizeScores(scores)
}

// smoothedIDF computes the floored inverse document frequency.
func smoothedIDF(totalDocs, docFreq int) float64 {
	idf := (float64(totalDocs) - float64(docFreq) + 0.5) / (float64(docFreq) + 0.5)
	if idf < minIDF {
		idf = minIDF
	}
	return idf
}

// normalizeScores rescales scores so the maximum is 1.0.
// An all-zero batch stays all zeros.
func normalizeScores(scores []float64) []float64 {
	var maxScore float64
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		return scores
	}
	for i := range scores {
		scores[i] /= maxScore
	}
	return scores
}

// BuildLexicalIndex computes corpus-wide term statistics for the given
// chunks. Building twice from the same corpus yields identical statistics,
// modulo BuiltAt.
func BuildLexicalIndex(chunks []*core.Chunk) *core.LexicalIndex {
	index := &core.LexicalIndex{
		DocCount: len(chunks),
		Entries:  make([]core.IndexEntry, 0, len(chunks)),
		DocFreqs: make(map[string]int),
		BuiltAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	for _, chunk := range chunks {
		tokens := tokenize(chunk.Content)

		termFreqs := make(map[string]int, len(tokens))
		for _, token := range tokens {
			termFreqs[token]++
		}
		for token := range termFreqs {
			index.DocFreqs[token]++
		}

		index.Entries = append(index.Entries, core.IndexEntry{
			ChunkId:   chunk.Id,
			Length:    len(tokens),
			TermFreqs: termFreqs,
		})
	}

	return index
}

// ScoreWithIndex computes normalized TF-IDF scores of the query against every
// entry of a prebuilt index, using corpus-wide document frequencies. Returns
// chunk id → score; ids absent from the map scored zero.
func ScoreWithIndex(query string, index *core.LexicalIndex) map[string]float64 {
	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 || index == nil || len(index.Entries) == 0 {
		return map[string]float64{}
	}

	scores := make([]float64, len(index.Entries))
	for i, entry := range index.Entries {
		if entry.Length == 0 {
			continue
		}

		var score float64
		for token := range queryTokens {
			count := entry.TermFreqs[token]
			if count == 0 {
				continue
			}

			tf := float64(count) / float64(entry.Length)
			score += tf * smoothedIDF(index.DocCount, index.DocFreqs[token])
		}
		scores[i] = score
	}

	scores = normalizeScores(scores)

	byID := make(map[string]float64, len(index.Entries))
	for i, entry := range index.Entries {
		if scores[i] > 0 {
			byID[entry.ChunkId] = scores[i]
		}
	}
	return byID
}
