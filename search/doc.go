// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package search provides hybrid vector and lexical retrieval over
// documentation chunks.
//
// The Searcher type implements a multi-stage ranking algorithm that combines:
//   - Vector similarity over a thesaurus-expanded query
//   - Lexical TF-IDF scoring of the original query against candidates
//   - Service and document-type boosts derived from query keywords
//
// Candidate scores are fused as
//
//	(vector*vw + lexical*lw) * serviceBoost * docTypeBoost
//
// and the top results returned. An IndexCache keeps a persisted corpus-wide
// lexical index current using the stored chunk count as its fingerprint.
package search
