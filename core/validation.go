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


package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Content must not be empty
//   - Service must not be empty
//   - TokenCount must be positive
//
// NOT validated (populated later or optional):
//   - Vector (can be empty until the ingestion pipeline embeds the chunk)
//   - Headers (empty for the whole-document fallback)
//   - Url, DocType (sidecar metadata may be absent)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkId)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if chunk.Service == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyService)
	}

	if chunk.TokenCount <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidTokenCount)
	}

	return nil
}
