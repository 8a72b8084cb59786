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


// Package storage provides the storage abstraction layer for docsift.
//
// This package defines repository interfaces that decouple storage
// implementation from the segmentation and retrieval logic, so different
// backends (BadgerDB, in-memory, etc.) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return interfaces to enforce
// abstraction:
//
//	repo, err := badger.NewChunkRepository(backend)  // storage.ChunkRepository
//
// # Architecture
//
//   - ChunkRepository: persistence and nearest-neighbor lookup for chunks
//   - IndexRepository: persistence for the cached lexical index
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines. The persisted lexical index
// is read-only during queries and only ever replaced wholesale.
//
// # Context Support
//
// All repository methods accept context.Context. Pass context.Background()
// for operations without specific timeout requirements.
package storage
