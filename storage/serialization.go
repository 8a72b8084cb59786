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


package storage

import (
	"github.com/poiesic/docsift/core"
)

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	buf := make([]byte, core.ChunkMUS.Size(*chunk))
	core.ChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	chunk, _, err := core.ChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalLexicalIndex serializes a LexicalIndex to bytes.
func MarshalLexicalIndex(index *core.LexicalIndex) []byte {
	buf := make([]byte, core.LexicalIndexMUS.Size(*index))
	core.LexicalIndexMUS.Marshal(*index, buf)
	return buf
}

// UnmarshalLexicalIndex deserializes a LexicalIndex from bytes.
func UnmarshalLexicalIndex(data []byte) (*core.LexicalIndex, error) {
	index, _, err := core.LexicalIndexMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &index, nil
}
