package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validChunk() *Chunk {
	return &Chunk{
		Id:         ChunkID("ecs/create.md", "# Create\n\ncontent", 0),
		Content:    "# Create\n\ncontent",
		Service:    "ecs",
		SourceId:   "create",
		TokenCount: 2,
	}
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid chunk", func(t *testing.T) {
		require.NoError(t, ValidateChunk(validChunk()))
	})

	t.Run("nil chunk", func(t *testing.T) {
		err := ValidateChunk(nil)
		assert.ErrorIs(t, err, ErrInvalidChunk)
	})

	t.Run("empty id", func(t *testing.T) {
		chunk := validChunk()
		chunk.Id = ""
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrEmptyChunkId)
	})

	t.Run("empty content", func(t *testing.T) {
		chunk := validChunk()
		chunk.Content = ""
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("empty service", func(t *testing.T) {
		chunk := validChunk()
		chunk.Service = ""
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrEmptyService)
	})

	t.Run("zero token count", func(t *testing.T) {
		chunk := validChunk()
		chunk.TokenCount = 0
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrInvalidTokenCount)
	})
}
