package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkID_Deterministic(t *testing.T) {
	id1 := ChunkID("ecs/create_instance.md", "# Creating an Instance\n\nSome content", 0)
	id2 := ChunkID("ecs/create_instance.md", "# Creating an Instance\n\nSome content", 0)
	assert.Equal(t, id1, id2)
}

func TestChunkID_Format(t *testing.T) {
	id := ChunkID("vpc/subnets.md", "some chunk content", 3)
	parts := strings.Split(id, "_")
	assert.Len(t, parts, 4)
	assert.Equal(t, "chunk", parts[0])
	assert.Len(t, parts[1], 8)
	assert.Len(t, parts[2], 8)
	assert.Equal(t, "3", parts[3])
}

func TestChunkID_DistinguishesInputs(t *testing.T) {
	base := ChunkID("ecs/a.md", "content", 0)

	assert.NotEqual(t, base, ChunkID("ecs/b.md", "content", 0), "different path")
	assert.NotEqual(t, base, ChunkID("ecs/a.md", "other content", 0), "different content")
	assert.NotEqual(t, base, ChunkID("ecs/a.md", "content", 1), "different index")
}

func TestChunkID_LongContentUsesPrefix(t *testing.T) {
	prefix := strings.Repeat("a", 100)
	id1 := ChunkID("obs/x.md", prefix+"tail one", 0)
	id2 := ChunkID("obs/x.md", prefix+"completely different tail", 0)

	// Only the first 100 bytes of content participate in the hash, so the
	// sequence index is what keeps sibling chunks distinct.
	assert.Equal(t, id1, id2)
}
