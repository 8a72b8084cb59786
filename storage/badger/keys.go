package badger

import "fmt"

// Key prefixes for different data types
const (
	chunkRecordPrefix = "chkrec"
	lexicalIndexKey   = "lexidx"
)

// makeChunkKey generates a key for a chunk by its content-derived id.
func makeChunkKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", chunkRecordPrefix, id))
}

// makeLexicalIndexKey generates the singleton key for the lexical index.
func makeLexicalIndexKey() []byte {
	return []byte(lexicalIndexKey)
}
