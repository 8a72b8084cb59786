package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	fullPath := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}

func pageText(topic string) string {
	return "# " + topic + "\n\n" + strings.Repeat("This page describes "+topic+". ", 5)
}

func TestNewLoader(t *testing.T) {
	t.Run("requires root", func(t *testing.T) {
		_, err := NewLoader("")
		assert.ErrorIs(t, err, ErrRootRequired)
	})
}

func TestListDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "vpc/subnets.md", pageText("subnets"))
	writeFile(t, root, "ecs/instances.md", pageText("instances"))
	writeFile(t, root, "ecs/billing.md", pageText("billing"))
	writeFile(t, root, "ecs/notes.txt", "not markdown")
	writeFile(t, root, "ecs/instances.json", `{"url":"https://example.com"}`)

	loader, err := NewLoader(root)
	require.NoError(t, err)

	paths, err := loader.ListDocuments()
	require.NoError(t, err)
	assert.Equal(t, []string{"ecs/billing.md", "ecs/instances.md", "vpc/subnets.md"}, paths)
}

func TestLoadDocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ecs/creating_instances.md", pageText("creating instances"))

	loader, err := NewLoader(root)
	require.NoError(t, err)

	doc, err := loader.LoadDocument("ecs/creating_instances.md")
	require.NoError(t, err)

	assert.Equal(t, "ecs/creating_instances.md", doc.Path)
	assert.Equal(t, "ecs", doc.Service)
	assert.Equal(t, "creating_instances", doc.SourceId)
	assert.Empty(t, doc.Url)
	assert.Empty(t, doc.DocType)
	assert.Contains(t, doc.Text, "# creating instances")
}

func TestLoadDocument_Sidecar(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "obs/buckets.md", pageText("buckets"))
	writeFile(t, root, "obs/buckets.json", `{"url":"https://docs.example.com/obs/buckets","type":"guide"}`)

	loader, err := NewLoader(root)
	require.NoError(t, err)

	doc, err := loader.LoadDocument("obs/buckets.md")
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.com/obs/buckets", doc.Url)
	assert.Equal(t, "guide", doc.DocType)
}

func TestLoadDocument_MalformedSidecarIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "obs/buckets.md", pageText("buckets"))
	writeFile(t, root, "obs/buckets.json", "{not json")

	loader, err := NewLoader(root)
	require.NoError(t, err)

	doc, err := loader.LoadDocument("obs/buckets.md")
	require.NoError(t, err)
	assert.Empty(t, doc.Url)
}

func TestLoadDocument_TooSmall(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ecs/stub.md", "see other page")

	loader, err := NewLoader(root)
	require.NoError(t, err)

	_, err = loader.LoadDocument("ecs/stub.md")
	assert.ErrorIs(t, err, ErrDocumentTooSmall)
}

func TestLoadDocument_Missing(t *testing.T) {
	loader, err := NewLoader(t.TempDir())
	require.NoError(t, err)

	_, err = loader.LoadDocument("ecs/absent.md")
	assert.Error(t, err)
}

func TestLoadDocument_RootLevelPage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "overview.md", pageText("platform overview"))

	loader, err := NewLoader(root)
	require.NoError(t, err)

	doc, err := loader.LoadDocument("overview.md")
	require.NoError(t, err)
	assert.Equal(t, "general", doc.Service)
	assert.Equal(t, "overview", doc.SourceId)
}
