package mcpserver

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasschema/internal/testutil"
)

func TestSpecInput_DefaultDocument(t *testing.T) {
	def := testutil.Bookstore(t)

	doc, err := specInput{}.resolve(def)
	require.NoError(t, err)
	assert.Same(t, def, doc)

	_, err = specInput{}.resolve(nil)
	assert.ErrorIs(t, err, errNoDocument)
}

func TestSpecInput_ResolveFile(t *testing.T) {
	docCache.reset()
	path := testutil.WriteTempFile(t, "oas.json", testutil.BookstoreJSON)

	doc, err := specInput{File: path}.resolve(nil)
	require.NoError(t, err)
	assert.Len(t, doc.Paths, 5)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	docCache.reset()
	doc, err := specInput{Content: testutil.PrefixedYAML}.resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "/api", doc.BasePath)
}

func TestSpecInput_ResolveBothProvided(t *testing.T) {
	_, err := specInput{File: "foo.yaml", Content: "bar"}.resolve(nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at most one of file or content")
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	docCache.reset()
	_, err := specInput{File: "/nonexistent/path.yaml"}.resolve(nil)
	assert.Error(t, err)
}

func TestSpecInput_ContentTooLarge(t *testing.T) {
	old := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	t.Cleanup(func() { cfg.MaxInlineSize = old })

	_, err := specInput{Content: strings.Repeat("x", 17)}.resolve(nil)
	assert.ErrorContains(t, err, "exceeds maximum")
}

func TestDocCache_HitOnSameFile(t *testing.T) {
	docCache.reset()
	path := testutil.WriteTempFile(t, "oas.json", testutil.BookstoreJSON)

	first, err := specInput{File: path}.resolve(nil)
	require.NoError(t, err)
	second, err := specInput{File: path}.resolve(nil)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, docCache.size())
}

func TestDocCache_MissOnModifiedFile(t *testing.T) {
	docCache.reset()
	path := testutil.WriteTempFile(t, "oas.json", testutil.BookstoreJSON)

	first, err := specInput{File: path}.resolve(nil)
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := specInput{File: path}.resolve(nil)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestDocCache_ContentHash(t *testing.T) {
	docCache.reset()
	first, err := specInput{Content: testutil.BookstoreJSON}.resolve(nil)
	require.NoError(t, err)
	second, err := specInput{Content: testutil.BookstoreJSON}.resolve(nil)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDocCache_LRUEviction(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	doc := testutil.Bookstore(t)

	c.put("a", doc, time.Minute)
	time.Sleep(time.Millisecond)
	c.put("b", doc, time.Minute)
	time.Sleep(time.Millisecond)
	c.get("a")
	c.put("c", doc, time.Minute)

	assert.Equal(t, 2, c.size())
	assert.NotNil(t, c.get("a"))
	assert.Nil(t, c.get("b"))
	assert.NotNil(t, c.get("c"))
}

func TestDocCache_Expiry(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	c.put("a", testutil.Bookstore(t), -time.Second)
	c.sweep()
	assert.Equal(t, 0, c.size())
}
