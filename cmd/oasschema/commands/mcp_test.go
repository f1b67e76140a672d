package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMCPFlags(t *testing.T) {
	fs, flags := SetupMCPFlags()
	assert.False(t, flags.NoDocument)
	require.NoError(t, fs.Parse([]string{"-no-document"}))
	assert.True(t, flags.NoDocument)
}

func TestHandleMCP_InvalidArgs(t *testing.T) {
	assert.Error(t, HandleMCP([]string{"-file", "api.json", "-no-document"}))
	assert.Error(t, HandleMCP([]string{"extra"}))
	assert.NoError(t, HandleMCP([]string{"-help"}))
}

func TestMCPStore(t *testing.T) {
	t.Run("no document", func(t *testing.T) {
		store, err := mcpStore(&MCPFlags{NoDocument: true}, "")
		require.NoError(t, err)
		assert.Nil(t, store)
	})

	t.Run("explicit file", func(t *testing.T) {
		file := bookstoreFile(t)
		store, err := mcpStore(&MCPFlags{File: file}, "")
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.Equal(t, file, store.Path())
	})

	t.Run("missing default is tolerated", func(t *testing.T) {
		t.Setenv("OAS_FILE", "")
		t.Setenv("OAS_ROOT", t.TempDir())
		store, err := mcpStore(&MCPFlags{}, "")
		require.NoError(t, err)
		assert.Nil(t, store)
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		_, err := mcpStore(&MCPFlags{File: "does/not/exist.json"}, "")
		assert.Error(t, err)
	})

	t.Run("missing env file fails", func(t *testing.T) {
		t.Setenv("OAS_FILE", "does/not/exist.json")
		_, err := mcpStore(&MCPFlags{}, "does/not/exist.json")
		assert.Error(t, err)
	})
}
