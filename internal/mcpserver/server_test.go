package mcpserver

import (
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasschema/internal/testutil"
	"github.com/erraggy/oasschema/schemastore"
)

func newTestToolset(t *testing.T) *toolset {
	t.Helper()
	return &toolset{doc: testutil.Bookstore(t)}
}

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}
	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int
	}{
		{"first page", 0, 2, []int{0, 1}},
		{"middle page", 2, 2, []int{2, 3}},
		{"partial last page", 4, 2, []int{4}},
		{"offset beyond end", 5, 2, nil},
		{"negative offset", -1, 2, nil},
		{"default limit", 0, 0, items},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_MaxLimitCap(t *testing.T) {
	items := make([]int, 1500)
	got := paginate(items, 0, 1500)
	assert.Len(t, got, cfg.MaxLimit)
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error returns empty string", nil, ""},
		{"strips absolute path", fmt.Errorf("parse error in /home/user/secret/oas.json: bad"), "parse error in <path>: bad"},
		{"preserves non-path content", fmt.Errorf("validation error in query"), "validation error in query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestErrResult(t *testing.T) {
	res := errResult(fmt.Errorf("failed reading /tmp/x.json"))
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "failed reading <path>", res.Content[0].(*mcp.TextContent).Text)
}

func TestNewServer(t *testing.T) {
	store, err := schemastore.Open(schemastore.WithDocument(testutil.Bookstore(t)))
	require.NoError(t, err)
	assert.NotNil(t, newServer(store))
	assert.NotNil(t, newServer(nil))
}
