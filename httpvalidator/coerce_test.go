package httpvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"empty", "", map[string]string{}},
		{"single pair", "title=Dune", map[string]string{"title": "Dune"}},
		{"leading question mark", "?title=Dune", map[string]string{"title": "Dune"}},
		{"last duplicate wins", "a=1&a=2", map[string]string{"a": "2"}},
		{"blank values dropped", "a=&b=2", map[string]string{"b": "2"}},
		{"pairs without equals dropped", "flag&b=2", map[string]string{"b": "2"}},
		{"split on first equals", "expr=a=b", map[string]string{"expr": "a=b"}},
		{"plus is space", "title=the+dune", map[string]string{"title": "the dune"}},
		{"percent escapes", "title=caf%C3%A9&k%20ey=v", map[string]string{"title": "café", "k ey": "v"}},
		{"malformed escapes kept", "p=100%&q=%zz", map[string]string{"p": "100%", "q": "%zz"}},
		{"empty segments skipped", "&&a=1&", map[string]string{"a": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.raw))
		})
	}
}

func TestCoerceQuery(t *testing.T) {
	got := CoerceQuery(map[string]string{
		"isbn":     "1234",
		"name":     "bob",
		"zero":     "0007",
		"negative": "-1",
		"decimal":  "1.5",
		"spaced":   " 12",
		"huge":     "99999999999999999999",
		"arabic":   "١٢٣",
	})

	assert.Equal(t, map[string]any{
		"isbn":     int64(1234),
		"name":     "bob",
		"zero":     int64(7),
		"negative": "-1",
		"decimal":  "1.5",
		"spaced":   " 12",
		"huge":     "99999999999999999999",
		"arabic":   "١٢٣",
	}, got)
}

func TestCoerceQueryEmpty(t *testing.T) {
	assert.Empty(t, CoerceQuery(nil))
	assert.Equal(t, map[string]any{"k": ""}, CoerceQuery(map[string]string{"k": ""}))
}
