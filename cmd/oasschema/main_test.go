package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"valiate", "validate"},
		{"validat", "validate"},
		{"respone", "response"},
		{"reponse", "response"},
		{"route", "routes"},
		{"rotes", "routes"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"validatation", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("mcp", "mcp"))
	assert.Equal(t, 3, levenshtein("", "mcp"))
	assert.Equal(t, 1, levenshtein("routes", "route"))
	assert.Equal(t, 2, levenshtein("mpc", "mcp"))
}
