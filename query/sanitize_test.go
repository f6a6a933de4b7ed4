package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Software Developer", "Software Developer"},
		{"C++ / C# Developer", "C++ / C# Developer"},
		{"nurse's aide", "nurse's aide"},
		{`"} UNION { ?s ?p ?o }`, "UNION  s p o"},
		{"peinture \\u0022injection", "peinture u0022injection"},
		{"  spaced out  ", "spaced out"},
		{"<script>", "script"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeKeyword(tt.in), "input %q", tt.in)
	}
}

func TestValidURI(t *testing.T) {
	assert.True(t, ValidURI("http://data.europa.eu/esco/occupation/1"))
	assert.True(t, ValidURI("https://dechivo.com/occupation/software_developer"))
	assert.False(t, ValidURI("ftp://example.org/x"))
	assert.False(t, ValidURI("not a uri"))
	assert.False(t, ValidURI("http://example.org/a> . ?s ?p ?o . <http://x"))
	assert.False(t, ValidURI(""))
}
