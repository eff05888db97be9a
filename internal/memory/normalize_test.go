package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spacing and case", "  DBMS   Notes ", "dbms notes"},
		{"already normalized", "dbms notes", "dbms notes"},
		{"tabs and newlines", "What\tis\n\nDBMS?", "what is dbms?"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}

	assert.Equal(t, Normalize("  DBMS   Notes "), Normalize("dbms notes"))
}
