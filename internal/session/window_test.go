package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func turns(n int) []Turn {
	out := make([]Turn, n)
	for i := range out {
		out[i] = Turn{Role: RoleUser, Content: string(rune('a' + i%26))}
	}
	return out
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name      string
		in        int
		limit     int
		wantLen   int
		wantFirst int
	}{
		{name: "under limit", in: 5, limit: 20, wantLen: 5, wantFirst: 0},
		{name: "at limit", in: 20, limit: 20, wantLen: 20, wantFirst: 0},
		{name: "one over", in: 21, limit: 20, wantLen: 20, wantFirst: 1},
		{name: "far over", in: 50, limit: 20, wantLen: 20, wantFirst: 30},
		{name: "empty", in: 0, limit: 20, wantLen: 0, wantFirst: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := turns(tt.in)
			got := Trim(in, tt.limit)
			assert.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, in[tt.wantFirst], got[0])
				assert.Equal(t, in[len(in)-1], got[len(got)-1])
			}
		})
	}
}

func TestTrimDoesNotAliasInput(t *testing.T) {
	in := turns(25)
	got := Trim(in, 20)
	got[0].Content = "mutated"
	assert.NotEqual(t, "mutated", in[5].Content)
}
