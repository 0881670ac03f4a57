package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	tests := []struct {
		name     string
		response string
		wantName string
	}{
		{"clean json", `{"name":"alice","score":8}`, "alice"},
		{"fenced json", "```json\n{\"name\":\"bob\",\"score\":5}\n```", "bob"},
		{"fence without language tag", "```\n{\"name\":\"carol\",\"score\":6}\n```", "carol"},
		{"prose around json", "Sure! Here is the result:\n{\"name\":\"dave\",\"score\":7}\nLet me know.", "dave"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, DecodeJSON(tt.response, &p))
			assert.Equal(t, tt.wantName, p.Name)
		})
	}

	t.Run("plain prose fails", func(t *testing.T) {
		var p payload
		assert.Error(t, DecodeJSON("I cannot produce JSON for this.", &p))
	})
}

func TestDecodeJSON_Array(t *testing.T) {
	var items []map[string]interface{}
	err := DecodeJSON("```json\n[{\"rank\":1},{\"rank\":2}]\n```", &items)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
		found    bool
	}{
		{"bare digit", "7", 7, true},
		{"ten", "10", 10, true},
		{"score with prose", "I would rate this answer a 6 out of 10.", 6, true},
		{"fraction takes numerator", "10/10", 10, true},
		{"first match wins", "Score: 4. Could have been a 9.", 4, true},
		{"zero", "0", 0, true},
		{"two digit number outside range", "25", 0, false},
		{"no digits", "an excellent answer", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractScore(tt.response)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
