package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryText_FieldPriority(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{"data wins over all", map[string]any{"data": "a", "memory": "b", "text": "c"}, "a"},
		{"memory wins over text", map[string]any{"memory": "b", "text": "c"}, "b"},
		{"text alone", map[string]any{"text": "c"}, "c"},
		{"none present", map[string]any{"other": "x"}, "unknown"},
		{"empty payload", map[string]any{}, "unknown"},
		{"non-string value rendered", map[string]any{"data": 42}, "42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MemoryText(tc.payload))
		})
	}
}

func TestSourceTag(t *testing.T) {
	assert.Equal(t, "openclaw", SourceTag(map[string]any{"source_app": "openclaw", "runId": "r1"}))
	assert.Equal(t, "r1", SourceTag(map[string]any{"runId": "r1"}))
	assert.Equal(t, "unknown", SourceTag(map[string]any{}))
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "abc-123", IDString("abc-123"))
	assert.Equal(t, "42", IDString(float64(42)))
	assert.Equal(t, "", IDString(nil))
}
