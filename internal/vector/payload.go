package vector

import "fmt"

// Payload field names vary by writer generation. Candidates are tried in
// priority order; the first present key wins.
var (
	textFields   = []string{"data", "memory", "text"}
	sourceFields = []string{"source_app", "runId"}
)

// MemoryText extracts the memory content from a point payload, tolerating
// all known schema variants. When no candidate field is present the content
// degrades to the literal "unknown" instead of failing.
func MemoryText(payload map[string]any) string {
	return firstField(payload, textFields)
}

// SourceTag extracts the provenance tag from a point payload.
func SourceTag(payload map[string]any) string {
	return firstField(payload, sourceFields)
}

func firstField(payload map[string]any, candidates []string) string {
	for _, key := range candidates {
		v, ok := payload[key]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return "unknown"
}
