package api

import (
	"encoding/json"
	"strings"
)

// ParseTranscript accepts either a JSON envelope or raw text. Proxies differ
// on whether they honour response_format=text.
func ParseTranscript(body []byte) string {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err == nil {
		switch v := decoded.(type) {
		case string:
			return strings.TrimSpace(v)
		case map[string]interface{}:
			for _, field := range []string{"text", "transcription", "result"} {
				if text, ok := v[field].(string); ok {
					return strings.TrimSpace(text)
				}
			}
		}
	}
	return strings.TrimSpace(string(body))
}
