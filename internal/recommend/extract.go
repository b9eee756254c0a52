package recommend

import (
	"encoding/json"
	"strings"
)

// ExtractJSONArray pulls a JSON array of objects out of free-form model
// output. It slices between the first '[' and the last ']' and attempts a
// strict decode of that slice; failing that, it decodes the whole text.
// Returns nil when neither yields a JSON array. Never panics or errors:
// the caller treats nil as "use the fallback".
func ExtractJSONArray(text string) []map[string]interface{} {
	if text == "" {
		return nil
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end != -1 && end >= start {
		if parsed := decodeArray(text[start : end+1]); parsed != nil {
			return parsed
		}
	}

	return decodeArray(text)
}

func decodeArray(s string) []map[string]interface{} {
	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return nil
	}
	return parsed
}

// SanitizeNumber keeps only digit and '.' characters, the cleanup applied to
// pseudo-prediction responses before parsing.
func SanitizeNumber(text string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)
}
