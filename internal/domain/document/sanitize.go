package document

import (
	"bytes"
	"encoding/json"
	"regexp"
)

// Null bytes and control characters, keeping \t, \n and \r.
var controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

func SanitizeString(value string) string {
	return controlChars.ReplaceAllString(value, "")
}

// SanitizeJSON strips control characters from every string in a JSON value,
// object keys included, and re-encodes it with two-space indentation.
// Numbers keep their literal form.
func SanitizeJSON(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sanitizeValue(value)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func sanitizeValue(value any) any {
	switch v := value.(type) {
	case string:
		return SanitizeString(v)
	case []any:
		for i := range v {
			v[i] = sanitizeValue(v[i])
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[SanitizeString(key)] = sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}
