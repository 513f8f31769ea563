package listing

import (
	"bytes"
	"encoding/json"
)

// ParseImageCollection decodes a JSON array of URLs. Anything that is not a
// JSON array of strings yields an empty slice.
func ParseImageCollection(cell string) []string {
	if cell == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(cell), &urls); err != nil || urls == nil {
		return []string{}
	}
	return urls
}

// FormatImageCollection encodes urls as a JSON array. A nil slice encodes as [].
// HTML escaping is off so query strings stay readable in the sheet.
func FormatImageCollection(urls []string) string {
	if urls == nil {
		urls = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(urls); err != nil {
		return "[]"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
