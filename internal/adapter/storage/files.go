package storage

import (
	"encoding/json"
	"strings"
)

// encodeFilenames stores a file list as a JSON text array.
func encodeFilenames(names []string) string {
	if names == nil {
		names = []string{}
	}
	b, _ := json.Marshal(names)
	return string(b)
}

// decodeFilenames accepts an empty value, a JSON array or a legacy
// comma separated list.
func decodeFilenames(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}

	var names []string
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &names); err == nil {
			return names
		}
		s = strings.Trim(s, "[]")
	}

	names = []string{}
	for _, n := range strings.Split(s, ",") {
		n = strings.Trim(strings.TrimSpace(n), `"`)
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}
