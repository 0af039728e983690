package metadata

import (
	"fmt"
	"strings"
)

// Append adds a key=value marker line to free-form text unless the exact
// marker is already present.
func Append(text, key, value string) string {
	marker := fmt.Sprintf("%s=%s", key, value)
	if strings.Contains(text, marker) {
		return text
	}
	if text == "" {
		return marker
	}
	return strings.TrimSpace(text) + "\n" + marker
}

func Extract(text, key string) (string, bool) {
	prefix := key + "="
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix), true
		}
	}
	return "", false
}

// ExtractAll returns every value carried by repeated key=value lines, in
// order of appearance.
func ExtractAll(text, key string) []string {
	prefix := key + "="
	var values []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			values = append(values, strings.TrimPrefix(line, prefix))
		}
	}
	return values
}
