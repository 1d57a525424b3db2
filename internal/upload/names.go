package upload

import "strings"

// ParseName splits a display name into (first, last). A comma means
// "Last, First"; otherwise the first field is the given name and the
// remainder, which may be a multi-word surname, is the last name.
// Single-token names are all first name.
func ParseName(name string) (string, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ""
	}

	if strings.Contains(trimmed, ",") {
		parts := strings.SplitN(trimmed, ",", 2)
		last := strings.TrimSpace(parts[0])
		first := strings.TrimSpace(parts[1])
		return first, last
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
