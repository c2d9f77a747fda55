package auth

import "strings"

// filterOpts implements the Filter-opts helper contract (spec.md §4.3):
// given a sep-separated string of key[=value] items, emit the members
// of keys (include mode) or the non-members (exclude mode), joined by
// "&", preserving the original order. A key matches up to the first
// "=" or sep.
func filterOpts(input string, sep byte, keys map[string]bool, include bool) string {
	var out []string
	for _, item := range splitByte(input, sep) {
		if item == "" {
			continue
		}
		key := item
		if i := strings.IndexByte(item, '='); i >= 0 {
			key = item[:i]
		}
		if keys[key] == include {
			out = append(out, item)
		}
	}
	return strings.Join(out, "&")
}

func splitByte(s string, sep byte) []string {
	return strings.Split(s, string(sep))
}

// extractValue pulls the value of "key=" out of a sep-separated blob,
// returning "" if absent. Used for ",chal_msg=...," style extraction.
func extractValue(input string, sep byte, key string) string {
	for _, item := range splitByte(input, sep) {
		prefix := key + "="
		if strings.HasPrefix(item, prefix) {
			return item[len(prefix):]
		}
	}
	return ""
}
