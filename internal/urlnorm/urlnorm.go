// Package urlnorm canonicalizes user-submitted URL strings.
package urlnorm

import "strings"

// Normalize converts a raw user-entered string into its canonical form: the
// string is trimmed, lower-cased in full (scheme, host and path alike), and
// prefixed with https:// when no scheme is present. The whole-string fold is a
// deliberate simplification over strict URL normalization.
func Normalize(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}
	return normalized
}

// NormalizeAll canonicalizes every entry and removes duplicates over the
// normalized forms, keeping the first occurrence's position.
func NormalizeAll(raws []string) []string {
	out := make([]string, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		canonical := Normalize(raw)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}
