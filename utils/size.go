package utils

import "strings"

// NormalizeSize normalizes size values to the catalog format
// "s/m" -> "S/M", " one size " -> "ONE SIZE", "s-m" -> "S/M"
func NormalizeSize(size string) string {
	sizeUpper := strings.ToUpper(strings.TrimSpace(size))
	return strings.ReplaceAll(sizeUpper, "-", "/")
}

// MatchSize returns the configured spelling of size if it is one of sizes
func MatchSize(size string, sizes []string) (string, bool) {
	normalized := NormalizeSize(size)
	if normalized == "" {
		return "", false
	}
	for _, s := range sizes {
		if NormalizeSize(s) == normalized {
			return s, true
		}
	}
	return "", false
}

// Slugify lowercases a label and joins words with hyphens ("New Drops & Favs" -> "new-drops-favs")
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
