// internal/app/system/slugify/slugify.go
package slugify

import "strings"

// Make derives a URL-safe slug from a title: lowercase, spaces and runs of
// punctuation collapsed to single hyphens, everything else stripped.
// Slugs are deterministic and not unique; a job is addressed by id+slug.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
