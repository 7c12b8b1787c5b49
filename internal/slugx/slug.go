// Package slugx derives URL-safe slugs for posts. A random suffix keeps
// slugs unique even when two authors pick the same title concurrently.
package slugx

import (
	"strings"
	"unicode"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/google/uuid"
)

const suffixLen = 8

// Make returns a lowercase, hyphen-separated slug derived from title with a
// random suffix appended, e.g. "my first post" -> "my-first-post-1a2b3c4d".
func Make(title string) string {
	base := normalize(title)
	suffix, err := common.MakeRandHexString(suffixLen / 2)
	if err != nil {
		suffix = strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
	}
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func normalize(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
