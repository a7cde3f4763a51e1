// README: Arabic text canonicalization for location matching.
package arabic

import "strings"

// Normalize folds common Arabic letter variants so that admin-entered and
// model-emitted spellings of the same location compare equal:
//
//	أ إ آ → ا (alef with hamza above/below, alef madda → plain alef)
//	ى → ي   (alef maksura → ya)
//	ة → ه   (ta marbuta → ha)
//
// Runs of whitespace collapse to a single space and the result is trimmed.
// Normalize is idempotent.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	space := false
	for _, r := range text {
		switch r {
		case 'أ', 'إ', 'آ':
			r = 'ا'
		case 'ى':
			r = 'ي'
		case 'ة':
			r = 'ه'
		}
		if isSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x00A0:
		return true
	}
	return false
}
