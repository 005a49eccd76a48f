// Package romaji implements component A: a static-table romaji→kana
// transducer with prefix/exact lookup and pending-tail composition,
// including the double-consonant (sokuon) and bare-"n" glottal rules
// spec.md §4.A calls out.
package romaji

import "strings"

// Tag classifies a romaji string against the rule table.
type Tag int

const (
	// None means the string cannot extend into any kana and is not one
	// itself; it should be flushed verbatim by the caller.
	None Tag = iota
	// Prefix means the string could still grow into a match but is not
	// itself a complete kana spelling.
	Prefix
	// Exact means the string is a complete kana spelling with no longer
	// match possible.
	Exact
	// ExactAndPrefix means the string is already a complete kana
	// spelling but a longer romaji sequence sharing this prefix also
	// exists (e.g. "n" is exact but "na" extends it).
	ExactAndPrefix
)

// Lookup classifies romaji against the static table, returning the kana
// rendering when tag is Exact or ExactAndPrefix.
func Lookup(r string) (tag Tag, kana string) {
	if r == "" {
		return None, ""
	}
	exact, isExact := table[r]
	isPrefix := false
	for key := range table {
		if len(key) > len(r) && strings.HasPrefix(key, r) {
			isPrefix = true
			break
		}
	}
	switch {
	case isExact && isPrefix:
		return ExactAndPrefix, exact
	case isExact:
		return Exact, exact
	case isPrefix:
		return Prefix, ""
	default:
		return None, ""
	}
}

// sokuonPrefix reports whether pending begins with a doubled consonant
// that is not itself a table entry (e.g. "kka", "ssha"): the first letter
// collapses into a small tsu and the remainder continues composing
// against the same consonant's row.
func sokuonPrefix(pending string) bool {
	if len(pending) < 2 {
		return false
	}
	a, b := pending[0], pending[1]
	if a != b || !isConsonant(a) {
		return false
	}
	if _, ok := table[pending]; ok {
		return false
	}
	return true
}

// Convert resolves pending against the table and appends the resulting
// kana to composed. A leading doubled consonant becomes っ; otherwise
// pending is looked up as a whole: a complete spelling is consumed, and
// a pending that is neither a spelling nor a prefix of one has its first
// rune flushed (a bare "n" as ん, anything else verbatim) before the rest
// is tried again. With force=false a residual true-prefix tail (or an
// exact spelling that a longer one could still extend) is left pending
// for more keystrokes; with force=true it is flushed as well. Pending is
// not split into several spellings: a pending holding more than one
// complete spelling (e.g. "kaki") is not a prefix of any entry, so its
// leading runes are copied verbatim until the remainder resolves ("kaki"
// gives "kaき"), rather than being converted syllable by syllable.
func Convert(composed, pending string, force bool) (newComposed, newPending string) {
	for {
		if pending == "" {
			return composed, pending
		}
		if sokuonPrefix(pending) {
			composed += "っ"
			pending = pending[1:]
			continue
		}
		tag, kana := Lookup(pending)
		switch tag {
		case Exact:
			composed += kana
			pending = ""
		case ExactAndPrefix:
			// A strictly longer match might still arrive; only commit
			// this exact spelling once forced or once no further
			// keystroke could extend it (caller drives that via force).
			if !force {
				return composed, pending
			}
			composed += kana
			pending = ""
		case Prefix:
			if !force {
				return composed, pending
			}
			// Forced with an incomplete prefix: flush what can be
			// salvaged one rune at a time, collapsing a trailing bare
			// "n" to ん per the glottal-collapse rule.
			composed, pending = flushForced(composed, pending)
		case None:
			// Not convertible at all: collapse a bare "n" followed by a
			// non-vowel/non-y consonant to ん per the glottal rule, or
			// else pass the first rune through verbatim, and keep trying
			// with the remainder so a single bad keystroke does not wedge
			// the whole pending tail.
			composed, pending = flushForced(composed, pending)
		}
	}
}

// flushForced handles a residual that Convert cannot resolve as a whole: a
// force=true residual that Lookup reports as Prefix, or any residual that
// Lookup reports as None. It moves the leading rune into composed: a bare
// "n" not followed by a vowel or "y" becomes ん (the glottal collapse
// rule); any other rune is copied verbatim.
func flushForced(composed, pending string) (string, string) {
	if strings.HasPrefix(pending, "n") && len(pending) >= 1 {
		if len(pending) == 1 || !startsVowelOrY(pending[1]) {
			return composed + "ん", pending[1:]
		}
	}
	r := []rune(pending)
	return composed + string(r[0]), string(r[1:])
}

func startsVowelOrY(b byte) bool {
	switch b {
	case 'a', 'i', 'u', 'e', 'o', 'y':
		return true
	default:
		return false
	}
}
