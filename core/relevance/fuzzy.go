package relevance

import (
	"strings"
	"unicode"
)

// MaxVariants bounds the single edit variants probed per term.
const MaxVariants = 3

// Variant is a single edit of a search term. Wildcard is the rune offset
// that matches any character, or -1.
type Variant struct {
	Runes    []rune
	Wildcard int
}

func (v Variant) String() string {
	r := append([]rune(nil), v.Runes...)
	if v.Wildcard >= 0 {
		r[v.Wildcard] = '?'
	}
	return string(r)
}

// LikePattern renders the variant as a LIKE pattern body. escape is applied
// to every literal rune, the wildcard becomes "_".
func (v Variant) LikePattern(escape func(string) string) string {
	var b strings.Builder
	for i, r := range v.Runes {
		if i == v.Wildcard {
			b.WriteByte('_')
			continue
		}
		b.WriteString(escape(string(r)))
	}
	return b.String()
}

// MatchIn reports whether the variant occurs in s.
func (v Variant) MatchIn(s string) bool {
	hay := []rune(s)
	n := len(v.Runes)
	for i := 0; i+n <= len(hay); i++ {
		ok := true
		for j := 0; j < n; j++ {
			if j != v.Wildcard && hay[i+j] != v.Runes[j] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Variants returns up to MaxVariants single edit variants of term: the first
// pair transposed, the last character as a wildcard and the last pair
// transposed. Variants identical to term or to each other are skipped.
// Terms shorter than MinFuzzyTermLength have no variants.
func Variants(term string) []Variant {
	r := []rune(strings.ToLower(term))
	n := len(r)
	if n < MinFuzzyTermLength {
		return nil
	}

	candidates := []Variant{
		{Runes: swapped(r, 0, 1), Wildcard: -1},
		{Runes: append([]rune(nil), r...), Wildcard: n - 1},
		{Runes: swapped(r, n-2, n-1), Wildcard: -1},
	}

	seen := map[string]struct{}{string(r): {}}
	var out []Variant
	for _, c := range candidates {
		key := c.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
		if len(out) == MaxVariants {
			break
		}
	}
	return out
}

func swapped(r []rune, i, j int) []rune {
	out := append([]rune(nil), r...)
	out[i], out[j] = out[j], out[i]
	return out
}

var soundexCodes = map[rune]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

// Soundex returns the four character American Soundex code of s, or "" when
// s has no ASCII letters. Non letters are ignored.
func Soundex(s string) string {
	var letters []rune
	for _, r := range strings.ToLower(s) {
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	code := []byte{byte(unicode.ToUpper(letters[0]))}
	last := soundexCodes[letters[0]]
	for _, r := range letters[1:] {
		if len(code) == 4 {
			break
		}
		c, ok := soundexCodes[r]
		switch {
		case ok && c != last:
			code = append(code, c)
			last = c
		case !ok && r != 'h' && r != 'w':
			// vowels separate equal codes, h and w do not
			last = 0
		}
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}
