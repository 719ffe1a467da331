package morse

import "strings"

// CodeSet is the set of codes that are valid in a format.
type CodeSet map[string]struct{}

// ValidCodes re-codes the canonical alphabet into f, including the space code.
func ValidCodes(f Format) CodeSet {
	set := make(CodeSet, len(canonical))
	for _, e := range canonical {
		set[SwitchFormat(e.Code, DefaultFormat, f)] = struct{}{}
	}
	return set
}

// Contains reports whether code is in the set.
func (s CodeSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// IsValid reports whether every whitespace-separated token of text is a valid
// code in f. Empty text is valid.
func IsValid(text string, f Format) bool {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return true
	}
	valid := ValidCodes(f)
	for _, token := range tokens {
		if !valid.Contains(token) {
			return false
		}
	}
	return true
}

// InvalidTokens returns the tokens of text that are not valid codes in f, in order.
func InvalidTokens(text string, f Format) []string {
	valid := ValidCodes(f)
	var out []string
	for _, token := range strings.Fields(text) {
		if !valid.Contains(token) {
			out = append(out, token)
		}
	}
	return out
}
