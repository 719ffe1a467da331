package morse

// KeyTable maps characters to codes for one format, with the reverse lookup
// built alongside. It is never modified after BuildKeyTable returns.
type KeyTable struct {
	format  Format
	entries []Entry
	codes   map[rune]string
	chars   map[string]rune
}

// BuildKeyTable re-codes the canonical alphabet into f.
func BuildKeyTable(f Format) *KeyTable {
	t := &KeyTable{
		format:  f,
		entries: make([]Entry, 0, len(canonical)),
		codes:   make(map[rune]string, len(canonical)),
		chars:   make(map[string]rune, len(canonical)),
	}
	for _, e := range canonical {
		code := SwitchFormat(e.Code, DefaultFormat, f)
		t.entries = append(t.entries, Entry{Char: e.Char, Code: code})
		t.codes[e.Char] = code
		if _, ok := t.chars[code]; !ok {
			t.chars[code] = e.Char
		}
	}
	return t
}

// Format returns the format the table was built for.
func (t *KeyTable) Format() Format {
	return t.format
}

// Code returns the code for a lower-case character.
func (t *KeyTable) Code(ch rune) (string, bool) {
	code, ok := t.codes[ch]
	return code, ok
}

// Char returns the character a code decodes to.
func (t *KeyTable) Char(code string) (rune, bool) {
	ch, ok := t.chars[code]
	return ch, ok
}

// Entries lists the table in alphabet order.
func (t *KeyTable) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of characters in the table.
func (t *KeyTable) Len() int {
	return len(t.entries)
}
