package morse

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"unicode"
)

// Converter encodes and decodes text with the key table of its current format.
// It is safe for concurrent use; SetFormat swaps the whole table at once.
type Converter struct {
	table atomic.Pointer[KeyTable]
}

// NewConverter returns a converter for f.
func NewConverter(f Format) (*Converter, error) {
	c := &Converter{}
	if err := c.SetFormat(f); err != nil {
		return nil, err
	}
	return c, nil
}

// SetFormat replaces the format and rebuilds the key table.
func (c *Converter) SetFormat(f Format) error {
	if err := f.Validate(); err != nil {
		return err
	}
	c.table.Store(BuildKeyTable(f))
	return nil
}

// Format returns the active format.
func (c *Converter) Format() Format {
	return c.table.Load().Format()
}

// KeyTable returns the active key table.
func (c *Converter) KeyTable() *KeyTable {
	return c.table.Load()
}

// Encode converts text to Morse. Characters outside the alphabet are skipped.
func (c *Converter) Encode(text string) string {
	table := c.table.Load()
	var b strings.Builder
	for _, r := range text {
		code, ok := table.Code(unicode.ToLower(r))
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(code)
	}
	return b.String()
}

// Decode converts Morse to text. Tokens without a matching code are dropped.
func (c *Converter) Decode(morse string) string {
	table := c.table.Load()
	var b strings.Builder
	for _, token := range strings.Fields(morse) {
		if ch, ok := table.Char(token); ok {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// EncodeFile encodes the whole content of the file at path.
func (c *Converter) EncodeFile(path string) (string, error) {
	data, err := readSource(path)
	if err != nil {
		return "", err
	}
	return c.Encode(data), nil
}

// DecodeFile decodes the whole content of the file at path.
func (c *Converter) DecodeFile(path string) (string, error) {
	data, err := readSource(path)
	if err != nil {
		return "", err
	}
	return c.Decode(data), nil
}

// FromDefault re-codes text written in DefaultFormat into the active format.
func (c *Converter) FromDefault(morse string) string {
	return SwitchFormat(morse, DefaultFormat, c.Format())
}

// ToDefault re-codes text written in the active format into DefaultFormat.
func (c *Converter) ToDefault(morse string) string {
	return SwitchFormat(morse, c.Format(), DefaultFormat)
}

// SwitchTo re-codes text written in from into the active format.
func (c *Converter) SwitchTo(morse string, from Format) string {
	return SwitchFormat(morse, from, c.Format())
}

// SwitchFrom re-codes text written in the active format into to.
func (c *Converter) SwitchFrom(morse string, to Format) string {
	return SwitchFormat(morse, c.Format(), to)
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
