package morse

// Entry pairs a character with its Morse code.
type Entry struct {
	Char rune
	Code string
}

// canonical codes are written in DefaultFormat. Order matters: when two
// characters share a code, the first one wins on decode.
var canonical = []Entry{
	{'a', ".-"},
	{'b', "-..."},
	{'c', "-.-."},
	{'d', "-.."},
	{'e', "."},
	{'f', "..-."},
	{'g', "--."},
	{'h', "...."},
	{'i', ".."},
	{'j', ".---"},
	{'k', "-.-"},
	{'l', ".-.."},
	{'m', "--"},
	{'n', "-."},
	{'o', "---"},
	{'p', ".--."},
	{'q', "--.-"},
	{'r', ".-."},
	{'s', "..."},
	{'t', "-"},
	{'u', "..-"},
	{'v', "...-"},
	{'w', ".--"},
	{'x', "-..-"},
	{'y', "-.--"},
	{'z', "--.."},
	{'0', "-----"},
	{'1', ".----"},
	{'2', "..---"},
	{'3', "...--"},
	{'4', "....-"},
	{'5', "....."},
	{'6', "-...."},
	{'7', "--..."},
	{'8', "---.."},
	{'9', "----."},
	{'.', ".-.-.-"},
	{',', "--..--"},
	{'?', "..--.."},
	{'/', "-..-."},
	{'(', "-.--."},
	{')', "-.--.-"},
	{':', "---..."},
	{'=', "-...-"},
	{'+', ".-.-."},
	{'-', "-....-"},
	{'@', ".--.-."},
	{'\'', ".----."},
	{'"', ".-..-."},
	{'\\', "-..-."},
	{' ', "/"},
	// Non-standard.
	{'!', "-.-.--"},
	{'&', ".-..."},
	{';', "-.-.-."},
	{'_', "..--.-"},
	{'$', "...-..-"},
}

// Alphabet returns the canonical table in DefaultFormat.
func Alphabet() []Entry {
	out := make([]Entry, len(canonical))
	copy(out, canonical)
	return out
}
