package morse

import (
	"reflect"
	"testing"
)

func TestIsValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"... --- ...", true},
		{"...  ---  ..Z.", false},
		{"", true},
		{"   \n\t", true},
		{".- / -...", true},
		{"//", false},
		{".-.-.-.-.-", false},
	}
	for _, tc := range cases {
		if got := IsValid(tc.in, DefaultFormat); got != tc.want {
			t.Fatalf("IsValid(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsValidCustomFormat(t *testing.T) {
	f := Format{Long: 'N', Short: 'Y', Space: '_'}
	if !IsValid("YYY NNN YYY _", f) {
		t.Fatalf("expected custom format text to be valid")
	}
	if IsValid("... --- ...", f) {
		t.Fatalf("default symbols must not be valid in a custom format")
	}
}

func TestInvalidTokens(t *testing.T) {
	got := InvalidTokens("... X --- ..Z. ...", DefaultFormat)
	want := []string{"X", "..Z."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := InvalidTokens("... --- ...", DefaultFormat); len(got) != 0 {
		t.Fatalf("expected no invalid tokens, got %v", got)
	}
}

func TestRepairModes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		mode RepairMode
		want string
	}{
		{"remove letter", ".-X -...", RemoveIncorrectLetter, "-..."},
		{"remove key", ".-X", RemoveIncorrectKey, ".-"},
		{"remove key still invalid", ".-.-.-.-X", RemoveIncorrectKey, ""},
		{"remove key empty result", "XYZ", RemoveIncorrectKey, ""},
		{"short press", ".-X", ReplaceWithShortPress, ".-."},
		{"long press", ".-X", ReplaceWithLongPress, ".--"},
		{"long press invalid", "-----X", ReplaceWithLongPress, ""},
		{"valid kept", "... --- ...", ReplaceWithLongPress, "... --- ..."},
		{"whitespace normalized", "  ...\t---\n...  ", RemoveIncorrectLetter, "... --- ..."},
		{"empty", "", OrderedRepair, ""},
		{"ordered first wins", ".-X", OrderedRepair, ".-"},
		{"ordered falls through", "-----X", OrderedRepair, "-----"},
		{"ordered nothing works", ".-.-.-.-..X", OrderedRepair, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Repair(tc.in, tc.mode, DefaultFormat, nil); got != tc.want {
				t.Fatalf("Repair(%q, %s) = %q, want %q", tc.in, tc.mode, got, tc.want)
			}
		})
	}
}

func TestRepairOrderedUsesGivenOrder(t *testing.T) {
	order := NewRepairOrder(ReplaceWithLongPress, RemoveIncorrectKey)
	if got := Repair(".-X", OrderedRepair, DefaultFormat, order); got != ".--" {
		t.Fatalf("expected long press first, got %q", got)
	}
	order = NewRepairOrder(ReplaceWithShortPress)
	if got := Repair(".-X", OrderedRepair, DefaultFormat, order); got != ".-." {
		t.Fatalf("expected short press, got %q", got)
	}
	if got := Repair(".-X", OrderedRepair, DefaultFormat, NewRepairOrder()); got != "" {
		t.Fatalf("empty order must drop the token, got %q", got)
	}
}

func TestRepairOrderedTriesOriginalToken(t *testing.T) {
	// Stripping gives "----" (invalid). Chained, long press would see no
	// stray rune left; from the original token it yields "-----".
	order := NewRepairOrder(RemoveIncorrectKey, ReplaceWithLongPress)
	if got := Repair("----X", OrderedRepair, DefaultFormat, order); got != "-----" {
		t.Fatalf("expected long press repair, got %q", got)
	}
	order = NewRepairOrder(ReplaceWithShortPress, ReplaceWithLongPress)
	if got := Repair(".-X.-", OrderedRepair, DefaultFormat, order); got != "" {
		t.Fatalf("expected drop, got %q", got)
	}
}

func TestRepairCustomFormat(t *testing.T) {
	f := Format{Long: 'N', Short: 'Y', Space: '_'}
	if got := Repair("YN? _ YYY", RemoveIncorrectKey, f, nil); got != "YN _ YYY" {
		t.Fatalf("unexpected repair: %q", got)
	}
	if got := Repair("Y- NNN", ReplaceWithShortPress, f, nil); got != "YY NNN" {
		t.Fatalf("default symbols are stray in a custom format, got %q", got)
	}
}

func TestRepairDetailedCounts(t *testing.T) {
	res := RepairDetailed("... .-X ..Z.-.-.-. ---", RemoveIncorrectKey, DefaultFormat, nil)
	if res.Text != "... .- ---" {
		t.Fatalf("unexpected text: %q", res.Text)
	}
	if res.Kept != 2 || res.Repaired != 1 || res.Dropped != 1 {
		t.Fatalf("unexpected counts: %+v", res)
	}
}

func TestRepairIdempotent(t *testing.T) {
	inputs := []string{
		".-X -... ?? ...--.X / --",
		"... --- ...",
		"X Y Z",
		".-.-.-.-X.- -X- ..X",
	}
	for _, mode := range RepairModes() {
		for _, in := range inputs {
			once := Repair(in, mode, DefaultFormat, nil)
			twice := Repair(once, mode, DefaultFormat, nil)
			if once != twice {
				t.Fatalf("mode %s not idempotent on %q: %q then %q", mode, in, once, twice)
			}
			if !IsValid(once, DefaultFormat) {
				t.Fatalf("mode %s produced invalid output %q", mode, once)
			}
		}
	}
}

func TestNewRepairOrder(t *testing.T) {
	got := NewRepairOrder(ReplaceWithLongPress, RemoveIncorrectLetter, ReplaceWithLongPress, OrderedRepair, RemoveIncorrectKey)
	want := RepairOrder{ReplaceWithLongPress, RemoveIncorrectKey}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseRepairOrder(t *testing.T) {
	got, err := ParseRepairOrder("replace-with-long-press, remove-incorrect-key,,replace-with-long-press")
	if err != nil {
		t.Fatalf("ParseRepairOrder failed: %v", err)
	}
	if got.String() != "replace-with-long-press,remove-incorrect-key" {
		t.Fatalf("unexpected order: %s", got)
	}
	if _, err := ParseRepairOrder("remove-incorrect-key,bogus"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestParseRepairMode(t *testing.T) {
	for _, m := range RepairModes() {
		parsed, err := ParseRepairMode(m.String())
		if err != nil {
			t.Fatalf("ParseRepairMode(%q) failed: %v", m, err)
		}
		if parsed != m {
			t.Fatalf("expected %s, got %s", m, parsed)
		}
	}
	if _, err := ParseRepairMode("fix-everything"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
