package names

import "testing"

func TestFirstInitialBoundaries(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"   ":         "",
		"😀Matti":      "",
		"9Teemu":      "",
		"-Jean":       "",
		"Äkäslompolo": "Ä",
		"Jean-Pierre": "J",
		"O'Connor":    "O",
		"  mikko ":    "M",
		"Łukasz":      "Ł",
		"Žiga":        "Ž",
	}
	for input, want := range cases {
		if got := FirstInitial(input); got != want {
			t.Fatalf("FirstInitial(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestFirstInitialKeepsCombiningMarks(t *testing.T) {
	// "a" + combining diaeresis composes to "ä" under NFC.
	if got := FirstInitial("a\u0308ke"); got != "Ä" {
		t.Fatalf("expected composed initial, got %q", got)
	}
	// No precomposed form exists for q + diaeresis, so the mark stays attached.
	if got := FirstInitial("q\u0308rt"); got != "Q\u0308" {
		t.Fatalf("expected mark kept with its base, got %q", got)
	}
}

func TestFormatLastName(t *testing.T) {
	cases := map[string]string{
		"KOIVU":        "Koivu",
		"koivu":        "Koivu",
		"van der Berg": "Berg",
		"ÄSSÄLÄ":       "Ässälä",
		"  ":           "",
		"ŽIŽEK":        "Žižek",
	}
	for input, want := range cases {
		if got := FormatLastName(input); got != want {
			t.Fatalf("FormatLastName(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestPrefix(t *testing.T) {
	if got := Prefix("MIKAEL", 2); got != "Mi" {
		t.Fatalf("expected Mi, got %q", got)
	}
	if got := Prefix("Äkäslompolo", 3); got != "Äkä" {
		t.Fatalf("expected Äkä, got %q", got)
	}
	if got := Prefix("Jo", 3); got != "Jo" {
		t.Fatalf("expected short name kept whole, got %q", got)
	}
	if got := Prefix("9lives", 2); got != "" {
		t.Fatalf("expected no prefix for non-letter start, got %q", got)
	}
}
