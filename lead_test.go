package wikinode

import "testing"

func TestExtractLead(t *testing.T) {
	tests := []struct {
		name string
		in   string
		exp  string
	}{
		{"before heading",
			"Intro sentence here. More text.\n==History==\nOld stuff",
			"Intro sentence here. More text."},
		{"infobox",
			"{{Infobox person\n| name = Foo\n| born = 1900\n}}\n'''Foo''' was a man.",
			"'''Foo''' was a man."},
		{"paragraphs",
			"First paragraph.\n\n\n\nSecond paragraph.\n\n  \n\nThird.",
			"First paragraph.\n\nSecond paragraph.\n\nThird."},
		{"table rows",
			"{| class=\"wikitable\"\n\n| cell\n\nReal text.",
			"Real text."},
		{"only templates",
			"{{About|x}}\n{{Good article}}\n== Heading ==\nBody",
			""},
		{"empty", "", ""},
		{"nested templates leak",
			"{{a {{b}} c}}Text.",
			"c}}Text."},
	}

	for _, test := range tests {
		if got := ExtractLead(test.in); got != test.exp {
			t.Errorf("%v: ExtractLead(%q) = %q, want %q", test.name, test.in, got, test.exp)
		}
	}
}
