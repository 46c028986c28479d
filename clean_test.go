package wikinode

import (
	"strings"
	"testing"
)

func TestCleanMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		exp  string
	}{
		{"file link",
			"Before [[File:pic.jpg|thumb|caption]] after.",
			"Before after."},
		{"korean file link",
			"[[파일:사진.png|섬네일|설명]]서울은 수도이다.",
			"서울은 수도이다."},
		{"image aliases",
			"a [[Image:x.png]] b [[그림:y.png|z]] c [[file:w.png]] d",
			"a b c d"},
		{"ref",
			`Claim.<ref name="a">Smith, <i>Book</i>, 1990</ref> Next.`,
			"Claim. Next."},
		{"self closing ref",
			`One.<ref name="a" /> Two.<ref>cite</ref> Three.`,
			"One. Two. Three."},
		{"multiline ref",
			"A.<ref>line one\nline two</ref> B.",
			"A. B."},
		{"references tag",
			"Text.<references/>",
			"Text."},
		{"comment",
			"Visible<!-- hidden\ncomment --> text.",
			"Visible text."},
		{"tags keep text",
			"<b>bold</b> and <span style=\"x\">span</span><br/>",
			"bold and span"},
		{"newlines",
			"one\n\n\n\n\ntwo",
			"one\n\ntwo"},
		{"spaces",
			"  lots    of   space  ",
			"lots of space"},
	}

	for _, test := range tests {
		if got := CleanMarkup(test.in); got != test.exp {
			t.Errorf("%v: CleanMarkup(%q) = %q, want %q", test.name, test.in, got, test.exp)
		}
	}
}

func TestCleanMarkupFileScenario(t *testing.T) {
	got := CleanMarkup("Some text [[File:pic.jpg|caption]] and more text.")
	for _, s := range []string{"File:", "pic.jpg", "caption"} {
		if strings.Contains(got, s) {
			t.Errorf("Expected %q removed, got %q", s, got)
		}
	}
}

func TestCleanMarkupIdempotent(t *testing.T) {
	in := "'''서울특별시'''는 대한민국의 수도이다.\n\nSecond paragraph, with [[links]] kept."
	once := CleanMarkup(in)
	if once != in {
		t.Fatalf("Clean text changed: %q", once)
	}
	if twice := CleanMarkup(once); twice != once {
		t.Errorf("Second clean changed %q to %q", once, twice)
	}
}
