package wikinode

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// A lead long enough to clear the default floor.
var seoul = "'''서울특별시'''(서울特別市)는 대한민국의 수도이자 최대 도시이다." +
	"<ref>통계청, 2020</ref> 한반도 중서부에 위치하며, 한강이 도시를 가로질러 흐른다. " +
	"[[파일:Seoul skyline.jpg|섬네일|서울의 스카이라인]]" +
	"조선 왕조의 수도로 정해진 이래 600년 넘게 한국의 정치, 경제, 사회, 문화의 중심지 역할을 해 왔다."

func TestBuildAccepted(t *testing.T) {
	p := &Page{
		Title:     "서울특별시",
		Namespace: "0",
		Text:      "{{Infobox 도시\n| 이름 = 서울\n}}\n" + seoul + "\n== 역사 ==\n옛날 이야기.",
	}
	n, r := Build(p, DefaultOptions())
	if r != Accepted {
		t.Fatalf("Expected page accepted, got %v", r)
	}
	if n.Title != "서울특별시" {
		t.Errorf("Unexpected title %q", n.Title)
	}
	for _, s := range []string{"<ref>", "통계청", "파일:", "섬네일", "역사", "Infobox"} {
		if strings.Contains(n.Content, s) {
			t.Errorf("Content still has %q: %q", s, n.Content)
		}
	}
	if !strings.HasPrefix(n.Content, "'''서울특별시'''") {
		t.Errorf("Unexpected content start: %q", n.Content)
	}
}

func TestBuildRejections(t *testing.T) {
	long := seoul
	tests := []struct {
		name string
		page Page
		exp  Reason
	}{
		{"talk page", Page{Title: "토론:서울", Namespace: "1", Text: long}, WrongNamespace},
		{"template", Page{Title: "틀:서울", Namespace: "10", Text: long}, WrongNamespace},
		{"no title", Page{Namespace: "0", Text: long}, EmptyTitle},
		{"redirect", Page{Title: "서울", Namespace: "0", Text: "#REDIRECT [[서울특별시]]"}, Redirect},
		{"korean redirect", Page{Title: "서울", Namespace: "0", Text: "  #넘겨주기 [[서울특별시]]"}, Redirect},
		{"redirect element", Page{Title: "서울", Namespace: "0", Text: long, Redirect: "서울특별시"}, Redirect},
		{"disambiguation title", Page{Title: "서울 (동음이의)", Namespace: "0", Text: long}, Disambiguation},
		{"disambiguation template", Page{Title: "서울", Namespace: "0", Text: long + "\n{{동음이의}}"}, Disambiguation},
		{"no lead", Page{Title: "서울", Namespace: "0", Text: "{{Infobox}}\n== 역사 ==\n" + long}, EmptyLead},
		{"too short", Page{Title: "서울", Namespace: "0", Text: "서울은 도시이다."}, TooShort},
	}

	for _, test := range tests {
		if _, r := Build(&test.page, DefaultOptions()); r != test.exp {
			t.Errorf("%v: expected %v, got %v", test.name, test.exp, r)
		}
	}
}

func TestBuildFloorIsIndependent(t *testing.T) {
	p := &Page{
		Title:     "Foo",
		Namespace: "0",
		Text:      "Intro sentence here. More text.\n==History==\nOld stuff",
	}

	if _, r := Build(p, DefaultOptions()); r != TooShort {
		t.Fatalf("Expected the default floor to reject, got %v", r)
	}

	opts := DefaultOptions()
	opts.MinContent = 10
	n, r := Build(p, opts)
	if r != Accepted {
		t.Fatalf("Expected a lowered floor to accept, got %v", r)
	}
	if n.Content != "Intro sentence here. More text." {
		t.Errorf("Unexpected content %q", n.Content)
	}
}

func TestBuildMaxLength(t *testing.T) {
	p := &Page{
		Title:     "긴 문서",
		Namespace: "0",
		Text:      strings.Repeat("이것은 아주 긴 문장이다. ", 400),
	}
	n, r := Build(p, DefaultOptions())
	if r != Accepted {
		t.Fatalf("Expected accepted, got %v", r)
	}
	if c := utf8.RuneCountInString(n.Content); c > 1500 || c < 500 {
		t.Errorf("Content of %v code points outside the window", c)
	}
	if !strings.HasSuffix(n.Content, ".") {
		t.Errorf("Expected a sentence ending, got %q", n.Content[len(n.Content)-20:])
	}
}

func TestBuildNFC(t *testing.T) {
	// U+D55C as conjoining jamo.
	decomposed := "\u1112\u1161\u11ab"
	p := &Page{
		Title:     decomposed,
		Namespace: "0",
		Text:      strings.Repeat(decomposed, 120),
	}

	opts := DefaultOptions()
	n, r := Build(p, opts)
	if r != Accepted {
		t.Fatalf("Expected accepted, got %v", r)
	}
	if n.Title != "\ud55c" || utf8.RuneCountInString(n.Content) != 120 {
		t.Errorf("Expected composed output, got %q / %v code points",
			n.Title, utf8.RuneCountInString(n.Content))
	}

	opts.NFC = false
	opts.MinContent = 300
	if _, r := Build(p, opts); r != Accepted {
		t.Errorf("Without NFC each jamo counts, expected accepted, got %v", r)
	}
}

func TestBuildZeroOptions(t *testing.T) {
	p := &Page{
		Title:     "긴 문서",
		Namespace: "0",
		Text:      strings.Repeat("이것은 아주 긴 문장이다. ", 400),
	}
	n, r := Build(p, Options{})
	if r != Accepted {
		t.Fatalf("Expected accepted, got %v", r)
	}
	want, _ := Build(p, DefaultOptions())
	if n != want {
		t.Errorf("Zero options built %q, want %q", n.Content, want.Content)
	}

	short := &Page{Title: "Foo", Namespace: "0", Text: "Tiny."}
	if _, r := Build(short, Options{}); r != TooShort {
		t.Errorf("Expected the default floor with zero options, got %v", r)
	}
}
