package wikinode

import "testing"

func TestEligible(t *testing.T) {
	tests := []struct {
		page Page
		exp  bool
	}{
		{Page{Title: "Foo", Namespace: "0"}, true},
		{Page{Title: "Talk:Foo", Namespace: "1"}, false},
		{Page{Title: "Template:Foo", Namespace: "10"}, false},
		{Page{Title: "", Namespace: "0"}, false},
		{Page{Title: "Foo", Namespace: ""}, false},
	}

	for _, test := range tests {
		if got := Eligible(&test.page); got != test.exp {
			t.Errorf("Eligible(%#v) = %v, want %v", test.page, got, test.exp)
		}
	}
}

func TestIsRedirect(t *testing.T) {
	tests := []struct {
		text string
		exp  bool
	}{
		{"#REDIRECT [[Foo]]", true},
		{"#redirect [[Foo]]", true},
		{"  \n#Redirect [[Foo]]", true},
		{"#넘겨주기 [[지미 카터]]", true},
		{"Foo is a #REDIRECT", false},
		{"#RED", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsRedirect(test.text); got != test.exp {
			t.Errorf("IsRedirect(%q) = %v, want %v", test.text, got, test.exp)
		}
	}
}

func TestIsDisambiguation(t *testing.T) {
	tests := []struct {
		title, text string
		exp         bool
	}{
		{"카터 (동음이의)", "", true},
		{"카터", "'''카터'''는 다음을 가리킨다.\n{{동음이의}}", true},
		{"Mercury (disambiguation)", "", true},
		{"Mercury", "Mercury may refer to:\n{{Disambiguation}}", true},
		{"Mercury", "{{disambig}}", true},
		{"Mercury", "Mercury is a planet.", false},
	}

	for _, test := range tests {
		if got := IsDisambiguation(test.title, test.text); got != test.exp {
			t.Errorf("IsDisambiguation(%q, %q) = %v, want %v",
				test.title, test.text, got, test.exp)
		}
	}
}

func TestReasonString(t *testing.T) {
	if Accepted.String() != "accepted" || TooShort.String() != "too short" {
		t.Errorf("Unexpected reason names: %v, %v", Accepted, TooShort)
	}
	if Reason(99).String() != "unknown" {
		t.Errorf("Out of range reason should be unknown, got %v", Reason(99))
	}
}

func TestClassifyFollowsEligible(t *testing.T) {
	tests := []struct {
		page Page
		exp  Reason
	}{
		{Page{Title: "Foo", Namespace: "0", Text: "Foo is a thing."}, Accepted},
		{Page{Title: "Talk:Foo", Namespace: "1"}, WrongNamespace},
		{Page{Title: "Foo", Namespace: ""}, WrongNamespace},
		{Page{Title: "", Namespace: "0"}, EmptyTitle},
		{Page{Title: "Foo", Namespace: "0", Text: "#REDIRECT [[Bar]]"}, Redirect},
		{Page{Title: "Foo", Namespace: "0", Redirect: "Bar"}, Redirect},
		{Page{Title: "Foo (disambiguation)", Namespace: "0"}, Disambiguation},
	}

	for _, test := range tests {
		got := classify(&test.page)
		if got != test.exp {
			t.Errorf("classify(%#v) = %v, want %v", test.page, got, test.exp)
		}
		if (got != WrongNamespace && got != EmptyTitle) != Eligible(&test.page) {
			t.Errorf("classify(%#v) = %v disagrees with Eligible", test.page, got)
		}
	}
}
