package cst

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineStarts(t *testing.T) {
	type tc struct {
		text string
		want []int
	}

	tests := map[string]tc{
		"empty":              {text: "", want: []int{0}},
		"single line":        {text: "abc", want: []int{0, 3}},
		"trailing newline":   {text: "abc\n", want: []int{0, 4}},
		"two lines":          {text: "ab\ncd", want: []int{0, 3, 5}},
		"blank line between": {text: "a\n\nb\n", want: []int{0, 2, 3, 5}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := LineStarts(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LineStarts(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestPositionOf(t *testing.T) {
	type tc struct {
		text   string
		offset int
		want   Position
	}

	tests := map[string]tc{
		"start":             {text: "ab\ncd", offset: 0, want: Position{Line: 1, Column: 1}},
		"second line":       {text: "ab\ncd", offset: 4, want: Position{Line: 2, Column: 2}},
		"end without eol":   {text: "ab", offset: 2, want: Position{Line: 1, Column: 3}},
		"end after newline": {text: "ab\n", offset: 3, want: Position{Line: 2, Column: 1}},
		"multibyte column":  {text: "あいx", offset: 6, want: Position{Line: 1, Column: 3}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := PositionOf("", tt.text, LineStarts(tt.text), tt.offset)
			if got != tt.want {
				t.Errorf("PositionOf(%q, %d) = %+v, want %+v", tt.text, tt.offset, got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{Start: 2, End: 10}
	if !outer.Contains(Span{Start: 2, End: 10}) {
		t.Error("span should contain itself")
	}
	if !outer.Contains(Span{Start: 4, End: 6}) {
		t.Error("span should contain an inner span")
	}
	if outer.Contains(Span{Start: 1, End: 6}) {
		t.Error("span should not contain a span starting before it")
	}
	if outer.Contains(Span{Start: 4, End: 11}) {
		t.Error("span should not contain a span ending after it")
	}
}

func TestKindString(t *testing.T) {
	if got := LetStmt.String(); got != "LetStmt" {
		t.Errorf("LetStmt.String() = %q", got)
	}
	if got := Kind(-3).String(); got != "Kind(-3)" {
		t.Errorf("Kind(-3).String() = %q", got)
	}
	if Kind(9999).Valid() {
		t.Error("Kind(9999) should not be valid")
	}
	for k := Invalid + 1; k < kindCount; k++ {
		if strings.HasPrefix(k.String(), "Kind(") {
			t.Errorf("kind %d has no name", int(k))
		}
	}
}

func TestDump(t *testing.T) {
	text := "f x"
	root := New(Application, 0, 3, New(Var, 0, 1), New(Var, 2, 3))
	var b strings.Builder
	if err := Dump(&b, NewTree("", text, root)); err != nil {
		t.Fatal(err)
	}
	want := "Application 0..3\n  Var 0..1 \"f\"\n  Var 2..3 \"x\"\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}
}
