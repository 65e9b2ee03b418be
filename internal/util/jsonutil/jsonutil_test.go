package jsonutil

import "testing"

type payload struct {
	Title string `json:"title"`
}

func TestUnmarshalFlexDirect(t *testing.T) {
	var p payload
	if err := UnmarshalFlex([]byte(`{"title":"direct"}`), &p); err != nil {
		t.Fatalf("UnmarshalFlex() error = %v", err)
	}
	if p.Title != "direct" {
		t.Fatalf("UnmarshalFlex() Title = %q", p.Title)
	}
}

func TestUnmarshalFlexStringEncoded(t *testing.T) {
	var p payload
	if err := UnmarshalFlex([]byte(`"{\"title\":\"wrapped\"}"`), &p); err != nil {
		t.Fatalf("UnmarshalFlex() error = %v", err)
	}
	if p.Title != "wrapped" {
		t.Fatalf("UnmarshalFlex() Title = %q", p.Title)
	}
}

func TestUnmarshalFlexInvalid(t *testing.T) {
	var p payload
	if err := UnmarshalFlex([]byte(`{nope`), &p); err == nil {
		t.Fatalf("UnmarshalFlex() accepted garbage")
	}
}

func TestNormalizeJSONUnescapesUnicode(t *testing.T) {
	out, err := NormalizeJSON([]byte(`{"title":"a \u003e b"}`))
	if err != nil {
		t.Fatalf("NormalizeJSON() error = %v", err)
	}
	if string(out) != `{"title":"a > b"}` {
		t.Fatalf("NormalizeJSON() = %s", out)
	}
}

func TestMarshalNoEscape(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"k": "<b>&</b>"})
	if err != nil {
		t.Fatalf("MarshalNoEscape() error = %v", err)
	}
	if string(out) != `{"k":"<b>&</b>"}` {
		t.Fatalf("MarshalNoEscape() = %s", out)
	}
}

func TestUnescapeUnicode(t *testing.T) {
	got, err := UnescapeUnicode(`a > b`)
	if err != nil {
		t.Fatalf("UnescapeUnicode() error = %v", err)
	}
	if got != "a > b" {
		t.Fatalf("UnescapeUnicode() = %q", got)
	}
}
