package highlight

import (
	"strings"
	"testing"
)

func TestPrettyJSON(t *testing.T) {
	got := PrettyJSON(map[string]any{"b": 1, "a": "x"})
	want := "{\n  \"a\": \"x\",\n  \"b\": 1\n}"
	if got != want {
		t.Errorf("PrettyJSON() = %q, want %q", got, want)
	}
}

func TestTerminalAddsEscapes(t *testing.T) {
	out := Terminal(`{"q": "hello"}`)
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Error("highlighted output lost the content")
	}
}

func TestHTMLUsesClasses(t *testing.T) {
	out := HTML(`{"q": "<script>"}`)
	if !strings.Contains(out, "<pre") {
		t.Errorf("expected a <pre> block, got %q", out)
	}
	if !strings.Contains(out, "class=") {
		t.Error("expected class attributes")
	}
	if strings.Contains(out, "<script>") {
		t.Error("content must be escaped")
	}
}

func TestCSS(t *testing.T) {
	if css := CSS(); !strings.Contains(css, ".chroma") {
		t.Errorf("CSS() missing .chroma rules: %q", css)
	}
}
