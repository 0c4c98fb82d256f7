// Package highlight renders captured JSON for terminals and HTML pages.
package highlight

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/tidwall/pretty"
)

const (
	terminalStyle = "monokai"
	htmlStyle     = "github"
)

var htmlFormatter = chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(2))

// PrettyJSON marshals v and indents it two spaces per level.
func PrettyJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(pretty.Pretty(data)), "\n")
}

// Terminal applies terminal256 highlighting to a JSON document.
func Terminal(source string) string {
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return render(source, terminalStyle, formatter)
}

// HTML highlights a JSON document as a <pre> block using CSS classes.
// The class definitions come from CSS.
func HTML(source string) string {
	return render(source, htmlStyle, htmlFormatter)
}

// CSS returns the stylesheet for HTML output.
func CSS() string {
	var buf bytes.Buffer
	if err := htmlFormatter.WriteCSS(&buf, style(htmlStyle)); err != nil {
		return ""
	}
	return buf.String()
}

func render(source, styleName string, formatter chroma.Formatter) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style(styleName), iterator); err != nil {
		return source
	}
	return buf.String()
}

func style(name string) *chroma.Style {
	s := chromastyles.Get(name)
	if s == nil {
		s = chromastyles.Fallback
	}
	return s
}
