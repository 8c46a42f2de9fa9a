package web

import (
	"html/template"
	"strings"
	"unicode"
)

// Highlight escapes text and wraps every case-insensitive occurrence of
// query in <mark>.
func Highlight(text, query string) template.HTML {
	query = strings.TrimSpace(query)
	if query == "" {
		return template.HTML(template.HTMLEscapeString(text))
	}

	src := []rune(text)
	needle := foldRunes([]rune(query))
	hay := foldRunes(src)

	var b strings.Builder
	last := 0
	for i := 0; i+len(needle) <= len(hay); {
		if !runesEqual(hay[i:i+len(needle)], needle) {
			i++
			continue
		}
		b.WriteString(template.HTMLEscapeString(string(src[last:i])))
		b.WriteString("<mark>")
		b.WriteString(template.HTMLEscapeString(string(src[i : i+len(needle)])))
		b.WriteString("</mark>")
		i += len(needle)
		last = i
	}
	b.WriteString(template.HTMLEscapeString(string(src[last:])))
	return template.HTML(b.String())
}

// searchFieldSep separates the fields of a search key. The live-search
// script matches a query against each field on its own, like the server
// filters do.
const searchFieldSep = "\n"

// searchKey is the lowercased text the live-search script matches against.
func searchKey(fields ...string) string {
	return strings.ToLower(strings.Join(fields, searchFieldSep))
}

func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
