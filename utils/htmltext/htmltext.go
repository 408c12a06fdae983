// Package htmltext derives plain text, excerpts and reading time from the
// rich text bodies stored with news articles.
package htmltext

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// WordsPerMinute is the reading speed used by ReadTime
const WordsPerMinute = 200

var skipped = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
}

var blocks = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "section": true, "article": true,
}

// PlainText returns the visible text of an HTML fragment with whitespace
// collapsed. Content that does not parse as HTML is returned trimmed.
func PlainText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return strings.Join(strings.Fields(content), " ")
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipped[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blocks[n.Data] {
			b.WriteByte(' ')
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}

// ReadTime estimates reading minutes for an HTML body, never less than one
func ReadTime(content string) int {
	words := len(strings.Fields(PlainText(content)))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Excerpt returns at most max runes of the body's text, cut at a word
// boundary and suffixed with an ellipsis when shortened
func Excerpt(content string, max int) string {
	text := PlainText(content)
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
