package utils

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// blockTags end a line when rendering markup as terminal text.
var blockTags = []string{"p", "div", "tr", "br", "li", "h1", "h2", "h3", "table"}

// HTMLText renders an HTML fragment as a single line of text. Entities are
// decoded and whitespace collapsed.
func HTMLText(content string) string {
	return strings.Join(HTMLLines(content), " ")
}

func stripHTMLTagsSimple(content []byte) string {
	var result strings.Builder
	inTag := false

	for _, char := range content {
		if char == '<' {
			inTag = true
		} else if char == '>' {
			inTag = false
		} else if !inTag {
			result.WriteByte(char)
		}
	}

	return strings.TrimSpace(result.String())
}

// HTMLLines renders an HTML fragment as text lines, one per block element.
// Empty lines are dropped.
func HTMLLines(content string) []string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return []string{stripHTMLTagsSimple([]byte(content))}
	}

	var lines []string
	var cur strings.Builder
	flush := func() {
		line := strings.Join(strings.Fields(cur.String()), " ")
		if line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if n.Data == "td" || n.Data == "th" {
				cur.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && slices.Contains(blockTags, n.Data) {
			flush()
		}
	}
	walk(doc)
	flush()
	return lines
}
