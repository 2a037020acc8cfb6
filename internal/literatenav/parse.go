package literatenav

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parse reads a literate nav back into flattened items.
//
// Only bullet list items are considered. The level is the list nesting depth,
// the title is the item's text with backslash escapes removed, and the
// filename is the destination of the item's link, if any.
func Parse(data []byte) []Item {
	root := goldmark.New().Parser().Parse(text.NewReader(data))

	var items []Item
	var visitList func(list *gmast.List, level int)
	visitList = func(list *gmast.List, level int) {
		for li := list.FirstChild(); li != nil; li = li.NextSibling() {
			if _, ok := li.(*gmast.ListItem); !ok {
				continue
			}
			item := Item{Level: level}
			var nested []*gmast.List
			for c := li.FirstChild(); c != nil; c = c.NextSibling() {
				if l, ok := c.(*gmast.List); ok {
					nested = append(nested, l)
					continue
				}
				if item.Title == "" && item.Filename == "" {
					item.Title, item.Filename = itemText(c, data)
				}
			}
			if item.Title != "" || item.Filename != "" {
				items = append(items, item)
			}
			for _, l := range nested {
				visitList(l, level+1)
			}
		}
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if list, ok := n.(*gmast.List); ok {
			visitList(list, 0)
		}
	}
	return items
}

// itemText extracts the title and link destination of a list item's block.
func itemText(block gmast.Node, source []byte) (title, filename string) {
	var b strings.Builder
	_ = gmast.Walk(block, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Link:
			if filename == "" {
				filename = string(node.Destination)
			}
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
		case *gmast.String:
			b.Write(node.Value)
		}
		return gmast.WalkContinue, nil
	})
	return unescape(strings.TrimSpace(b.String())), filename
}

// unescape drops the backslash in front of ASCII punctuation.
func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}
