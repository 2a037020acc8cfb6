// Package literatenav builds and reads literate navigation files: nested
// Markdown bullet lists whose items link to documentation pages.
package literatenav

import (
	"errors"
	"strings"
)

// ErrEmptyKey indicates Set was called without any navigation segments.
var ErrEmptyKey = errors.New("navigation key must have at least one segment")

// escapeChars are the leading characters that would otherwise change how a
// list item is parsed.
const escapeChars = "!#()*+-[\\]_`{}"

// Item is one entry of a flattened navigation tree.
type Item struct {
	Level    int
	Title    string
	Filename string // empty for section-only entries
}

type node struct {
	title    string
	filename string
	hasFile  bool
	children []*node
	index    map[string]*node
}

func (n *node) child(title string) *node {
	if c, ok := n.index[title]; ok {
		return c
	}
	if n.index == nil {
		n.index = make(map[string]*node)
	}
	c := &node{title: title}
	n.index[title] = c
	n.children = append(n.children, c)
	return c
}

// Nav is an insertion-ordered navigation tree. The zero value is ready to use.
type Nav struct {
	root node
}

// Set maps a key path to a page. Intermediate sections are created on first
// use and keep their position; setting an existing key replaces its page.
func (n *Nav) Set(keys []string, filename string) error {
	if len(keys) == 0 {
		return ErrEmptyKey
	}
	cur := &n.root
	for _, k := range keys {
		cur = cur.child(k)
	}
	cur.filename = filename
	cur.hasFile = true
	return nil
}

// Items returns the tree depth-first, parents before children.
func (n *Nav) Items() []Item {
	var items []Item
	var walk func(*node, int)
	walk = func(parent *node, level int) {
		for _, c := range parent.children {
			item := Item{Level: level, Title: c.title}
			if c.hasFile {
				item.Filename = c.filename
			}
			items = append(items, item)
			walk(c, level+1)
		}
	}
	walk(&n.root, 0)
	return items
}

// BuildLiterate renders the tree as a literate nav. Each item becomes one
// line indented four spaces per level.
func (n *Nav) BuildLiterate() string {
	return n.BuildLiterateIndented("")
}

// BuildLiterateIndented is BuildLiterate with every line prefixed by indentation.
func (n *Nav) BuildLiterateIndented(indentation string) string {
	var b strings.Builder
	for _, item := range n.Items() {
		b.WriteString(indentation)
		b.WriteString(strings.Repeat("    ", item.Level))
		b.WriteString("* ")
		b.WriteString(FormatItem(item))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatItem renders the text of one list item.
func FormatItem(item Item) string {
	line := EscapeTitle(item.Title)
	if item.Filename != "" {
		line = "[" + line + "](" + item.Filename + ")"
	}
	return line
}

// EscapeTitle backslash-escapes a title that starts with Markdown syntax.
func EscapeTitle(title string) string {
	if title != "" && strings.IndexByte(escapeChars, title[0]) >= 0 {
		return "\\" + title
	}
	return title
}
