package htmlutil

import (
	"strings"

	"golang.org/x/net/html"
)

// FirstElement returns the first element with the given tag in document
// order, or nil.
func FirstElement(n *html.Node, tag string) *html.Node {
	var found *html.Node
	EachElement(n, tag, func(el *html.Node) bool {
		found = el
		return false
	})
	return found
}

// EachElement calls fn for every element with the given tag in document
// order. fn returns false to stop the walk.
func EachElement(n *html.Node, tag string, fn func(*html.Node) bool) {
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			if !fn(n) {
				return false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(n)
}

// NextElementSibling returns the next sibling that is an element node,
// skipping text and comment nodes.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// NextSiblingElement returns the next element sibling only if its tag
// matches, nil otherwise.
func NextSiblingElement(n *html.Node, tag string) *html.Node {
	s := NextElementSibling(n)
	if s == nil || s.Data != tag {
		return nil
	}
	return s
}

// Text returns the concatenated, trimmed text content of n.
func Text(n *html.Node) string {
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(sb.String())
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasClassContaining reports whether any class token of n contains the
// given marker as a substring (so "thumbnail" matches "img-thumbnail").
func HasClassContaining(n *html.Node, marker string) bool {
	for _, token := range strings.Fields(Attr(n, "class")) {
		if strings.Contains(token, marker) {
			return true
		}
	}
	return false
}
