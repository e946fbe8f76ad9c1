package capture

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment holds the fields scraped from one rendered journal entry.
type Fragment struct {
	ID       int64
	Classes  []string
	DateLine string // text of .journaldate, "" when the group omits it
	Text     string // inner markup of .journaltext
	HasText  bool
	Mouse    string // data-mouse-type attribute
	Image    string // inner markup of .journalimage
}

// ParseFragment scrapes a rendered journal entry fragment. Returns nil
// when the markup is not a journal entry (no element, no numeric
// data-entry-id) — many things the feed delivers are not entries, so this
// is a normal outcome, not an error. Malformed markup never fails: the
// parser recovers the way a browser would.
func ParseFragment(markup string) *Fragment {
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext())
	if err != nil {
		return nil
	}

	root := firstElement(nodes)
	if root == nil {
		return nil
	}

	id, err := strconv.ParseInt(attr(root, "data-entry-id"), 10, 64)
	if err != nil || id == 0 {
		return nil
	}

	frag := &Fragment{
		ID:      id,
		Classes: strings.Fields(attr(root, "class")),
		Mouse:   attr(root, "data-mouse-type"),
	}

	if dateEl := findByClass(root, "journaldate"); dateEl != nil {
		frag.DateLine = strings.TrimSpace(nodeText(dateEl))
	}
	if textEl := findByClass(root, "journaltext"); textEl != nil {
		frag.Text = innerHTML(textEl)
		frag.HasText = true
	}
	if imageEl := findByClass(root, "journalimage"); imageEl != nil {
		frag.Image = innerHTML(imageEl)
	}

	return frag
}

// bodyContext returns a fresh body node for html.ParseFragment. The
// fragments we see are div soup, so body is the right insertion context.
func bodyContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
}

func firstElement(nodes []*html.Node) *html.Node {
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findByClass returns the first descendant carrying the class, depth-first.
func findByClass(n *html.Node, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasClass(c, class) {
			return c
		}
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// nodeText collects the concatenated text content of a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// innerHTML renders the children of a node back to markup.
func innerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Render only fails on unrenderable node types, which a parsed
		// tree does not contain.
		_ = html.Render(&b, c)
	}
	return b.String()
}
