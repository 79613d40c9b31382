package widget

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// listenerAttrPrefix marks declared listeners in rendered markup; the client
// script binds every data-wa-on-<event> attribute to its action.
const listenerAttrPrefix = "data-wa-on-"

// Render writes the node tree as HTML.
func Render(w io.Writer, n *Node) error {
	return html.Render(w, toHTML(n))
}

// RenderString is Render into a string.
func RenderString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(n *Node) *html.Node {
	if n.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, l := range n.Listeners {
		out.Attr = append(out.Attr, html.Attribute{Key: listenerAttrPrefix + l.Event, Val: string(l.Action)})
	}
	if n.Text != "" {
		out.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		out.AppendChild(toHTML(c))
	}
	return out
}
