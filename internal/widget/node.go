package widget

import "strings"

// Action names a popup transition a listener triggers.
type Action string

const (
	ActionOpen     Action = "open"
	ActionClose    Action = "close"
	ActionBackdrop Action = "backdrop"
)

// Listener binds a DOM event on a node to an Action.
type Listener struct {
	Event  string
	Action Action
}

type Attr struct {
	Key, Val string
}

// Node is a declarative description of one DOM node. A Node with an empty
// Tag is a text node.
type Node struct {
	Tag       string
	Attrs     []Attr
	Text      string
	Children  []*Node
	Listeners []Listener
}

func El(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

func Text(s string) *Node {
	return &Node{Text: s}
}

func A(key, val string) Attr {
	return Attr{Key: key, Val: val}
}

// Append adds children and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// On registers a listener and returns n for chaining.
func (n *Node) On(event string, action Action) *Node {
	n.Listeners = append(n.Listeners, Listener{Event: event, Action: action})
	return n
}

// Attr returns the value of key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (n *Node) HasClass(class string) bool {
	classes, _ := n.Attr("class")
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent concatenates all descendant text.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) {
		if c.Tag == "" {
			b.WriteString(c.Text)
		}
	})
	return b.String()
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node whose id attribute equals id.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) {
		if found != nil {
			return
		}
		if v, ok := c.Attr("id"); ok && v == id {
			found = c
		}
	})
	return found
}

// FindClass returns the first node carrying class.
func (n *Node) FindClass(class string) *Node {
	var found *Node
	n.Walk(func(c *Node) {
		if found == nil && c.HasClass(class) {
			found = c
		}
	})
	return found
}
