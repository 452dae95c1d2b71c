package vdom

// Host is the primitive surface of the host tree. The patcher only ever
// touches the host through these calls.
type Host interface {
	CreateElement(tag string) Node
	CreateTextNode(text string) Node
	CreateComment(text string) Node
	InsertBefore(parent, node, ref Node)
	RemoveChild(parent, node Node)
	AppendChild(parent, node Node)
	ParentNode(node Node) Node
	NextSibling(node Node) Node
	TagName(node Node) string
	SetTextContent(node Node, text string)
}

// AttrHost is implemented by hosts that support attributes.
type AttrHost interface {
	SetAttribute(node Node, key, value string)
	RemoveAttribute(node Node, key string)
}

// EventHost is implemented by hosts that deliver events.
type EventHost interface {
	AddEventListener(node Node, event string, fn func(ev *Event))
	RemoveEventListener(node Node, event string)
}

// countingHost records host calls in the patch metrics.
type countingHost struct {
	Host
	count func(op string)
}

func (h countingHost) CreateElement(tag string) Node {
	h.count("create_element")
	return h.Host.CreateElement(tag)
}

func (h countingHost) CreateTextNode(text string) Node {
	h.count("create_text")
	return h.Host.CreateTextNode(text)
}

func (h countingHost) CreateComment(text string) Node {
	h.count("create_comment")
	return h.Host.CreateComment(text)
}

func (h countingHost) InsertBefore(parent, node, ref Node) {
	h.count("insert_before")
	h.Host.InsertBefore(parent, node, ref)
}

func (h countingHost) RemoveChild(parent, node Node) {
	h.count("remove_child")
	h.Host.RemoveChild(parent, node)
}

func (h countingHost) AppendChild(parent, node Node) {
	h.count("append_child")
	h.Host.AppendChild(parent, node)
}

func (h countingHost) SetTextContent(node Node, text string) {
	h.count("set_text")
	h.Host.SetTextContent(node, text)
}
