package hosttree

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// IDAttr is the attribute carrying node ids in markup written with
// MarkupOptions.IDs.
const IDAttr = "data-vid"

// MarkupOptions configures markup rendering.
type MarkupOptions struct {
	// Pretty enables indented output, one node per line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// IDs adds a data-vid attribute to every element so a client can map
	// ops to the nodes it parsed.
	IDs bool
}

// WriteMarkup renders the children of n as HTML.
func WriteMarkup(w io.Writer, n *Node, opts MarkupOptions) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	var b strings.Builder
	for _, c := range n.children {
		writeNode(&b, c, 0, opts)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// HTML renders the whole tree compactly.
func (t *Tree) HTML() string {
	var b strings.Builder
	_ = WriteMarkup(&b, t.root, MarkupOptions{})
	return b.String()
}

// Checksum hashes the compact markup of the tree. Two trees with equal
// checksums render identically.
func (t *Tree) Checksum() uint64 {
	return xxhash.Sum64String(t.HTML())
}

func writeNode(b *strings.Builder, n *Node, depth int, opts MarkupOptions) {
	if opts.Pretty {
		b.WriteString(strings.Repeat(opts.Indent, depth))
	}

	switch n.typ {
	case TextNode:
		b.WriteString(escapeHTML(n.text))
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(strings.ReplaceAll(n.text, "--", "- -"))
		b.WriteString("-->")
	case ElementNode:
		writeElement(b, n, depth, opts)
		return
	}
	if opts.Pretty {
		b.WriteByte('\n')
	}
}

func writeElement(b *strings.Builder, n *Node, depth int, opts MarkupOptions) {
	b.WriteByte('<')
	b.WriteString(n.tag)
	if opts.IDs && n.id != 0 {
		b.WriteString(" " + IDAttr + `="`)
		b.WriteString(strconv.FormatUint(n.id, 10))
		b.WriteByte('"')
	}
	// Sort keys for deterministic output
	for _, key := range slices.Sorted(maps.Keys(n.attrs)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(n.attrs[key]))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if vdom.IsVoidElement(n.tag) {
		if opts.Pretty {
			b.WriteByte('\n')
		}
		return
	}

	block := opts.Pretty && len(n.children) > 0
	if block {
		b.WriteByte('\n')
	}
	for _, c := range n.children {
		writeNode(b, c, depth+1, opts)
	}
	if block {
		b.WriteString(strings.Repeat(opts.Indent, depth))
	}

	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
	if opts.Pretty {
		b.WriteByte('\n')
	}
}
