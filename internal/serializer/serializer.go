package serializer

import (
	"log"
	"strings"

	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
)

// Serialize converts a document node sequence into a single HTML string.
// Nodes are visited depth-first in document order and per-node fragments
// concatenate directly. The post-processing passes run once here; recursive
// descent below never re-applies them.
func Serialize(nodes []document.Node, reg *Registry, opts Options) string {
	w := &walker{reg: reg, opts: opts}

	out := w.serializeNodes(nodes).Markup()
	out = decodeIfNeeded(out)

	if opts.StripWhitespace {
		out = stripWhitespace(out)
	}
	if opts.StripDataAttributes {
		out = stripDataAttributes(out)
	}
	if opts.Sanitize {
		out = sanitizeHTML(out)
	}
	if opts.Minify {
		out = minifyHTML(out)
	}
	return out
}

// walker carries the registry and options through one serialization pass.
// It never mutates the node tree it visits.
type walker struct {
	reg  *Registry
	opts Options
}

func (w *walker) serializeNodes(nodes []document.Node) Fragment {
	var out strings.Builder
	for i := range nodes {
		out.WriteString(w.serializeNode(&nodes[i]).Markup())
	}
	return EncodedFragment(out.String())
}

func (w *walker) serializeNode(node *document.Node) Fragment {
	if node.IsText() {
		return w.serializeLeaf(node)
	}
	children := w.serializeNodes(node.Children)
	return w.serializeElement(node, children)
}

// serializeElement dispatches an element to the first plugin that both
// renders elements and owns the node's type. Untyped elements and types no
// plugin owns degrade to a plain wrapper around the already-serialized
// children rather than failing the whole document.
func (w *walker) serializeElement(node *document.Node, children Fragment) Fragment {
	if node.Type == "" {
		return wrapPlain(children)
	}

	props := w.reg.applyOverrides(RenderProps{
		Element:    node,
		Children:   children,
		Attributes: map[string]string{},
		Editor:     w.reg.Editor(),
		Options:    w.opts.RenderOptions,
	})

	for _, p := range w.reg.Plugins() {
		er, ok := p.(ElementRenderer)
		if !ok || !er.OwnsType(node.Type) {
			continue
		}
		frag, rendered := er.RenderElement(props)
		if !rendered {
			continue
		}
		return EncodedFragment(filterClassNames(frag.Markup(), w.opts.classPrefixes()))
	}

	log.Printf("serializer miss on element type %q", node.Type)
	return wrapPlain(children)
}

// serializeLeaf folds the leaf through every leaf-capable plugin in order.
// Each plugin wraps the previous accumulator; a plugin whose output is
// identical to its input is a no-op decoration and leaves the accumulator
// untouched.
func (w *walker) serializeLeaf(node *document.Node) Fragment {
	acc := RawText(node.TextContent())

	for _, p := range w.reg.Plugins() {
		lr, ok := p.(LeafRenderer)
		if !ok {
			continue
		}

		leafProps := RenderProps{
			Leaf:       node,
			Text:       node.TextContent(),
			Children:   acc,
			Attributes: map[string]string{},
			Editor:     w.reg.Editor(),
			Options:    w.opts.RenderOptions,
		}

		frag, rendered := lr.RenderLeaf(leafProps)
		if !rendered || frag.Markup() == string(acc.HTML()) || frag == acc {
			continue
		}

		frag, rendered = lr.RenderLeaf(w.reg.applyOverrides(leafProps))
		if !rendered {
			continue
		}
		acc = EncodedFragment(filterClassNames(frag.Markup(), w.opts.classPrefixes()))
	}

	if !acc.Encoded() {
		return EncodedFragment(string(acc.HTML()))
	}
	return acc
}

func wrapPlain(children Fragment) Fragment {
	return EncodedFragment("<div>" + string(children.HTML()) + "</div>")
}
