package plugins

import (
	"strings"

	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

// Mark is a leaf renderer for one formatting mark (bold, italic, ...). A
// leaf without the mark passes the accumulator through unchanged, which the
// serializer treats as a no-op decoration and skips. Registration order
// determines nesting: each later mark wraps the output of earlier ones.
type Mark struct {
	// MarkName is the key checked on the leaf's marks map.
	MarkName string
	// Tag is the wrapper element, written manually after allowlist
	// validation since templates cannot emit dynamic tag names.
	Tag string
}

var allowedMarkTags = owns("strong", "em", "u", "s", "del", "code", "sub", "sup", "mark")

func (m *Mark) Name() string { return "mark-" + m.MarkName }

func (m *Mark) RenderLeaf(props serializer.RenderProps) (serializer.Fragment, bool) {
	if props.Leaf == nil || !props.Leaf.HasMark(m.MarkName) {
		return props.Children, true
	}
	if !allowedMarkTags.has(m.Tag) {
		return props.Children, true
	}

	var out strings.Builder
	out.WriteString("<" + m.Tag)
	out.WriteString(` class="slate-` + m.MarkName + `" data-slate-leaf="true">`)
	out.WriteString(string(props.Children.HTML()))
	out.WriteString("</" + m.Tag + ">")
	return serializer.EncodedFragment(out.String()), true
}
