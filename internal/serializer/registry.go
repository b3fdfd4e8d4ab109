package serializer

import (
	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
)

// Editor is the opaque handle threaded through plugin callbacks. The
// serializer passes it along unchanged and never inspects it.
type Editor any

// RenderProps is the ephemeral per-node record handed to plugin callbacks.
// A fresh value is built for every node visited; nothing here outlives the
// render call.
type RenderProps struct {
	Element    *document.Node
	Leaf       *document.Node
	Text       string
	Children   Fragment
	Attributes map[string]string
	Editor     Editor
	Options    map[string]any
}

// Override transforms render props before dispatch. Overrides run in
// registration order, each receiving the previous step's output.
type Override func(RenderProps) RenderProps

// Plugin is the base capability all registered renderers share.
type Plugin interface {
	Name() string
}

// ElementRenderer renders element nodes. OwnsType declares which element
// types the plugin is responsible for; RenderElement reports ok=false when
// it declines to produce a fragment.
type ElementRenderer interface {
	Plugin
	OwnsType(nodeType string) bool
	RenderElement(props RenderProps) (Fragment, bool)
}

// LeafRenderer decorates text leaves. Returning the incoming children
// unchanged (or ok=false) leaves the accumulator alone.
type LeafRenderer interface {
	Plugin
	RenderLeaf(props RenderProps) (Fragment, bool)
}

// PropsOverrider contributes prop transforms, resolved once against the
// editor when the registry is built.
type PropsOverrider interface {
	Plugin
	OverrideProps(editor Editor) []Override
}

// Registry holds the ordered plugin sequence. Order is dispatch priority:
// the first element plugin owning a node type wins, and leaf plugins wrap
// the accumulator in listed order.
type Registry struct {
	editor    Editor
	plugins   []Plugin
	overrides []Override
}

// NewRegistry builds a registry over an ordered plugin set, flattening
// every plugin's override contributions into one pipeline up front.
func NewRegistry(editor Editor, plugins ...Plugin) *Registry {
	reg := &Registry{
		editor:  editor,
		plugins: plugins,
	}
	for _, p := range plugins {
		if po, ok := p.(PropsOverrider); ok {
			reg.overrides = append(reg.overrides, po.OverrideProps(editor)...)
		}
	}
	return reg
}

// Plugins returns the ordered plugin sequence.
func (r *Registry) Plugins() []Plugin {
	return r.plugins
}

// Editor returns the opaque editor handle.
func (r *Registry) Editor() Editor {
	return r.editor
}

// applyOverrides runs the flattened override pipeline over props.
func (r *Registry) applyOverrides(props RenderProps) RenderProps {
	for _, override := range r.overrides {
		props = override(props)
	}
	return props
}
