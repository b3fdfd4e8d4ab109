// Package plugins provides the standard element and leaf renderers for the
// document serializer. Each plugin follows the same shape: a pre-parsed
// html/template for its markup, a data struct, and an ownership set naming
// the element types it renders.
package plugins

import (
	"html/template"
	"log"
	"strings"

	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

// Default returns the standard registry: block and inline element plugins
// first, mark plugins after them in wrapping order (bold innermost-first in
// the fold, so later marks wrap earlier ones).
func Default(editor serializer.Editor) *serializer.Registry {
	return serializer.NewRegistry(editor,
		&Paragraph{},
		&Heading{},
		&List{},
		&Blockquote{},
		&CodeBlock{},
		&Link{},
		&Image{},
		&Divider{},
		&Mark{MarkName: "bold", Tag: "strong"},
		&Mark{MarkName: "italic", Tag: "em"},
		&Mark{MarkName: "underline", Tag: "u"},
		&Mark{MarkName: "strikethrough", Tag: "s"},
		&Mark{MarkName: "code", Tag: "code"},
	)
}

// execTemplate renders a pre-parsed template into a string. Template
// failures produce a comment fragment rather than aborting the document.
func execTemplate(tmpl *template.Template, name string, data any) (serializer.Fragment, bool) {
	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		log.Printf("ERROR: Failed to execute %s template: %v", name, err)
		return serializer.EncodedFragment("<!-- template error -->"), true
	}
	return serializer.EncodedFragment(out.String()), true
}

// ownership is a small helper for plugins with a fixed element-type set.
type ownership map[string]struct{}

func owns(types ...string) ownership {
	o := make(ownership, len(types))
	for _, t := range types {
		o[t] = struct{}{}
	}
	return o
}

func (o ownership) has(nodeType string) bool {
	_, ok := o[nodeType]
	return ok
}
