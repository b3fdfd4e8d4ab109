// Package serializer converts rich-text document trees into HTML strings
// through an ordered plugin registry.
package serializer

import (
	"html"
	"html/template"
	"net/url"
)

// Fragment is a markup segment produced for one node. The encoded flag
// records whether the payload is already HTML markup; raw text is escaped
// on its way into a template. Carrying the flag explicitly avoids guessing
// from string shape whether a value has been processed before.
type Fragment struct {
	markup  string
	encoded bool
}

// RawText wraps plain leaf text that has not been rendered yet.
func RawText(text string) Fragment {
	return Fragment{markup: text}
}

// EncodedFragment wraps a string that is already valid HTML markup.
func EncodedFragment(markup string) Fragment {
	return Fragment{markup: markup, encoded: true}
}

// Markup returns the fragment payload as-is.
func (f Fragment) Markup() string {
	return f.markup
}

// Encoded reports whether the payload is already markup.
func (f Fragment) Encoded() bool {
	return f.encoded
}

// Empty reports whether the fragment carries no content.
func (f Fragment) Empty() bool {
	return f.markup == ""
}

// HTML returns the fragment for safe template interpolation. Raw text is
// HTML-escaped exactly once; markup passes through untouched.
func (f Fragment) HTML() template.HTML {
	if f.encoded {
		return template.HTML(f.markup)
	}
	return template.HTML(html.EscapeString(f.markup))
}

// decodeIfNeeded percent-decodes a string once if decoding would change it.
// Callers that hand in pre-encoded markup get it decoded; everything else
// passes through. A malformed percent sequence means the string was never
// encoded, not that the input is bad.
func decodeIfNeeded(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	if decoded != s {
		return decoded
	}
	return s
}
