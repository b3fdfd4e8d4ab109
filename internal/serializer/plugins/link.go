package plugins

import (
	"html/template"
	"strings"

	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

var linkTmpl = template.Must(template.New("link").Parse(
	`<a href="{{.Href}}" class="slate-a" data-slate-node="element" data-slate-type="link"{{if .Target}} target="{{.Target}}" rel="noopener noreferrer"{{end}}>{{.Children}}</a>`,
))

type linkData struct {
	Href     string
	Target   string
	Children template.HTML
}

// Link renders anchor elements. Hrefs are validated against a scheme
// allowlist; anything else collapses to "#" to keep javascript: and data:
// URLs out of the output.
type Link struct{}

var linkTypes = owns("link", "a")

func (l *Link) Name() string { return "link" }

func (l *Link) OwnsType(nodeType string) bool {
	return linkTypes.has(nodeType)
}

func (l *Link) RenderElement(props serializer.RenderProps) (serializer.Fragment, bool) {
	data := linkData{
		Href:     safeHref(props.Element.AttrString("href")),
		Children: props.Children.HTML(),
	}
	if target := props.Element.AttrString("target"); target == "_blank" {
		data.Target = target
	}

	return execTemplate(linkTmpl, "link", data)
}

func safeHref(href string) string {
	if href == "" {
		return "#"
	}

	lower := strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range []string{"http://", "https://", "mailto:", "tel:"} {
		if strings.HasPrefix(lower, scheme) {
			return href
		}
	}
	// Relative and fragment links carry no scheme
	if strings.HasPrefix(lower, "/") || strings.HasPrefix(lower, "#") {
		return href
	}
	return "#"
}
