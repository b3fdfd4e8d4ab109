package plugins

import (
	"html/template"

	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

var paragraphTmpl = template.Must(template.New("paragraph").Parse(
	`<p class="slate-p" data-slate-node="element" data-slate-type="paragraph">{{.Children}}</p>`,
))

type paragraphData struct {
	Children template.HTML
}

// Paragraph renders paragraph elements.
type Paragraph struct{}

var paragraphTypes = owns("paragraph", "p")

func (pl *Paragraph) Name() string { return "paragraph" }

func (pl *Paragraph) OwnsType(nodeType string) bool {
	return paragraphTypes.has(nodeType)
}

func (pl *Paragraph) RenderElement(props serializer.RenderProps) (serializer.Fragment, bool) {
	return execTemplate(paragraphTmpl, "paragraph", paragraphData{
		Children: props.Children.HTML(),
	})
}
