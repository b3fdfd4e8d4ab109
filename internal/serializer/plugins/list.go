package plugins

import (
	"html/template"

	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

var (
	bulletedListTmpl = template.Must(template.New("bulletedList").Parse(
		`<ul class="slate-ul" data-slate-node="element" data-slate-type="bulleted-list">{{.Children}}</ul>`,
	))
	numberedListTmpl = template.Must(template.New("numberedList").Parse(
		`<ol class="slate-ol" data-slate-node="element" data-slate-type="numbered-list">{{.Children}}</ol>`,
	))
	listItemTmpl = template.Must(template.New("listItem").Parse(
		`<li class="slate-li" data-slate-node="element" data-slate-type="list-item">{{.Children}}</li>`,
	))
)

type listData struct {
	Children template.HTML
}

// List renders bulleted and numbered lists and their items.
type List struct{}

var listTypes = owns("bulleted-list", "ul", "numbered-list", "ol", "list-item", "li")

func (l *List) Name() string { return "list" }

func (l *List) OwnsType(nodeType string) bool {
	return listTypes.has(nodeType)
}

func (l *List) RenderElement(props serializer.RenderProps) (serializer.Fragment, bool) {
	data := listData{Children: props.Children.HTML()}

	switch props.Element.Type {
	case "bulleted-list", "ul":
		return execTemplate(bulletedListTmpl, "bulletedList", data)
	case "numbered-list", "ol":
		return execTemplate(numberedListTmpl, "numberedList", data)
	case "list-item", "li":
		return execTemplate(listItemTmpl, "listItem", data)
	}
	return serializer.Fragment{}, false
}
