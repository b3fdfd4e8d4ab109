package plugins

import (
	"html/template"

	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

var imageTmpl = template.Must(template.New("image").Parse(
	`<img{{if .Src}} src="{{.Src}}"{{end}}{{if .SrcSet}} srcset="{{.SrcSet}}"{{end}} class="slate-img" alt="{{.Alt}}"{{if .Loading}} loading="{{.Loading}}"{{end}} data-slate-node="element" data-slate-type="image" />`,
))

type imageData struct {
	Src     string
	SrcSet  string
	Alt     string
	Loading string
}

// Image renders image elements from node attributes. It also contributes a
// props override that stamps a lazy-loading hint onto every image element
// before dispatch.
type Image struct{}

var imageTypes = owns("image", "img")

func (i *Image) Name() string { return "image" }

func (i *Image) OwnsType(nodeType string) bool {
	return imageTypes.has(nodeType)
}

func (i *Image) OverrideProps(editor serializer.Editor) []serializer.Override {
	return []serializer.Override{
		func(props serializer.RenderProps) serializer.RenderProps {
			if props.Element != nil && imageTypes.has(props.Element.Type) {
				if _, set := props.Attributes["loading"]; !set {
					props.Attributes["loading"] = "lazy"
				}
			}
			return props
		},
	}
}

func (i *Image) RenderElement(props serializer.RenderProps) (serializer.Fragment, bool) {
	data := imageData{
		Src:     props.Element.AttrString("src"),
		SrcSet:  props.Element.AttrString("srcset"),
		Alt:     props.Element.AttrString("alt"),
		Loading: props.Attributes["loading"],
	}
	if data.Alt == "" {
		data.Alt = "image"
	}

	return execTemplate(imageTmpl, "image", data)
}
