package plugins

import (
	"html/template"

	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

var blockquoteTmpl = template.Must(template.New("blockquote").Parse(
	`<blockquote class="slate-blockquote" data-slate-node="element" data-slate-type="block-quote">{{.Children}}</blockquote>`,
))

type blockquoteData struct {
	Children template.HTML
}

// Blockquote renders block quotations.
type Blockquote struct{}

var blockquoteTypes = owns("block-quote", "blockquote")

func (b *Blockquote) Name() string { return "blockquote" }

func (b *Blockquote) OwnsType(nodeType string) bool {
	return blockquoteTypes.has(nodeType)
}

func (b *Blockquote) RenderElement(props serializer.RenderProps) (serializer.Fragment, bool) {
	return execTemplate(blockquoteTmpl, "blockquote", blockquoteData{
		Children: props.Children.HTML(),
	})
}
