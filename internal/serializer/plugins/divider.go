package plugins

import (
	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

// Divider renders thematic breaks. No template needed; the markup is fixed.
type Divider struct{}

var dividerTypes = owns("divider", "hr", "thematic-break")

func (d *Divider) Name() string { return "divider" }

func (d *Divider) OwnsType(nodeType string) bool {
	return dividerTypes.has(nodeType)
}

func (d *Divider) RenderElement(props serializer.RenderProps) (serializer.Fragment, bool) {
	return serializer.EncodedFragment(`<hr class="slate-hr" data-slate-node="element" data-slate-type="divider" />`), true
}
