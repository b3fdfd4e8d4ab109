package plugins

import (
	"fmt"
	"strings"

	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

// Heading renders heading elements at levels 1 through 6. The level comes
// from either the explicit type (h1..h6) or a level attribute on a generic
// heading element, clamped into range. The tag is written manually from the
// validated level; template pipelines cannot emit dynamic tag names.
type Heading struct{}

var headingTypes = owns("heading", "h1", "h2", "h3", "h4", "h5", "h6")

func (h *Heading) Name() string { return "heading" }

func (h *Heading) OwnsType(nodeType string) bool {
	return headingTypes.has(nodeType)
}

func (h *Heading) RenderElement(props serializer.RenderProps) (serializer.Fragment, bool) {
	level := 2
	nodeType := props.Element.Type
	if len(nodeType) == 2 && strings.HasPrefix(nodeType, "h") && nodeType[1] >= '1' && nodeType[1] <= '6' {
		level = int(nodeType[1] - '0')
	} else {
		level = props.Element.AttrInt("level", level)
	}
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	tag := fmt.Sprintf("h%d", level)

	var out strings.Builder
	out.WriteString("<" + tag)
	out.WriteString(fmt.Sprintf(` class="slate-%s" data-slate-node="element" data-slate-type="heading">`, tag))
	out.WriteString(string(props.Children.HTML()))
	out.WriteString("</" + tag + ">")
	return serializer.EncodedFragment(out.String()), true
}
