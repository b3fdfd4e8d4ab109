package plugins

import (
	"html/template"
	"regexp"

	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

var codeBlockTmpl = template.Must(template.New("codeBlock").Parse(
	`<pre class="slate-code-block" data-slate-node="element" data-slate-type="code-block"><code{{if .Language}} class="language-{{.Language}}"{{end}}>{{.Children}}</code></pre>`,
))

type codeBlockData struct {
	Language string
	Children template.HTML
}

// languagePattern validates language identifiers before they land in a
// class attribute.
var languagePattern = regexp.MustCompile(`^[a-zA-Z0-9+-]+$`)

// CodeBlock renders fenced code blocks with an optional language class.
// The language- class survives post-processing only when callers add
// "language-" to the preserve list.
type CodeBlock struct{}

var codeBlockTypes = owns("code-block", "code_block", "pre")

func (cb *CodeBlock) Name() string { return "code-block" }

func (cb *CodeBlock) OwnsType(nodeType string) bool {
	return codeBlockTypes.has(nodeType)
}

func (cb *CodeBlock) RenderElement(props serializer.RenderProps) (serializer.Fragment, bool) {
	language := props.Element.AttrString("language")
	if language != "" && !languagePattern.MatchString(language) {
		language = ""
	}

	return execTemplate(codeBlockTmpl, "codeBlock", codeBlockData{
		Language: language,
		Children: props.Children.HTML(),
	})
}
