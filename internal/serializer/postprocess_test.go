package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
)

func TestStripWhitespaceIdempotent(t *testing.T) {
	in := "<div>\n\t<p>hi</p>\r\n</div>"

	once := stripWhitespace(in)
	assert.Equal(t, "<div><p>hi</p></div>", once)
	assert.Equal(t, once, stripWhitespace(once))
}

func TestStripDataAttributes(t *testing.T) {
	in := `<p data-slate-node="element" data-slate-type="paragraph" data-testid="x">hi</p><span data-slate-leaf="true">a</span>`

	out := stripDataAttributes(in)
	assert.Equal(t, "<p>hi</p><span>a</span>", out)
}

func TestFilterClassNamesKeepsMatchingTokens(t *testing.T) {
	in := `<strong class="slate-bold foo bar">x</strong>`

	out := filterClassNames(in, []string{"slate-"})
	assert.Equal(t, `<strong class="slate-bold">x</strong>`, out)
}

func TestFilterClassNamesDropsEmptyAttribute(t *testing.T) {
	in := `<span class="foo bar">x</span>`

	out := filterClassNames(in, []string{"slate-"})
	assert.Equal(t, `<span>x</span>`, out)
}

func TestFilterClassNamesMultiplePrefixes(t *testing.T) {
	in := `<code class="language-go slate-code other">x</code>`

	out := filterClassNames(in, []string{"slate-", "language-"})
	assert.Equal(t, `<code class="language-go slate-code">x</code>`, out)
}

// attrPlugin emits bookkeeping attributes so the top-level strip pass has
// something to remove.
type attrPlugin struct{}

func (a *attrPlugin) Name() string { return "attr" }

func (a *attrPlugin) OwnsType(t string) bool { return t == "paragraph" }

func (a *attrPlugin) RenderElement(props RenderProps) (Fragment, bool) {
	return EncodedFragment(`<p data-slate-node="element" data-testid="x">` + string(props.Children.HTML()) + "</p>"), true
}

func TestStripDataAttributesOption(t *testing.T) {
	reg := testRegistry(&attrPlugin{})
	nodes := []document.Node{
		document.Element("paragraph", nil, document.Text("hi", nil)),
	}

	opts := DefaultOptions()
	assert.Equal(t, "<p>hi</p>", Serialize(nodes, reg, opts))

	opts.StripDataAttributes = false
	assert.Equal(t, `<p data-slate-node="element" data-testid="x">hi</p>`, Serialize(nodes, reg, opts))
}

func TestWhitespaceStripOption(t *testing.T) {
	reg := testRegistry(&boxPlugin{name: "para", nodeType: "paragraph", open: "<p>\n\t", close: "\n</p>"})
	nodes := []document.Node{
		document.Element("paragraph", nil, document.Text("hi", nil)),
	}

	opts := DefaultOptions()
	assert.Equal(t, "<p>hi</p>", Serialize(nodes, reg, opts))

	opts.StripWhitespace = false
	assert.Equal(t, "<p>\n\thi\n</p>", Serialize(nodes, reg, opts))
}

func TestSanitizePass(t *testing.T) {
	reg := testRegistry(&boxPlugin{name: "raw", nodeType: "raw", open: "<p><script>alert(1)</script>", close: "</p>"})
	nodes := []document.Node{
		document.Element("raw", nil, document.Text("hi", nil)),
	}

	opts := DefaultOptions()
	opts.Sanitize = true

	out := Serialize(nodes, reg, opts)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hi")
}

func TestMinifyPass(t *testing.T) {
	reg := testRegistry(&boxPlugin{name: "para", nodeType: "paragraph", open: "<p>  ", close: "  </p>"})
	nodes := []document.Node{
		document.Element("paragraph", nil, document.Text("hi", nil)),
	}

	opts := DefaultOptions()
	opts.Minify = true

	out := Serialize(nodes, reg, opts)
	assert.NotContains(t, out, "  ")
}

func TestDecodeIfNeededMalformed(t *testing.T) {
	assert.Equal(t, "100%zz", decodeIfNeeded("100%zz"))
	assert.Equal(t, "plain text", decodeIfNeeded("plain text"))
	assert.Equal(t, "a b", decodeIfNeeded("a%20b"))
}
