package serializer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
)

// boxPlugin renders one owned element type inside a fixed wrapper tag.
type boxPlugin struct {
	name     string
	nodeType string
	open     string
	close    string
}

func (b *boxPlugin) Name() string { return b.name }

func (b *boxPlugin) OwnsType(t string) bool { return t == b.nodeType }

func (b *boxPlugin) RenderElement(props RenderProps) (Fragment, bool) {
	return EncodedFragment(b.open + string(props.Children.HTML()) + b.close), true
}

// capableNonOwner exposes the element capability but owns nothing. The
// dispatcher must scan past it instead of falling back.
type capableNonOwner struct{}

func (c *capableNonOwner) Name() string           { return "capable-non-owner" }
func (c *capableNonOwner) OwnsType(string) bool   { return false }
func (c *capableNonOwner) RenderElement(RenderProps) (Fragment, bool) {
	return EncodedFragment("<section>never</section>"), true
}

// noopLeaf declares leaf rendering but never decorates anything.
type noopLeaf struct{}

func (n *noopLeaf) Name() string { return "noop-leaf" }

func (n *noopLeaf) RenderLeaf(props RenderProps) (Fragment, bool) {
	return props.Children, true
}

// shoutLeaf wraps every leaf in a <strong> with extra classes.
type shoutLeaf struct{}

func (s *shoutLeaf) Name() string { return "shout-leaf" }

func (s *shoutLeaf) RenderLeaf(props RenderProps) (Fragment, bool) {
	return EncodedFragment(`<strong class="slate-bold foo bar">` + string(props.Children.HTML()) + `</strong>`), true
}

func testRegistry(plugins ...Plugin) *Registry {
	return NewRegistry(nil, plugins...)
}

func TestConcatenationOrder(t *testing.T) {
	reg := testRegistry(&boxPlugin{name: "para", nodeType: "paragraph", open: "<p>", close: "</p>"})
	opts := DefaultOptions()

	nodes := []document.Node{
		document.Element("paragraph", nil, document.Text("one", nil)),
		document.Element("paragraph", nil, document.Text("two", nil)),
		document.Element("paragraph", nil, document.Text("three", nil)),
	}

	var joined string
	for i := range nodes {
		joined += Serialize(nodes[i:i+1], reg, opts)
	}

	assert.Equal(t, joined, Serialize(nodes, reg, opts))
	assert.Equal(t, "<p>one</p><p>two</p><p>three</p>", Serialize(nodes, reg, opts))
}

func TestUntypedElementFallback(t *testing.T) {
	reg := testRegistry(&boxPlugin{name: "para", nodeType: "paragraph", open: "<p>", close: "</p>"})

	nodes := []document.Node{
		document.Element("", nil, document.Text("a", nil)),
	}

	assert.Equal(t, "<div>a</div>", Serialize(nodes, reg, DefaultOptions()))
}

func TestNoMatchTypeFallback(t *testing.T) {
	reg := testRegistry(&boxPlugin{name: "para", nodeType: "paragraph", open: "<p>", close: "</p>"})

	nodes := []document.Node{
		document.Element("custom-x", nil, document.Text("hi", nil)),
	}

	assert.Equal(t, "<div>hi</div>", Serialize(nodes, reg, DefaultOptions()))
}

func TestDispatchScansPastCapableNonOwner(t *testing.T) {
	// The capable-but-non-owning plugin sits first; the owning plugin must
	// still be reached.
	reg := testRegistry(
		&capableNonOwner{},
		&boxPlugin{name: "para", nodeType: "paragraph", open: "<p>", close: "</p>"},
	)

	nodes := []document.Node{
		document.Element("paragraph", nil, document.Text("x", nil)),
	}

	assert.Equal(t, "<p>x</p>", Serialize(nodes, reg, DefaultOptions()))
}

func TestFirstOwningPluginWins(t *testing.T) {
	reg := testRegistry(
		&boxPlugin{name: "first", nodeType: "paragraph", open: "<p>", close: "</p>"},
		&boxPlugin{name: "second", nodeType: "paragraph", open: "<article>", close: "</article>"},
	)

	nodes := []document.Node{
		document.Element("paragraph", nil, document.Text("x", nil)),
	}

	assert.Equal(t, "<p>x</p>", Serialize(nodes, reg, DefaultOptions()))
}

func TestLeafNoOpSkip(t *testing.T) {
	reg := testRegistry(&noopLeaf{})

	nodes := []document.Node{document.Text("plain", nil)}

	assert.Equal(t, "plain", Serialize(nodes, reg, DefaultOptions()))
}

func TestLeafFoldWrapsInOrder(t *testing.T) {
	reg := testRegistry(&noopLeaf{}, &shoutLeaf{})

	nodes := []document.Node{document.Text("loud", nil)}

	// shoutLeaf wraps; the class filter keeps only slate- tokens.
	assert.Equal(t, `<strong class="slate-bold">loud</strong>`, Serialize(nodes, reg, DefaultOptions()))
}

func TestEncodeGuardDecodesAtMostOnce(t *testing.T) {
	reg := testRegistry()
	opts := DefaultOptions()

	nodes := []document.Node{document.Text("a%20b", nil)}
	assert.Equal(t, "a b", Serialize(nodes, reg, opts))

	// Double-encoded input loses exactly one layer.
	nodes = []document.Node{document.Text("a%2520b", nil)}
	assert.Equal(t, "a%20b", Serialize(nodes, reg, opts))

	// A bare percent sign is not a valid sequence and passes through.
	nodes = []document.Node{document.Text("50% off", nil)}
	assert.Equal(t, "50% off", Serialize(nodes, reg, opts))
}

func TestLeafTextIsEscaped(t *testing.T) {
	reg := testRegistry()

	nodes := []document.Node{document.Text("a <b> & c", nil)}

	out := Serialize(nodes, reg, DefaultOptions())
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;b&gt;")
}

func TestTreeNotMutated(t *testing.T) {
	reg := testRegistry(&boxPlugin{name: "para", nodeType: "paragraph", open: "<p>", close: "</p>"})

	nodes := []document.Node{
		document.Element("paragraph", map[string]any{"k": "v"}, document.Text("one", nil)),
	}

	before, err := json.Marshal(nodes)
	require.NoError(t, err)

	Serialize(nodes, reg, DefaultOptions())

	after, err := json.Marshal(nodes)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
