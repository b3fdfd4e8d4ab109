package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
	"github.com/MeridianPress/slateforge-go/internal/serializer"
)

func serialize(t *testing.T, nodes []document.Node, mutate func(*serializer.Options)) string {
	t.Helper()
	opts := serializer.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	return serializer.Serialize(nodes, Default(nil), opts)
}

func TestParagraph(t *testing.T) {
	nodes := []document.Node{
		document.Element("paragraph", nil, document.Text("hello", nil)),
	}

	assert.Equal(t, `<p class="slate-p">hello</p>`, serialize(t, nodes, nil))
}

func TestHeadingLevels(t *testing.T) {
	tests := []struct {
		name string
		node document.Node
		want string
	}{
		{
			name: "explicit h3 type",
			node: document.Element("h3", nil, document.Text("title", nil)),
			want: `<h3 class="slate-h3">title</h3>`,
		},
		{
			name: "generic heading with level attr",
			node: document.Element("heading", map[string]any{"level": float64(4)}, document.Text("title", nil)),
			want: `<h4 class="slate-h4">title</h4>`,
		},
		{
			name: "level clamped into range",
			node: document.Element("heading", map[string]any{"level": float64(9)}, document.Text("title", nil)),
			want: `<h6 class="slate-h6">title</h6>`,
		},
		{
			name: "missing level defaults to h2",
			node: document.Element("heading", nil, document.Text("title", nil)),
			want: `<h2 class="slate-h2">title</h2>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serialize(t, []document.Node{tt.node}, nil))
		})
	}
}

func TestMarkNesting(t *testing.T) {
	nodes := []document.Node{
		document.Text("x", map[string]any{"bold": true, "italic": true}),
	}

	// italic registers after bold, so it wraps bold's output.
	assert.Equal(t,
		`<em class="slate-italic"><strong class="slate-bold">x</strong></em>`,
		serialize(t, nodes, nil))
}

func TestMarkAbsentIsNoOp(t *testing.T) {
	nodes := []document.Node{
		document.Text("plain", map[string]any{"bold": false}),
	}

	assert.Equal(t, "plain", serialize(t, nodes, nil))
}

func TestListStructure(t *testing.T) {
	nodes := []document.Node{
		document.Element("bulleted-list", nil,
			document.Element("list-item", nil, document.Text("one", nil)),
			document.Element("list-item", nil, document.Text("two", nil)),
		),
	}

	assert.Equal(t,
		`<ul class="slate-ul"><li class="slate-li">one</li><li class="slate-li">two</li></ul>`,
		serialize(t, nodes, nil))
}

func TestBlockquote(t *testing.T) {
	nodes := []document.Node{
		document.Element("block-quote", nil, document.Text("wisdom", nil)),
	}

	assert.Equal(t, `<blockquote class="slate-blockquote">wisdom</blockquote>`, serialize(t, nodes, nil))
}

func TestCodeBlockLanguageClass(t *testing.T) {
	nodes := []document.Node{
		document.Element("code-block", map[string]any{"language": "go"},
			document.Text("fmt.Println(1)", nil)),
	}

	out := serialize(t, nodes, func(o *serializer.Options) {
		o.PreserveClassNames = []string{"slate-", "language-"}
	})
	assert.Equal(t,
		`<pre class="slate-code-block"><code class="language-go">fmt.Println(1)</code></pre>`,
		out)

	// With the default preserve list the language class is filtered away.
	out = serialize(t, nodes, nil)
	assert.Equal(t,
		`<pre class="slate-code-block"><code>fmt.Println(1)</code></pre>`,
		out)
}

func TestCodeBlockRejectsUnsafeLanguage(t *testing.T) {
	nodes := []document.Node{
		document.Element("code-block", map[string]any{"language": `go" onload="x`},
			document.Text("1", nil)),
	}

	out := serialize(t, nodes, func(o *serializer.Options) {
		o.PreserveClassNames = []string{"slate-", "language-"}
	})
	assert.NotContains(t, out, "onload")
	assert.NotContains(t, out, "language-")
}

func TestLinkSchemes(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"https allowed", "https://example.com/a", "https://example.com/a"},
		{"relative allowed", "/docs/intro", "/docs/intro"},
		{"mailto allowed", "mailto:a@b.c", "mailto:a@b.c"},
		{"javascript rejected", "javascript:alert(1)", "#"},
		{"data rejected", "data:text/html,x", "#"},
		{"empty rejected", "", "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := []document.Node{
				document.Element("link", map[string]any{"href": tt.href}, document.Text("go", nil)),
			}
			assert.Equal(t,
				`<a href="`+tt.want+`" class="slate-a">go</a>`,
				serialize(t, nodes, nil))
		})
	}
}

func TestLinkBlankTarget(t *testing.T) {
	nodes := []document.Node{
		document.Element("link", map[string]any{"href": "https://example.com", "target": "_blank"},
			document.Text("out", nil)),
	}

	assert.Equal(t,
		`<a href="https://example.com" class="slate-a" target="_blank" rel="noopener noreferrer">out</a>`,
		serialize(t, nodes, nil))
}

func TestImageLazyLoadingOverride(t *testing.T) {
	nodes := []document.Node{
		document.Element("image", map[string]any{"src": "/x.png", "alt": "pic"}),
	}

	assert.Equal(t,
		`<img src="/x.png" class="slate-img" alt="pic" loading="lazy" />`,
		serialize(t, nodes, nil))
}

func TestDivider(t *testing.T) {
	nodes := []document.Node{document.Element("divider", nil)}

	assert.Equal(t, `<hr class="slate-hr" />`, serialize(t, nodes, nil))
}

func TestNestedDocument(t *testing.T) {
	nodes := []document.Node{
		document.Element("h2", nil, document.Text("Title", nil)),
		document.Element("paragraph", nil,
			document.Text("Plain ", nil),
			document.Text("bold", map[string]any{"bold": true}),
			document.Text(" tail", nil),
		),
	}

	assert.Equal(t,
		`<h2 class="slate-h2">Title</h2>`+
			`<p class="slate-p">Plain <strong class="slate-bold">bold</strong> tail</p>`,
		serialize(t, nodes, nil))
}
