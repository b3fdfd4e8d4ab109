package serializer

import (
	"log"
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"

	"github.com/MeridianPress/slateforge-go/internal/infrastructure/sanitize"
)

var (
	whitespaceReplacer = strings.NewReplacer("\r", "", "\n", "", "\t", "")

	// bookkeeping attributes the editor stamps on rendered nodes; stripped
	// regardless of value
	dataAttrPattern  = regexp.MustCompile(`\s?(?:data-slate-node|data-slate-type|data-slate-leaf|data-testid)="[^"]*"`)
	classAttrPattern = regexp.MustCompile(`\s?class="([^"]*)"`)

	minifier = minify.New()
)

func init() {
	minifier.AddFunc("text/html", mhtml.Minify)
}

// stripWhitespace removes raw CR/LF/TAB characters. Idempotent.
func stripWhitespace(s string) string {
	return whitespaceReplacer.Replace(s)
}

// stripDataAttributes removes editor bookkeeping attributes from markup.
func stripDataAttributes(s string) string {
	return dataAttrPattern.ReplaceAllString(s, "")
}

// filterClassNames rewrites every class attribute in a fragment, keeping
// only tokens that match one of the configured prefixes. An attribute left
// with no tokens is dropped entirely.
func filterClassNames(fragment string, prefixes []string) string {
	return classAttrPattern.ReplaceAllStringFunc(fragment, func(attr string) string {
		match := classAttrPattern.FindStringSubmatch(attr)
		if match == nil {
			return attr
		}

		var kept []string
		for _, token := range strings.Fields(match[1]) {
			for _, prefix := range prefixes {
				if strings.HasPrefix(token, prefix) {
					kept = append(kept, token)
					break
				}
			}
		}

		if len(kept) == 0 {
			return ""
		}
		return ` class="` + strings.Join(kept, " ") + `"`
	})
}

// sanitizeHTML filters the output through the shared bluemonday policy.
func sanitizeHTML(s string) string {
	return sanitize.Policy().Sanitize(s)
}

// minifyHTML collapses the output through the HTML minifier. Minification
// failure is not fatal; the unminified markup is still valid output.
func minifyHTML(s string) string {
	out, err := minifier.String("text/html", s)
	if err != nil {
		log.Printf("ERROR: Failed to minify serialized HTML: %v", err)
		return s
	}
	return out
}
