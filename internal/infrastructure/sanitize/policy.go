// Package sanitize defines the HTML sanitization policy applied to
// serialized fragments before they are served to clients.
package sanitize

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Policy returns the shared sanitizer. It starts from the UGC baseline and
// additionally allows the attributes the serializer plugins emit: slate-
// classes, safe link targets, and image metadata.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		classRegexp := regexp.MustCompile(`^slate-[a-z0-9-]+(\s+slate-[a-z0-9-]+)*$`)
		langClassRegexp := regexp.MustCompile(`^language-[a-zA-Z0-9+-]+$`)
		targetRegexp := regexp.MustCompile(`^_blank$`)

		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").Matching(classRegexp).Globally()
		p.AllowAttrs("class").Matching(langClassRegexp).OnElements("code")
		p.AllowAttrs("target").Matching(targetRegexp).OnElements("a")
		p.AllowAttrs("rel").OnElements("a")
		p.AllowAttrs("loading").OnElements("img")
		p.AllowAttrs("srcset", "sizes").OnElements("img")
		p.RequireNoFollowOnLinks(false)

		policy = p
	})
	return policy
}
