package vanilla

import (
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	defaultPolicy         *bluemonday.Policy
)

func (r *Renderer) description(raw string) string {
	if r.cfg.markdown {
		raw = markdownToHTML(raw)
	}
	return sanitizeDescription(r.cfg.policy, raw)
}

// markdownToHTML builds a fresh parser per call; gomarkdown parsers keep
// state between documents.
func markdownToHTML(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(markdown.ToHTML([]byte(raw), p, renderer))
}

func sanitizeDescription(policy *bluemonday.Policy, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(policy.Sanitize(raw))
}

// descriptionPolicy allows inline formatting and links in widget
// descriptions. Scripts, styles and event handlers are stripped.
func descriptionPolicy() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "small", "code", "br", "span", "p")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span", "code")
		defaultPolicy = policy
	})
	return defaultPolicy
}
