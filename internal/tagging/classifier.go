package tagging

import (
	"strings"

	"dinescout-engine/internal/config"
)

// Classifier maps a blob of review text to cuisine and aspect tags by
// case-insensitive substring matching against keyword dictionaries. It is
// pure and deterministic: the same text always yields the same tags, which
// matters because tags feed both the persisted corpus and live filtering.
type Classifier struct {
	cuisine  []rule
	aspect   []rule
	fallback string
}

type rule struct {
	tag string
	any []string // lower-cased phrases
}

func New(cfg config.Config) *Classifier {
	return &Classifier{
		cuisine:  compile(cfg.Tagging.CuisineRules),
		aspect:   compile(cfg.Tagging.AspectRules),
		fallback: cfg.Tagging.FallbackCuisine,
	}
}

func compile(in []config.TagRule) []rule {
	out := make([]rule, 0, len(in))
	for _, r := range in {
		cr := rule{tag: r.Tag, any: make([]string, 0, len(r.Any))}
		for _, phrase := range r.Any {
			p := strings.ToLower(strings.TrimSpace(phrase))
			if p == "" {
				continue
			}
			cr.any = append(cr.any, p)
		}
		if len(cr.any) > 0 {
			out = append(out, cr)
		}
	}
	return out
}

// Classify returns (cuisineTags, aspectTags) for the given text. A category
// emits at most one tag no matter how many of its phrases match. When no
// cuisine category matches, the fallback tag is emitted alone; aspect tags
// may legitimately be empty.
func (c *Classifier) Classify(text string) (cuisine, aspects []string) {
	low := strings.ToLower(text)

	cuisine = apply(c.cuisine, low)
	if len(cuisine) == 0 {
		cuisine = []string{c.fallback}
	}
	aspects = apply(c.aspect, low)
	return cuisine, aspects
}

// apply returns a non-nil slice so tag sets serialize as [] rather than
// null when a category matches nothing.
func apply(rules []rule, low string) []string {
	tags := []string{}
	for _, r := range rules {
		for _, needle := range r.any {
			if strings.Contains(low, needle) {
				tags = append(tags, r.tag)
				break
			}
		}
	}
	return tags
}
