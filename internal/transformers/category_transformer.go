package transformers

import (
	"strings"
)

type categoryTransformer struct{}

func NewCategoryTransformer() CategoryTransformer {
	return &categoryTransformer{}
}

// DisplayName turns a slug-like input into its human-readable form, e.g.
// "home-appliances" into "Home Appliances".
func (t *categoryTransformer) DisplayName(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ""
	}
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Slugify normalizes a free-text category name into slug form.
func (t *categoryTransformer) Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "-")
}
