package prompt

import "strings"

// DefaultLanguage is the language used when a request carries no language
// input at all.
const DefaultLanguage = "english"

// langToken is the placeholder in a prompt path that the resolver replaces
// with the normalized 2-letter code.
const langToken = "{lang}"

// languageCodes maps accepted language inputs to template file suffixes.
// Both long names and already-short codes are accepted.
var languageCodes = map[string]string{
	"english": "en",
	"russian": "ru",
	"arabic":  "ar",
	"en":      "en",
	"ru":      "ru",
	"ar":      "ar",
}

// NormalizeLanguage maps a user-supplied language to its 2-letter template
// code. Unrecognized input falls back to "en" on purpose: a bad language
// value should degrade to the English template, not fail the request.
func NormalizeLanguage(language string) string {
	if code, ok := languageCodes[strings.ToLower(strings.TrimSpace(language))]; ok {
		return code
	}
	return "en"
}

// Resolver maps (prompt path, language) to template text via a Store.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver over the given template store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Path returns the concrete template path for a templated prompt path and
// language ("story/general/{lang}.md" + "russian" → "story/general/ru.md").
// Paths without a {lang} token pass through unchanged.
func (r *Resolver) Path(promptPath, language string) string {
	return strings.ReplaceAll(promptPath, langToken, NormalizeLanguage(language))
}

// Resolve loads the template at the prompt path in the given language.
// It is a pure function of its arguments for a fixed store: resolving the
// same pair twice returns identical text. A miss surfaces the store's
// *TemplateMissingError unchanged.
func (r *Resolver) Resolve(promptPath, language string) (string, error) {
	return r.store.Load(r.Path(promptPath, language))
}
