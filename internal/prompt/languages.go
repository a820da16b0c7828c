package prompt

// SupportedLanguages lists every language the platform ships templates for.
// Language coverage is a deploy-time guarantee, not a type-level one; the
// startup preflight enforces it against this list.
var SupportedLanguages = []string{"english", "russian", "arabic"}
