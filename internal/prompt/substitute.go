package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// VariantToken is the reserved placeholder that always resolves to the
// variant's display name, independent of user inputs.
const VariantToken = "variant"

// tokenPattern matches {{name}} placeholders left in a template.
var tokenPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Substitute replaces every occurrence of each {{key}} with its value.
// Replacement is literal and case-sensitive. Tokens with no matching key
// are left untouched; callers decide whether leftovers are worth a warning
// (they are never an error).
func Substitute(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

// FindUnresolved returns the sorted names of {{tokens}} still present in
// text. An empty result means every placeholder was substituted.
func FindUnresolved(text string) []string {
	seen := make(map[string]bool)
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = true
	}
	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stringify renders an input value the way it should appear inside a
// prompt: numbers without a trailing ".000000", everything else via fmt.
func Stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
