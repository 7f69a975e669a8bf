package rules

import "regexp"

// The three reference grammars of the source format, in the fixed priority
// order substitution tries them: $(Name), %Name%, @[User::Name].
var refPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_]*)\)`),
	regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`),
	regexp.MustCompile(`@\[User::([A-Za-z_][A-Za-z0-9_]*)\]`),
}

// EnvRefs returns the distinct names referenced by text in any of the
// three grammars, in first-seen order.
func EnvRefs(text string) []string {
	var names []string
	seen := map[string]bool{}
	for _, pat := range refPatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				names = append(names, m[1])
			}
		}
	}
	return names
}
