package notify

import "strings"

// DefaultLanguage applies when neither the request nor the recipient names one.
const DefaultLanguage = "sv-SE"

// EffectiveLanguage walks requested → preferred → fallback and returns the
// first non-blank tag. An empty fallback means DefaultLanguage.
func EffectiveLanguage(requested, preferred, fallback string) string {
	for _, l := range []string{requested, preferred, fallback} {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return DefaultLanguage
}
