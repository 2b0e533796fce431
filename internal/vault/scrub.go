package vault

import (
	"regexp"
	"strings"
)

// Credential patterns removed from error text before it leaves the package.
var credentialPatterns = []*regexp.Regexp{
	// Anthropic
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9-]{20,}`),
	// OpenAI and other sk- keys
	regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{36}`),
	// AWS
	regexp.MustCompile(`AKIA[A-Z0-9]{16}`),
	// Generic key=value patterns (case-insensitive)
	regexp.MustCompile(`(?i)(api[_-]?key|token|secret|password|bearer|authorization)\s*[:=]\s*["']?\S{8,}["']?`),
}

const redactedPlaceholder = "[REDACTED]"

// Scrub replaces the given literal secrets and known credential patterns in text
// with [REDACTED].
func Scrub(text string, secrets ...string) string {
	for _, s := range secrets {
		if s != "" {
			text = strings.ReplaceAll(text, s, redactedPlaceholder)
		}
	}
	for _, pat := range credentialPatterns {
		text = pat.ReplaceAllString(text, redactedPlaceholder)
	}
	return text
}

// Mask renders a secret for display: first and last four characters for long
// values, a fixed mask otherwise. Characters are counted as runes.
func Mask(s string) string {
	r := []rune(s)
	switch {
	case len(r) == 0:
		return ""
	case len(r) > 8:
		return string(r[:4]) + "****" + string(r[len(r)-4:])
	default:
		return "****"
	}
}
