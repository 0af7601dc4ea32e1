// Package redact scrubs secrets and personal data from provenance graphs
// before they are shown or shared. Manifests routinely carry creator emails,
// phone numbers and EXIF location data.
package redact

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule detects sensitive data in a string and provides a replacement.
type Rule interface {
	Name() string
	Kind() string
	Detect(s string) []Match
	Replacement(m Match) string
}

// Match is one detected occurrence within a string.
type Match struct {
	Start int
	End   int
	Value string
}

// Rule kinds.
const (
	KindSecret = "secret"
	KindPII    = "pii"
)

type regexRule struct {
	name    string
	kind    string
	pattern *regexp.Regexp
}

func (r *regexRule) Name() string { return r.name }
func (r *regexRule) Kind() string { return r.kind }

func (r *regexRule) Detect(s string) []Match {
	locs := r.pattern.FindAllStringIndex(s, -1)
	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = Match{Start: loc[0], End: loc[1], Value: s[loc[0]:loc[1]]}
	}
	return matches
}

func (r *regexRule) Replacement(_ Match) string {
	return placeholder(r.name)
}

func placeholder(name string) string {
	return fmt.Sprintf("[REDACTED:%s]", name)
}

// SecretRules returns the built-in secret detection rules.
func SecretRules() []Rule {
	return []Rule{
		&regexRule{
			name:    "aws_key",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		},
		&regexRule{
			name:    "api_key",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`(?:sk-[a-zA-Z0-9]{32,}|ghp_[a-zA-Z0-9]{36,}|gho_[a-zA-Z0-9]{36,}|glpat-[a-zA-Z0-9\-]{20,})`),
		},
		&regexRule{
			name:    "private_key",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`-----BEGIN [A-Z ]+PRIVATE KEY-----`),
		},
		&regexRule{
			name:    "jwt",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_.+/=]+`),
		},
		&regexRule{
			name:    "signed_url",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`(?i)[?&](?:X-Amz-Signature|X-Goog-Signature|sig|token)=[^&\s"']+`),
		},
	}
}

// PIIRules returns the built-in personal data rules.
func PIIRules() []Rule {
	return []Rule{
		&regexRule{
			name:    "email",
			kind:    KindPII,
			pattern: regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		},
		&regexRule{
			name:    "ipv4",
			kind:    KindPII,
			pattern: regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
		},
		&regexRule{
			name:    "phone",
			kind:    KindPII,
			pattern: regexp.MustCompile(`(?:\+\d{1,3}[\s\-]?)?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}`),
		},
		&regexRule{
			// EXIF writes coordinates as "51 deg 30' 26.46\" N" or "51,30.441N".
			name:    "gps",
			kind:    KindPII,
			pattern: regexp.MustCompile(`\b\d{1,3}(?: deg |,)\d{1,2}(?:' \d{1,2}(?:\.\d+)?" ?|\.\d+ ?)[NSEW]\b`),
		},
	}
}

// locationKey reports whether a manifest field holds location data that is
// dropped wholesale under PII redaction, whatever its format.
func locationKey(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "gps") || strings.HasSuffix(k, "location")
}
