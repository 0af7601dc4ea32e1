package redact

import (
	"regexp"
	"sort"

	"github.com/sonnes/pramaan/core"
)

// Config controls which rules the Redactor applies.
type Config struct {
	Secrets    bool
	PII        bool
	ExtraRules []Rule
	Allowlist  []string // regex patterns to skip
}

// Redactor scrubs the free-text parts of a provenance graph: authors,
// notes, the error message and the raw manifest. It implements
// core.Transformer.
type Redactor struct {
	rules     []Rule
	allowlist []*regexp.Regexp
	locations bool
}

// New creates a Redactor from the given config.
func New(cfg Config) *Redactor {
	var rules []Rule
	if cfg.Secrets {
		rules = append(rules, SecretRules()...)
	}
	if cfg.PII {
		rules = append(rules, PIIRules()...)
	}
	rules = append(rules, cfg.ExtraRules...)

	allowlist := make([]*regexp.Regexp, 0, len(cfg.Allowlist))
	for _, pattern := range cfg.Allowlist {
		if re, err := regexp.Compile(pattern); err == nil {
			allowlist = append(allowlist, re)
		}
	}

	return &Redactor{rules: rules, allowlist: allowlist, locations: cfg.PII}
}

// Transform redacts the graph's records, its error message and the raw
// manifest kept for display.
func (r *Redactor) Transform(g *core.Graph) error {
	for i := range g.Rows {
		r.redactRecord(&g.Rows[i].Record)
	}
	g.Error = r.redactString(g.Error)
	if g.Raw != nil {
		g.Raw = walkAny(g.Raw, r.redactString, r.keyFilter())
	}
	return nil
}

// redactRecord touches Author and Note only. Title, Generator, Issued and
// Actions are derived from the manifest by fixed rules, and digit runs in
// file names or version strings would trip the phone and ipv4 rules.
func (r *Redactor) redactRecord(rec *core.Record) {
	rec.Author = r.redactString(rec.Author)
	rec.Note = r.redactString(rec.Note)
}

// keyFilter replaces location fields outright when PII redaction is on.
func (r *Redactor) keyFilter() func(key string) (string, bool) {
	if !r.locations {
		return nil
	}
	return func(key string) (string, bool) {
		if locationKey(key) {
			return placeholder("gps"), true
		}
		return "", false
	}
}

type replacement struct {
	start int
	end   int
	text  string
}

// redactString applies all rules to s. Overlapping matches resolve to
// earliest start, then longest. Allowlisted values are skipped.
func (r *Redactor) redactString(s string) string {
	if s == "" || len(r.rules) == 0 {
		return s
	}

	var reps []replacement
	for _, rule := range r.rules {
		for _, m := range rule.Detect(s) {
			if r.isAllowed(m.Value) {
				continue
			}
			reps = append(reps, replacement{start: m.Start, end: m.End, text: rule.Replacement(m)})
		}
	}
	if len(reps) == 0 {
		return s
	}

	sort.Slice(reps, func(i, j int) bool {
		if reps[i].start != reps[j].start {
			return reps[i].start < reps[j].start
		}
		return reps[i].end > reps[j].end
	})

	var out []byte
	pos := 0
	for _, rep := range reps {
		if rep.start < pos {
			continue
		}
		out = append(out, s[pos:rep.start]...)
		out = append(out, rep.text...)
		pos = rep.end
	}
	out = append(out, s[pos:]...)
	return string(out)
}

func (r *Redactor) isAllowed(value string) bool {
	for _, re := range r.allowlist {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}
