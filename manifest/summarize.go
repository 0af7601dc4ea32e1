package manifest

import (
	"fmt"
	"strings"
	"time"

	"github.com/sonnes/pramaan/core"
)

// AuthorLookup selects how the authorship and EXIF assertions are located.
type AuthorLookup string

const (
	// ByPosition reads authorship from assertion 1 and EXIF from assertion 0,
	// matching the order current producers emit.
	ByPosition AuthorLookup = "position"
	// ByLabel finds the first assertion with the matching label instead.
	ByLabel AuthorLookup = "label"
)

// Assertion labels used by ByLabel.
const (
	labelCreativeWork = "stds.schema-org.creativework"
	labelEXIF         = "stds.exif"
)

// ParseAuthorLookup validates a lookup name. Empty means ByPosition.
func ParseAuthorLookup(s string) (AuthorLookup, error) {
	switch AuthorLookup(strings.ToLower(s)) {
	case "", ByPosition:
		return ByPosition, nil
	case ByLabel:
		return ByLabel, nil
	default:
		return "", fmt.Errorf("unknown author lookup %q (want position or label)", s)
	}
}

// Summarizer flattens a manifest into a display record.
type Summarizer struct {
	Vocab    *Vocabulary
	Location *time.Location // zone for issued dates; nil means time.Local
	Lookup   AuthorLookup
}

// NewSummarizer returns a Summarizer with the built-in vocabulary, local time
// and positional author lookup.
func NewSummarizer() *Summarizer {
	return &Summarizer{Vocab: DefaultVocabulary(), Location: time.Local, Lookup: ByPosition}
}

// Summarize flattens m with the default Summarizer.
func Summarize(m Value, fallbackTitleSource string) core.Record {
	return NewSummarizer().Summarize(m, fallbackTitleSource)
}

// Summarize builds the display record for m. fallbackTitleSource is a URL or
// name whose file name is used when the manifest carries no title. The
// returned record has no thumbnail; the caller owns thumbnail fallbacks.
func (s *Summarizer) Summarize(m Value, fallbackTitleSource string) core.Record {
	vocab := s.Vocab
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return core.Record{
		Title:     s.title(m, fallbackTitleSource),
		Author:    s.author(m),
		Generator: generator(m),
		Issued:    core.FormatTimestampIn(s.issued(m), s.Location),
		Actions:   vocab.ExtractActions(m),
	}
}

func (s *Summarizer) author(m Value) string {
	var a Value
	if s.Lookup == ByLabel {
		a = assertionByLabel(m, labelCreativeWork)
	} else {
		a = assertionAt(m, 1)
	}
	person := a.Path("data", "author").Index(0)

	name := person.Get("name").String()
	if name == "" {
		name = "Unknown"
	}
	kind := person.Get("@type", "type").String()
	if kind == "" {
		kind = "Unknown"
	}
	return name + " (" + kind + ")"
}

func generator(m Value) string {
	info := m.Get("claimGeneratorInfo", "claim_generator_info").Index(0)
	g := strings.TrimSpace(info.Get("name").String() + " " + info.Get("version").String())
	if g == "" {
		return core.Dash
	}
	return g
}

func (s *Summarizer) issued(m Value) string {
	var exif Value
	if s.Lookup == ByLabel {
		exif = assertionByLabel(m, labelEXIF)
	} else {
		exif = assertionAt(m, 0)
	}
	return core.FirstNonEmpty(
		m.Path("signatureInfo|signature_info", "time").String(),
		exif.Path("data", "EXIF:DateTime|exif:DateTimeOriginal").String(),
		m.Get("created").String(),
	)
}

func (s *Summarizer) title(m Value, fallbackTitleSource string) string {
	t := core.FirstNonEmpty(
		m.Get("title").String(),
		m.Get("documentId", "document_id").String(),
		core.FileNameFromURL(fallbackTitleSource),
	)
	if t == "" {
		return "Image"
	}
	return t
}

func assertionAt(m Value, i int) Value {
	list := Assertions(m)
	if i < 0 || i >= len(list) {
		return Value{}
	}
	return list[i]
}

func assertionByLabel(m Value, label string) Value {
	for _, a := range Assertions(m) {
		if strings.HasPrefix(a.Get("label").Lower(), label) {
			return a
		}
	}
	return Value{}
}
