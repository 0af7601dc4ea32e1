package manifest

import (
	"strings"
)

// actionsLabelPrefix identifies actions assertions, including versioned
// labels like "c2pa.actions.v2".
const actionsLabelPrefix = "c2pa.actions"

// AI provenance suffixes appended to an action description.
type AISuffix string

const (
	AINone      AISuffix = ""
	AIEdited    AISuffix = " [AI-edited]"
	AIGenerated AISuffix = " [AI-generated]"
)

// ActionGroup collects every entry of one recognized action code within a
// manifest.
type ActionGroup struct {
	Code   string   `json:"code"`
	Order  int      `json:"order"` // first-seen position across the assertion scan
	Title  string   `json:"title"`
	Params []string `json:"params,omitempty"` // distinct labels in first-seen order
	AI     AISuffix `json:"ai,omitempty"`
}

// String renders the group as "<title> like <params><ai>".
func (g ActionGroup) String() string {
	var b strings.Builder
	b.WriteString(g.Title)
	if len(g.Params) > 0 {
		b.WriteString(" like ")
		b.WriteString(strings.Join(g.Params, ", "))
	}
	b.WriteString(string(g.AI))
	return b.String()
}

func (g *ActionGroup) addParam(label string) {
	for _, p := range g.Params {
		if p == label {
			return
		}
	}
	g.Params = append(g.Params, label)
}

// markAI records the AI suffix for a digital source type. Edited is never
// downgraded to generated.
func (g *ActionGroup) markAI(sourceType string) {
	dst := strings.ToLower(sourceType)
	if !strings.Contains(dst, "trainedalgorithmicmedia") {
		return
	}
	if g.AI == AIEdited {
		return
	}
	if strings.Contains(dst, "composite") {
		g.AI = AIEdited
	} else {
		g.AI = AIGenerated
	}
}

// Assertions returns the manifest's assertion list. Producers emit either a
// plain list or an object wrapping the list in "data".
func Assertions(m Value) []Value {
	a := m.Get("assertions")
	if _, isList := a.Raw().([]any); isList {
		return a.List()
	}
	if data := a.Get("data"); !data.IsNil() {
		return data.List()
	}
	return a.List()
}

// ExtractActions returns one description per recognized action code in m,
// in first-seen order, using the built-in vocabulary.
func ExtractActions(m Value) []string {
	return DefaultVocabulary().ExtractActions(m)
}

// ExtractActions returns one description per recognized action code in m,
// in first-seen order.
func (v *Vocabulary) ExtractActions(m Value) []string {
	groups := v.ExtractGroups(m)
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.String()
	}
	return out
}

// ExtractGroups scans every actions assertion of m and groups its entries by
// action code. Unrecognized codes are skipped.
func (v *Vocabulary) ExtractGroups(m Value) []ActionGroup {
	var groups []*ActionGroup
	byCode := make(map[string]*ActionGroup)

	for _, a := range Assertions(m) {
		label := a.Get("label", "type").Lower()
		if !strings.HasPrefix(label, actionsLabelPrefix) {
			continue
		}

		for _, entry := range a.Path("data", "actions").List() {
			code := actionCode(entry)
			if code == "" {
				continue
			}
			title, ok := v.Title(code)
			if !ok {
				continue
			}

			g, seen := byCode[code]
			if !seen {
				if code == CodeCreated {
					title += " by " + agentName(entry)
				}
				g = &ActionGroup{Code: code, Order: len(groups), Title: title}
				byCode[code] = g
				groups = append(groups, g)
			}

			token := entry.Path("parameters", ParamNamespace).String()
			if label, ok := v.Param(token); ok {
				g.addParam(label)
			}

			g.markAI(entry.Get("digitalSourceType", "digital_source_type").String())
		}
	}

	out := make([]ActionGroup, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	return out
}

// actionCode reads the lower-cased code of an entry, which is either a bare
// string or a record carrying "action", "code" or "type".
func actionCode(entry Value) string {
	if s, ok := entry.Raw().(string); ok {
		return strings.ToLower(s)
	}
	return entry.Get("action", "code", "type").Lower()
}

func agentName(entry Value) string {
	agent := entry.Get("softwareAgent", "software_agent")
	if s, ok := agent.Raw().(string); ok && s != "" {
		return s
	}
	if name := agent.Get("name").String(); name != "" {
		return name
	}
	return DefaultAgent
}
