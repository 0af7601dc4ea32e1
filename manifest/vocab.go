package manifest

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// ParamNamespace is the vendor namespace under an action's parameters that
// carries the editing token (Adobe Camera Raw).
const ParamNamespace = "com.adobe.acr"

// CodeCreated is the action code that gets its software agent appended.
const CodeCreated = "c2pa.created"

// DefaultAgent names the tool of a created action without a software agent.
const DefaultAgent = "Unknown tool"

var defaultActions = map[string]string{
	"c2pa.opened":            "Opened a pre-existing file",
	"c2pa.cropped":           "Cropping",
	"c2pa.color_adjustments": "Color adjustments",
	"c2pa.blur":              "Blurring",
	"c2pa.edited":            "Edits",
	"c2pa.created":           "Created",
	"c2pa.inpainting":        "Inpainting",
	"c2pa.published":         "Published",
}

var defaultParams = map[string]string{
	"Exposure2012":           "exposure",
	"Texture":                "texture",
	"Vibrance":               "vibrance",
	"Saturation":             "saturation",
	"PostCropVignetteAmount": "vignette",
	"Sharpness":              "sharpness",
	"SharpenDetail":          "sharpness",
	"ConvertToGrayscale":     "grayscale conversion",
	"NoiseReduction":         "noise reduction",
	"ColorNoiseReduction":    "noise reduction",
	"BackgroundBlur":         "background blur",
	"RedEyeRemoval":          "red-eye removal",
	"ManualCompositing":      "manual compositing",
	"Clone/Heal":             "cloning/healing",
	"Transform":              "transformation e.g. wrap, distort",
}

// Vocabulary maps action codes and parameter tokens to display text. Codes
// and tokens outside the tables are dropped, never passed through.
type Vocabulary struct {
	Actions    map[string]string `yaml:"actions"`    // lower-case action code → title
	Parameters map[string]string `yaml:"parameters"` // parameter token → short label
}

// DefaultVocabulary returns a fresh copy of the built-in tables.
func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{
		Actions:    make(map[string]string, len(defaultActions)),
		Parameters: make(map[string]string, len(defaultParams)),
	}
	for k, t := range defaultActions {
		v.Actions[k] = t
	}
	for k, l := range defaultParams {
		v.Parameters[k] = l
	}
	return v
}

// LoadVocabulary reads a YAML file of extra entries and merges it over the
// built-in tables:
//
//	actions:
//	  c2pa.resized: Resizing
//	parameters:
//	  Clarity2012: clarity
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	var extra Vocabulary
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	v := DefaultVocabulary()
	v.Merge(&extra)
	return v, nil
}

// Merge copies the entries of other into v, overriding existing ones.
// Action codes are lower-cased.
func (v *Vocabulary) Merge(other *Vocabulary) {
	if other == nil {
		return
	}
	for code, title := range other.Actions {
		v.Actions[strings.ToLower(code)] = title
	}
	for token, label := range other.Parameters {
		v.Parameters[token] = label
	}
}

// Title returns the display title for a lower-case action code.
func (v *Vocabulary) Title(code string) (string, bool) {
	t, ok := v.Actions[code]
	return t, ok && t != ""
}

// Param returns the label for a parameter token.
func (v *Vocabulary) Param(token string) (string, bool) {
	l, ok := v.Parameters[token]
	return l, ok && l != ""
}
