package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabularyIsACopy(t *testing.T) {
	a := DefaultVocabulary()
	a.Actions["c2pa.cropped"] = "Changed"

	title, ok := DefaultVocabulary().Title("c2pa.cropped")
	require.True(t, ok)
	assert.Equal(t, "Cropping", title)
}

func TestLoadVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`actions:
  C2PA.Resized: Resizing
  c2pa.cropped: Crop
parameters:
  Clarity2012: clarity
`), 0o644))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)

	title, ok := v.Title("c2pa.resized")
	assert.True(t, ok)
	assert.Equal(t, "Resizing", title)

	title, _ = v.Title("c2pa.cropped")
	assert.Equal(t, "Crop", title)

	label, ok := v.Param("Clarity2012")
	assert.True(t, ok)
	assert.Equal(t, "clarity", label)

	_, ok = v.Title("c2pa.opened")
	assert.True(t, ok, "built-ins are kept")
}

func TestLoadVocabularyErrors(t *testing.T) {
	_, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("actions: [unclosed"), 0o644))
	_, err = LoadVocabulary(path)
	assert.Error(t, err)
}

func TestVocabularyEmptyEntriesIgnored(t *testing.T) {
	v := DefaultVocabulary()
	v.Merge(&Vocabulary{Actions: map[string]string{"c2pa.blank": ""}})
	_, ok := v.Title("c2pa.blank")
	assert.False(t, ok)

	v.Merge(nil)
	_, ok = v.Title("c2pa.opened")
	assert.True(t, ok)
}
