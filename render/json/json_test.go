package json

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sonnes/pramaan/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graph() *core.Graph {
	return &core.Graph{
		RunID:    "run-1",
		AssetURL: "https://news.example/hero.jpg",
		State:    core.StateDone,
		Status:   core.StatusOK,
		Rows: []core.Row{
			{Record: core.Record{Title: "hero.jpg", Author: "Ana (Person)", Generator: "Lightroom 7.1", Issued: core.Dash, Actions: []string{"Cropping -> crop"}}},
			{Record: core.Placeholder("raw.dng", "", core.NoteNoCredential), Connector: true, Depth: 1},
		},
		Raw: map[string]any{"title": "hero.jpg"},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, graph()))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "\n  \"status\": \"ok\"")
	assert.Contains(t, out, "Cropping -> crop", "HTML characters are not escaped")
	assert.NotContains(t, out, "manifest")

	var got struct {
		RunID  string     `json:"run_id"`
		Status string     `json:"status"`
		State  string     `json:"state"`
		Rows   []core.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "done", got.State)
	require.Len(t, got.Rows, 2)
	assert.True(t, got.Rows[1].Connector)
	assert.Equal(t, core.NoteNoCredential, got.Rows[1].Record.Note)
}

func TestRenderCompactWithManifest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Renderer{Raw: true}).Render(&buf, graph()))

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"manifest":{"title":"hero.jpg"}`)
}

func TestRenderError(t *testing.T) {
	g := &core.Graph{State: core.StateErrored, Status: core.StatusError, Error: "Image fetch failed (404)", Rows: []core.Row{}}

	var buf bytes.Buffer
	require.NoError(t, (&Renderer{}).Render(&buf, g))
	assert.Contains(t, buf.String(), `"error":"Image fetch failed (404)"`)
	assert.Contains(t, buf.String(), `"rows":[]`)
}
