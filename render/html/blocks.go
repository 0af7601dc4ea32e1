package html

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
)

// renderParagraphs converts each paragraph of an article body from
// markdown. Blank paragraphs are skipped.
func renderParagraphs(md goldmark.Markdown, paras []string) (template.HTML, error) {
	var buf bytes.Buffer
	for _, p := range paras {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if err := md.Convert([]byte(p), &buf); err != nil {
			return "", fmt.Errorf("goldmark convert: %w", err)
		}
	}
	return template.HTML(buf.String()), nil
}

// renderManifest pretty-prints the raw manifest as a highlighted JSON
// block, falling back to a plain escaped <pre> if highlighting fails.
func renderManifest(md goldmark.Markdown, raw any) (template.HTML, error) {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fence := codeFence(string(data))
	fenced := fence + "json\n" + string(data) + "\n" + fence
	if err := md.Convert([]byte(fenced), &buf); err != nil {
		return template.HTML(`<pre>` + template.HTMLEscapeString(string(data)) + `</pre>`), nil
	}
	return template.HTML(buf.String()), nil
}

// codeFence returns a backtick fence longer than any backtick run in s, so
// the content cannot close the block early.
func codeFence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return strings.Repeat("`", max(3, longest+1))
}
