package ui

import (
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown turns a note into HTML; raw HTML inside the note is dropped
func renderMarkdown(md string) template.HTML {
	// parsers keep state between documents, so each note gets a fresh one
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML | html.HrefTargetBlank,
	})

	out := markdown.ToHTML([]byte(strings.TrimSpace(md)), p, renderer)
	return template.HTML(out)
}
