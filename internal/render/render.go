// Package render converts lightweight markup into sanitized HTML. Rendering is
// pure and deterministic for a fixed option set; reader-submitted text is
// stripped of raw HTML before it ever reaches the markdown parser.
package render

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Options selects the pipeline stages for a renderer.
type Options struct {
	// FencedCode enables fenced code blocks, rendered as
	// <pre><code class="LANG"> with the code contents preserved verbatim.
	FencedCode bool
	// PreStrip removes all HTML tags from the input and decodes character
	// references before markdown parsing. Reader content only; authors are
	// trusted.
	PreStrip bool
	// Linkify converts bare URLs into anchors and marks every produced link
	// rel="nofollow". Reader content only.
	Linkify bool
}

// Renderer is a reusable markdown-to-HTML pipeline. Safe for concurrent use.
type Renderer struct {
	opts Options
	md   goldmark.Markdown
}

// New creates a renderer for the given options.
func New(opts Options) *Renderer {
	var gopts []goldmark.Option
	if !opts.FencedCode {
		gopts = append(gopts, goldmark.WithParser(parserWithoutFences()))
	}
	if opts.Linkify {
		gopts = append(gopts, goldmark.WithExtensions(extension.Linkify))
	}
	gopts = append(gopts, goldmark.WithRendererOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&nodeRenderer{fenced: opts.FencedCode, nofollow: opts.Linkify}, 100),
		),
	))
	return &Renderer{opts: opts, md: goldmark.New(gopts...)}
}

// ForAuthors renders trusted author content: fenced code on, no pre-strip.
func ForAuthors() *Renderer {
	return New(Options{FencedCode: true})
}

// ForAuthorSummaries renders short author fields (abstracts, profile info)
// where code fences are treated as literal text.
func ForAuthorSummaries() *Renderer {
	return New(Options{})
}

// ForReaders renders adversarial reader content: raw HTML is stripped up
// front and bare URLs become rel="nofollow" anchors.
func ForReaders() *Renderer {
	return New(Options{FencedCode: true, PreStrip: true, Linkify: true})
}

// Render converts raw markup into HTML. An empty input renders to an empty
// string; callers preserve the absent-vs-empty distinction on their side.
// Malformed markup degrades to literal text and never produces an error.
func (r *Renderer) Render(raw string) string {
	if raw == "" {
		return ""
	}
	src := raw
	if r.opts.PreStrip {
		src = StripTags(src)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		// Should not happen with an in-memory writer; fall back to escaped
		// literal text rather than propagating a fatal error.
		return html.EscapeString(src)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// parserWithoutFences builds a parser with the default goldmark configuration
// minus the fenced code block parser, so fences parse as plain paragraphs.
func parserWithoutFences() parser.Parser {
	fenced := parser.NewFencedCodeBlockParser()
	var blocks []util.PrioritizedValue
	for _, v := range parser.DefaultBlockParsers() {
		if v.Value == fenced {
			continue
		}
		blocks = append(blocks, v)
	}
	return parser.NewParser(
		parser.WithBlockParsers(blocks...),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}
