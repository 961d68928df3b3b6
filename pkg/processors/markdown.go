package processors

import (
	"bytes"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/registry"
)

const MarkdownProcessorName = "markdown"

// converter is shared by the markdown processor and the markdown
// template function. goldmark converters are safe for concurrent use.
var converter = goldmark.New()

// convertMarkdown renders CommonMark source to HTML.
func convertMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MarkdownProcessor converts .md files to HTML pages. When the
// configuration names a markdown layout the converted body is rendered
// into it under `content`; otherwise the bare body is emitted. The
// output keeps the page's path with the extension swapped to .html.
type MarkdownProcessor struct {
	ctx *Context
}

// NewMarkdown creates a MarkdownProcessor.
func NewMarkdown() *MarkdownProcessor {
	return &MarkdownProcessor{}
}

// Name returns the unique name of this processor.
func (p *MarkdownProcessor) Name() string {
	return MarkdownProcessorName
}

// CanProcess claims .md files.
func (p *MarkdownProcessor) CanProcess(filename string) bool {
	return strings.HasSuffix(filename, ".md")
}

// OutputName swaps the .md extension for .html.
func (p *MarkdownProcessor) OutputName(relPath string) string {
	return strings.TrimSuffix(relPath, ".md") + ".html"
}

// Start implements Processor.
func (p *MarkdownProcessor) Start(ctx *Context) error {
	p.ctx = ctx
	return nil
}

// Process converts the file and optionally wraps it in the configured
// layout.
func (p *MarkdownProcessor) Process(inPath, outPath string) (bool, error) {
	src, err := p.ctx.FS.ReadFile(inPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "reading %s", inPath)
	}

	body, err := convertMarkdown(src)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrProcessorFailed, "converting %s", inPath)
	}

	out := []byte(body)
	if p.ctx.MarkdownLayout != "" {
		layoutPath, err := p.ctx.FindLayout(p.ctx.MarkdownLayout)
		if err != nil {
			return false, err
		}
		layoutSrc, err := p.ctx.FS.ReadFile(layoutPath)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrFileAccess, "reading layout %s", layoutPath)
		}
		tmpl, err := template.New(filepath.Base(layoutPath)).Funcs(templateFuncs()).Parse(string(layoutSrc))
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrTemplateParse, "parsing layout %s", layoutPath)
		}

		rel, err := filepath.Rel(p.ctx.InputRoot, inPath)
		if err != nil {
			rel = filepath.Base(inPath)
		}
		data := p.ctx.Data(rel)
		data["content"] = template.HTML(body)

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return false, errors.Wrapf(err, errors.ErrTemplateRender, "rendering %s", inPath)
		}
		out = buf.Bytes()
	}

	if err := p.ctx.FS.WriteFile(outPath, out, 0o644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", outPath)
	}
	return true, nil
}

// End implements Processor.
func (p *MarkdownProcessor) End() error {
	p.ctx = nil
	return nil
}

func init() {
	registry.MustRegister(processorRegistry, MarkdownProcessorName, func() Processor {
		return NewMarkdown()
	})
}
