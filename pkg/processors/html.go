package processors

import (
	"bytes"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/registry"
)

const HTMLProcessorName = "html"

// HTMLProcessor renders .html files as Go templates with the site
// context. Templates get a markdown function for inline conversion.
type HTMLProcessor struct {
	ctx *Context
}

// NewHTML creates an HTMLProcessor.
func NewHTML() *HTMLProcessor {
	return &HTMLProcessor{}
}

// Name returns the unique name of this processor.
func (p *HTMLProcessor) Name() string {
	return HTMLProcessorName
}

// CanProcess claims .html files.
func (p *HTMLProcessor) CanProcess(filename string) bool {
	return strings.HasSuffix(filename, ".html")
}

// OutputName returns the path unchanged.
func (p *HTMLProcessor) OutputName(relPath string) string {
	return relPath
}

// Start implements Processor.
func (p *HTMLProcessor) Start(ctx *Context) error {
	p.ctx = ctx
	return nil
}

// Process parses the input file as a template and renders it with the
// site context.
func (p *HTMLProcessor) Process(inPath, outPath string) (bool, error) {
	src, err := p.ctx.FS.ReadFile(inPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "reading %s", inPath)
	}

	tmpl, err := template.New(filepath.Base(inPath)).Funcs(templateFuncs()).Parse(string(src))
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrTemplateParse, "parsing %s", inPath)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p.ctx.Data(p.rel(inPath))); err != nil {
		return false, errors.Wrapf(err, errors.ErrTemplateRender, "rendering %s", inPath)
	}

	if err := p.ctx.FS.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", outPath)
	}
	return true, nil
}

// End implements Processor.
func (p *HTMLProcessor) End() error {
	p.ctx = nil
	return nil
}

func (p *HTMLProcessor) rel(inPath string) string {
	rel, err := filepath.Rel(p.ctx.InputRoot, inPath)
	if err != nil {
		return filepath.Base(inPath)
	}
	return rel
}

// templateFuncs returns the function map page templates render with.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": func(src string) (template.HTML, error) {
			out, err := convertMarkdown([]byte(src))
			if err != nil {
				return "", err
			}
			return template.HTML(out), nil
		},
	}
}

func init() {
	registry.MustRegister(processorRegistry, HTMLProcessorName, func() Processor {
		return NewHTML()
	})
}
