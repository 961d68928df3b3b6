package processors

import (
	"bytes"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/registry"
)

const CSSProcessorName = "css"

// CSSProcessor renders .css files as text templates over the theme
// variable map, so stylesheets can reference shared colors and the
// generation timestamp.
type CSSProcessor struct {
	ctx *Context
}

// NewCSS creates a CSSProcessor.
func NewCSS() *CSSProcessor {
	return &CSSProcessor{}
}

// Name returns the unique name of this processor.
func (p *CSSProcessor) Name() string {
	return CSSProcessorName
}

// CanProcess claims .css files.
func (p *CSSProcessor) CanProcess(filename string) bool {
	return strings.HasSuffix(filename, ".css")
}

// OutputName returns the path unchanged.
func (p *CSSProcessor) OutputName(relPath string) string {
	return relPath
}

// Start implements Processor.
func (p *CSSProcessor) Start(ctx *Context) error {
	p.ctx = ctx
	return nil
}

// Process renders the stylesheet with the theme variables.
func (p *CSSProcessor) Process(inPath, outPath string) (bool, error) {
	src, err := p.ctx.FS.ReadFile(inPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "reading %s", inPath)
	}

	tmpl, err := template.New(filepath.Base(inPath)).Parse(string(src))
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrTemplateParse, "parsing %s", inPath)
	}

	rel, err := filepath.Rel(p.ctx.InputRoot, inPath)
	if err != nil {
		rel = filepath.Base(inPath)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p.ctx.Data(rel)); err != nil {
		return false, errors.Wrapf(err, errors.ErrTemplateRender, "rendering %s", inPath)
	}

	if err := p.ctx.FS.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", outPath)
	}
	return true, nil
}

// End implements Processor.
func (p *CSSProcessor) End() error {
	p.ctx = nil
	return nil
}

func init() {
	registry.MustRegister(processorRegistry, CSSProcessorName, func() Processor {
		return NewCSS()
	})
}
