package processors

import (
	"bytes"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/registry"
)

const PageProcessorName = "page"

// PageProcessor renders .yaml page documents. Every YAML document in
// the file is merged into the render context, and the `layout` key
// names the template the page is rendered through. The output keeps
// the page's path with the extension swapped to .html.
type PageProcessor struct {
	ctx *Context
}

// NewPage creates a PageProcessor.
func NewPage() *PageProcessor {
	return &PageProcessor{}
}

// Name returns the unique name of this processor.
func (p *PageProcessor) Name() string {
	return PageProcessorName
}

// CanProcess claims .yaml files.
func (p *PageProcessor) CanProcess(filename string) bool {
	return strings.HasSuffix(filename, ".yaml")
}

// OutputName swaps the .yaml extension for .html.
func (p *PageProcessor) OutputName(relPath string) string {
	return strings.TrimSuffix(relPath, ".yaml") + ".html"
}

// Start implements Processor.
func (p *PageProcessor) Start(ctx *Context) error {
	p.ctx = ctx
	return nil
}

// Process merges the page's documents into the site context and
// renders the named layout with the result.
func (p *PageProcessor) Process(inPath, outPath string) (bool, error) {
	src, err := p.ctx.FS.ReadFile(inPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "reading %s", inPath)
	}

	rel, err := filepath.Rel(p.ctx.InputRoot, inPath)
	if err != nil {
		rel = filepath.Base(inPath)
	}
	data := p.ctx.Data(rel)

	dec := yaml.NewDecoder(bytes.NewReader(src))
	for {
		var doc map[string]interface{}
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				break
			}
			return false, errors.Wrapf(err, errors.ErrProcessorFailed, "parsing %s", inPath)
		}
		for k, v := range doc {
			data[k] = v
		}
	}

	layoutName, _ := data["layout"].(string)
	if layoutName == "" {
		return false, errors.Newf(errors.ErrLayoutMissing, "page %s does not name a layout", inPath)
	}
	layoutPath, err := p.ctx.FindLayout(layoutName)
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

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return false, errors.Wrapf(err, errors.ErrTemplateRender, "rendering %s", inPath)
	}

	if err := p.ctx.FS.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", outPath)
	}
	return true, nil
}

// End implements Processor.
func (p *PageProcessor) End() error {
	p.ctx = nil
	return nil
}

func init() {
	registry.MustRegister(processorRegistry, PageProcessorName, func() Processor {
		return NewPage()
	})
}
