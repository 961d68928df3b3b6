package processors

import (
	"github.com/webgenlabs/webgen/pkg/errors"
)

const CopyProcessorName = "copy"

// CopyProcessor copies any file it is given, byte for byte. It sits at
// the end of every chain as the fallback.
type CopyProcessor struct {
	ctx *Context
}

// NewCopy creates a CopyProcessor.
func NewCopy() *CopyProcessor {
	return &CopyProcessor{}
}

// Name returns the unique name of this processor.
func (p *CopyProcessor) Name() string {
	return CopyProcessorName
}

// CanProcess claims every file.
func (p *CopyProcessor) CanProcess(filename string) bool {
	return true
}

// OutputName returns the path unchanged.
func (p *CopyProcessor) OutputName(relPath string) string {
	return relPath
}

// Start implements Processor.
func (p *CopyProcessor) Start(ctx *Context) error {
	p.ctx = ctx
	return nil
}

// Process copies the input file to the output path.
func (p *CopyProcessor) Process(inPath, outPath string) (bool, error) {
	content, err := p.ctx.FS.ReadFile(inPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "reading %s", inPath)
	}
	if err := p.ctx.FS.WriteFile(outPath, content, 0o644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", outPath)
	}
	return true, nil
}

// End implements Processor.
func (p *CopyProcessor) End() error {
	p.ctx = nil
	return nil
}
