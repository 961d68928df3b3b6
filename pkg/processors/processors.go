// Package processors turns input files into output files.
//
// Each processor claims files by name and transforms one input into at
// most one output. Generation runs files through a chain: the ignore
// processor first, then the configured processors in order, then the
// copy fallback. The first processor that claims a file handles it.
package processors

import (
	"path/filepath"
	"time"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/registry"
	"github.com/webgenlabs/webgen/pkg/types"
)

// Processor is the interface all file processors implement.
type Processor interface {
	// Name returns the unique name of this processor.
	Name() string

	// CanProcess reports whether this processor claims the file.
	// It sees the input path and decides on the filename alone.
	CanProcess(filename string) bool

	// OutputName computes the output path for an input path. Most
	// processors return the path unchanged.
	OutputName(relPath string) string

	// Start is called once per run, after the context is established
	// and before any file is processed.
	Start(ctx *Context) error

	// Process transforms the input file into the output file. It
	// reports whether an output file was written; the ignore
	// processor claims files without producing output.
	Process(inPath, outPath string) (bool, error)

	// End is called once after the last file has been processed.
	End() error
}

// Factory creates a fresh processor instance for a generation run.
type Factory func() Processor

// Context carries the per-run state shared by all processors.
type Context struct {
	// InputRoot is the tree being generated. Layout references
	// resolve here first.
	InputRoot string

	// SiteRoot is the directory holding the site's linked resources.
	// Layout references fall back here, so trees exposed by the
	// dependency bootstrap (templates, styles) are reachable.
	SiteRoot string

	// Title and BaseURL come from the site configuration.
	Title   string
	BaseURL string

	// MarkdownLayout optionally names the layout markdown pages are
	// wrapped in.
	MarkdownLayout string

	// Theme holds the variable map css templates render with.
	Theme map[string]string

	// Timestamp is the generation time, identical for every file in
	// the run.
	Timestamp time.Time

	// FS is the filesystem all processors read and write through.
	FS types.FS
}

// Data builds the render context for one input file. Site settings and
// theme variables share a single flat namespace, so page documents can
// override any of them.
func (c *Context) Data(relPath string) map[string]interface{} {
	data := map[string]interface{}{
		"title":     c.Title,
		"base_url":  c.BaseURL,
		"timestamp": c.Timestamp,
		"path":      filepath.ToSlash(relPath),
	}
	for k, v := range c.Theme {
		data[k] = v
	}
	return data
}

// FindLayout resolves a layout name to a file, trying the input root
// and then the site root.
func (c *Context) FindLayout(name string) (string, error) {
	if name == "" {
		return "", errors.New(errors.ErrLayoutMissing, "layout name is empty")
	}
	if filepath.IsAbs(name) {
		return "", errors.Newf(errors.ErrLayoutMissing, "layout %s must be a relative path", name)
	}
	for _, root := range []string{c.InputRoot, c.SiteRoot} {
		if root == "" {
			continue
		}
		path := filepath.Join(root, filepath.FromSlash(name))
		if _, err := c.FS.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.Newf(errors.ErrLayoutMissing,
		"layout %s not found under %s or %s", name, c.InputRoot, c.SiteRoot)
}

var processorRegistry = registry.New[Factory]()

// Register makes a processor factory available under the given name.
func Register(name string, factory Factory) error {
	return processorRegistry.Register(name, factory)
}

// List returns the names of all registered processors, sorted.
func List() []string {
	return processorRegistry.List()
}

// Get returns the factory registered under name.
func Get(name string) (Factory, error) {
	factory, err := processorRegistry.Get(name)
	if err != nil {
		return nil, errors.Newf(errors.ErrProcessorUnknown, "unknown processor: %s", name)
	}
	return factory, nil
}

// Chain builds the processor chain for a generation run: the ignore
// processor, the named processors in order, and the copy fallback. An
// unknown name is an error.
func Chain(names []string, ignorePatterns []string) ([]Processor, error) {
	chain := []Processor{NewIgnore(ignorePatterns)}
	for _, name := range names {
		factory, err := Get(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, factory())
	}
	chain = append(chain, NewCopy())
	return chain, nil
}
